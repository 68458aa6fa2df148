package cache

import (
	"strings"

	"go-content-cache/internal/interfaces"
)

const (
	ModePublished = "published"
	ModePreview   = "preview"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key of the form resource:mode[:identifier].
// The identifier is kept verbatim and always last, so keys stay readable
// for substring invalidation and distinct requests cannot collide.
func (kb *KeyBuilderImpl) Build(resource string, preview bool, identifier string) string {
	mode := ModePublished
	if preview {
		mode = ModePreview
	}

	var b strings.Builder
	b.Grow(len(resource) + len(mode) + len(identifier) + 2)
	b.WriteString(resource)
	b.WriteByte(':')
	b.WriteString(mode)
	if identifier != "" {
		b.WriteByte(':')
		b.WriteString(identifier)
	}
	return b.String()
}
