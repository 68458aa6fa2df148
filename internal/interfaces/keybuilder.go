package interfaces

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder turns logical content requests into deterministic cache keys
type KeyBuilder interface {
	Build(resource string, preview bool, identifier string) string
}
