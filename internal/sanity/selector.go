package sanity

import "go-content-cache/internal/interfaces"

// Ensure Clients implements interfaces.ClientSelector
var _ interfaces.ClientSelector = (*Clients)(nil)

// Clients holds the published and preview clients
type Clients struct {
	Published interfaces.ContentClient
	Preview   interfaces.ContentClient
}

// Client returns the preview client when preview is set, otherwise the published one
func (c *Clients) Client(preview bool) interfaces.ContentClient {
	if preview {
		return c.Preview
	}
	return c.Published
}
