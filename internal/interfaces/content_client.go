package interfaces

import "context"

//go:generate mockgen -package=mock -source=content_client.go -destination=mock/content_client.go

// ContentClient runs queries against the headless CMS
type ContentClient interface {
	// Fetch executes query with params and decodes the result into out.
	// A null result leaves out untouched.
	Fetch(ctx context.Context, query string, params map[string]interface{}, out interface{}) error
}

// ClientSelector picks the published or the preview (draft) client
type ClientSelector interface {
	Client(preview bool) ContentClient
}
