package httpserver

// InvalidateRequest names the substring of cache keys to drop
type InvalidateRequest struct {
	Pattern string `json:"pattern"`
}

// ActionResponse represents the outcome of a cache control request
type ActionResponse struct {
	Success bool   `json:"success"`
	Pattern string `json:"pattern,omitempty"`
	Error   string `json:"error,omitempty"`
}
