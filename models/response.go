package models

// StateResponse is the JSON view of a session's submission state.
type StateResponse struct {
	// Success is false only when the API call itself failed, not when
	// the submission is in the failed phase.
	Success bool `json:"success"`

	// Accepted reports whether a submit started a new request.
	// Only set on submit responses.
	Accepted *bool `json:"accepted,omitempty"`

	Phase   string       `json:"phase"`
	Token   uint64       `json:"token"`
	Input   string       `json:"input"`
	URL     string       `json:"url,omitempty"`
	Profile *Profile     `json:"profile,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Sessions  int    `json:"sessions"`
	Extractor string `json:"extractor"`
	Version   string `json:"version"`
}
