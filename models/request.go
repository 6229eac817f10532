package models

// SubmitRequest is the payload for POST /api/v1/submit and the /submit form.
// URL is deliberately not validated beyond being non-blank; the
// controller ignores blank submissions.
type SubmitRequest struct {
	URL string `json:"url" form:"url"`
}

// EditRequest is the payload for POST /api/v1/input.
type EditRequest struct {
	Input string `json:"input" form:"input"`
}
