package models

import "fmt"

// Error codes used for failed submissions and API responses.
const (
	// ErrCodeRequestFailed: the extraction service answered with a
	// non-2xx status or a body that is not a profile.
	ErrCodeRequestFailed = "REQUEST_FAILED"

	// ErrCodeTransportFailed: the extraction service could not be reached.
	ErrCodeTransportFailed = "TRANSPORT_FAILED"

	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// User-facing messages for each failure category.
const (
	MsgRequestFailed   = "Failed to parse portfolio. Please try again."
	MsgTransportFailed = "Could not reach the extraction service. This is usually a cross-origin (CORS) or connectivity issue; make sure the service is running and allows requests from this host."
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitError is the error recorded when a submission fails.
// Message is safe to show to the user; Err carries the underlying cause.
type SubmitError struct {
	Code       string
	Message    string
	StatusCode int // upstream HTTP status, 0 for transport failures
	Err        error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// NewSubmitError creates a new SubmitError.
func NewSubmitError(code, message string, err error) *SubmitError {
	return &SubmitError{Code: code, Message: message, Err: err}
}

// RequestFailed builds the error for a non-success response.
func RequestFailed(statusCode int, err error) *SubmitError {
	return &SubmitError{
		Code:       ErrCodeRequestFailed,
		Message:    MsgRequestFailed,
		StatusCode: statusCode,
		Err:        err,
	}
}

// TransportFailed builds the error for a connectivity failure.
func TransportFailed(err error) *SubmitError {
	return NewSubmitError(ErrCodeTransportFailed, MsgTransportFailed, err)
}

// ToDetail converts a SubmitError to an API-facing ErrorDetail.
func (e *SubmitError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
