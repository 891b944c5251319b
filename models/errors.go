package models

import (
	"fmt"
	"net/http"
)

// Error codes used in envelopes and internal error handling.
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeMissingParameter = "MISSING_PARAMETER"
	ErrCodeInvalidURL       = "INVALID_URL"
	ErrCodeDisallowedHost   = "DISALLOWED_HOST"
	ErrCodeBlocked          = "BLOCKED_BY_UPSTREAM"
	ErrCodeFetchFailed      = "FETCH_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// Client-facing error messages. They are part of the response contract.
const (
	MsgInvalidInput     = "Invalid request payload."
	MsgMissingParameter = "Missing required 'url' parameter."
	MsgInvalidURL       = "Invalid URL."
	MsgDisallowedHost   = "URL must be an Amazon product page."
	MsgBlocked          = "Amazon blocked the request."
	MsgBlockedDetail    = "Received a robot check or captcha page."
	MsgFetchFailed      = "Failed to fetch product data."
)

// PriceError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type PriceError struct {
	Code    string
	Message string // goes to the "error" field of the body
	Detail  string // goes to the "message" field; falls back to Err
	Err     error  // wrapped original error
}

func (e *PriceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PriceError) Unwrap() error {
	return e.Err
}

// NewPriceError creates a new PriceError.
func NewPriceError(code, message string, err error) *PriceError {
	return &PriceError{Code: code, Message: message, Err: err}
}

// Predefined errors for the early exits of the pipeline.
var (
	ErrInvalidInput     = &PriceError{Code: ErrCodeInvalidInput, Message: MsgInvalidInput}
	ErrMissingParameter = &PriceError{Code: ErrCodeMissingParameter, Message: MsgMissingParameter}
	ErrInvalidURL       = &PriceError{Code: ErrCodeInvalidURL, Message: MsgInvalidURL}
	ErrDisallowedHost   = &PriceError{Code: ErrCodeDisallowedHost, Message: MsgDisallowedHost}
	ErrBlocked          = &PriceError{Code: ErrCodeBlocked, Message: MsgBlocked, Detail: MsgBlockedDetail}
)

// ToBody converts an internal error to the API-facing ErrorBody.
func (e *PriceError) ToBody() ErrorBody {
	body := ErrorBody{Error: e.Message, Message: e.Detail}
	if body.Message == "" && e.Err != nil {
		body.Message = e.Err.Error()
	}
	return body
}

// StatusFor translates error codes to HTTP status codes.
func StatusFor(code string) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeMissingParameter, ErrCodeInvalidURL, ErrCodeDisallowedHost:
		return http.StatusBadRequest // 400
	case ErrCodeBlocked:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
