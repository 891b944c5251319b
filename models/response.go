package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// ContentTypeJSON is the only content type an envelope carries.
const ContentTypeJSON = "application/json"

// Envelope is the handler's sole output type. Its JSON form is the API
// Gateway proxy response shape, so it can be returned from Lambda as-is.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Product is the success body. Every field is always present in JSON;
// absent values encode as null.
type Product struct {
	URL         string   `json:"url"`
	Title       *string  `json:"title"`
	Price       *string  `json:"price"`
	PriceAmount *float64 `json:"price_amount"`
	Currency    *string  `json:"currency"`
}

// ErrorBody is the body of every non-200 envelope.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Strategy string `json:"strategy"`
}

// NewEnvelope encodes payload as the body of an envelope with the given status.
// Encoding never fails for the body types in this package; should it fail,
// the envelope degrades to a 500 with a fixed body so the contract holds.
func NewEnvelope(status int, payload any) Envelope {
	body, err := encodeBody(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = `{"error": "Failed to encode response."}`
	}
	return Envelope{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": ContentTypeJSON},
		Body:       body,
	}
}

// SuccessEnvelope wraps a product in a 200 envelope.
func SuccessEnvelope(p *Product) Envelope {
	return NewEnvelope(http.StatusOK, p)
}

// ErrorEnvelope converts any error into an envelope. Errors that are not a
// *PriceError are reported as INTERNAL_ERROR with their message.
func ErrorEnvelope(err error) Envelope {
	var pe *PriceError
	if !errors.As(err, &pe) {
		pe = NewPriceError(ErrCodeInternal, MsgFetchFailed, err)
	}
	return NewEnvelope(StatusFor(pe.Code), pe.ToBody())
}

func encodeBody(payload any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
