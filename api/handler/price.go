package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/amzprice/models"
	"github.com/use-agent/amzprice/pricer"
)

// maxRequestBody caps what the POST routes read from the client.
const maxRequestBody = 1 << 20

// PriceQuery returns a handler for GET /api/v1/price?url=...
//
// The query parameters become the payload's queryStringParameters, the same
// shape API Gateway produces.
func PriceQuery(p *pricer.Pricer) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(map[string]string)
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
		payload, err := json.Marshal(models.Payload{QueryStringParameters: params})
		if err != nil {
			respond(c, models.ErrorEnvelope(err))
			return
		}
		respond(c, p.Handle(c.Request.Context(), payload))
	}
}

// PriceBody returns a handler for POST /api/v1/price with a JSON body like
// {"url": "..."}. The raw body becomes the payload's body field.
func PriceBody(p *pricer.Pricer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBody))
		if err != nil {
			respond(c, models.ErrorEnvelope(models.ErrInvalidInput))
			return
		}
		payload, err := json.Marshal(models.Payload{Body: string(raw)})
		if err != nil {
			respond(c, models.ErrorEnvelope(err))
			return
		}
		respond(c, p.Handle(c.Request.Context(), payload))
	}
}

// Invoke returns a handler for POST /api/v1/invoke. The request body is a
// complete invocation payload, exactly as a Lambda would receive it.
func Invoke(p *pricer.Pricer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBody))
		if err != nil {
			respond(c, models.ErrorEnvelope(models.ErrInvalidInput))
			return
		}
		respond(c, p.Handle(c.Request.Context(), raw))
	}
}

// respond writes an envelope as the HTTP response.
func respond(c *gin.Context, env models.Envelope) {
	for k, v := range env.Headers {
		c.Header(k, v)
	}
	status := env.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.Data(status, models.ContentTypeJSON, []byte(env.Body))
}
