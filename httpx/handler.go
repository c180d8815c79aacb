package httpx

import (
	"github.com/gin-gonic/gin"
)

// HandlerFunc generic handler signature
// Req: request type (supports form/json/uri tags)
// Resp: response type
type HandlerFunc[Req any, Resp any] func(c *gin.Context, req *Req) (*Resp, error)

// Wrap adapts a typed handler to gin: parses the request, invokes the
// business logic, and writes the unified response envelope.
func Wrap[Req any, Resp any](handler HandlerFunc[Req, Resp]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Req
		if err := Parse(c, &req); err != nil {
			BadRequestJson(c, err)
			return
		}

		resp, err := handler(c, &req)
		if err != nil {
			HandleError(c, err)
			return
		}

		OkJson(c, resp)
	}
}
