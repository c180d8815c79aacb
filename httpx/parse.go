package httpx

import (
	"github.com/gin-gonic/gin"
)

// Parse extracts request parameters (path + query + body)
// Supports uri/form/json tags
func Parse(c *gin.Context, req interface{}) error {
	// 1. Bind URI parameters (such as :id); tolerated so that structs
	// without uri tags still pass through, and so that body-field
	// validation does not fire before the body is bound
	if err := c.ShouldBindUri(req); err != nil {
		_ = err
	}

	// 2. Bind query parameters (form tag); absence of form tags is fine
	if err := c.ShouldBindQuery(req); err != nil {
		_ = err
	}

	// 3. Bind body parameters (json tag), only when a body is present
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			return err
		}
	}

	return nil
}
