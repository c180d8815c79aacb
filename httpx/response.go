// Package httpx provides unified handling of HTTP requests/responses
package httpx

import (
	"errors"
	"net/http"

	"github.com/KOMKZ/property-catalog/database"
	"github.com/KOMKZ/property-catalog/errcode"
	"github.com/KOMKZ/property-catalog/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response unified response format
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson successful response
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// BadRequestJson 400 error response
func BadRequestJson(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 400,
		Msg:  err.Error(),
	})
}

// NotFoundJson 404 error response
func NotFoundJson(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{
		Code: 404,
		Msg:  msg,
	})
}

// InternalErrorJson 500 error response
func InternalErrorJson(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 500,
		Msg:  msg,
	})
}

// NoRouteHandler 404 route-not-found handler for engine.NoRoute()
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Response{
			Code: 404,
			Msg:  "route not found: " + c.Request.Method + " " + c.Request.URL.Path,
		})
	}
}

// NoMethodHandler 405 method-not-allowed handler for engine.NoMethod()
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, Response{
			Code: 405,
			Msg:  "method not allowed: " + c.Request.Method + " " + c.Request.URL.Path,
		})
	}
}

// HandleError maps errors to HTTP responses by error type:
// LayeredError carries its own HTTP status and code; plain record-not-found
// maps to 404; anything else is a 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var layeredErr *errcode.LayeredError
	if errors.As(err, &layeredErr) {
		if layeredErr.HTTPStatus() >= http.StatusInternalServerError {
			logger.ErrorCtx(ctx, "http", "business error",
				zap.Int("error_code", layeredErr.Code()),
				zap.String("error_chain", layeredErr.String()),
				zap.Error(err))
		} else {
			logger.WarnCtx(ctx, "http", "business error",
				zap.Int("error_code", layeredErr.Code()),
				zap.String("error_msg", layeredErr.Message()))
		}

		c.JSON(layeredErr.HTTPStatus(), Response{
			Code: layeredErr.Code(),
			Msg:  layeredErr.Message(),
			Data: layeredErr.Data(),
		})
		return
	}

	if errors.Is(err, database.ErrRecordNotFound) {
		logger.WarnCtx(ctx, "http", "resource not found", zap.Error(err))
		NotFoundJson(c, err.Error())
		return
	}

	// Unknown error -> 500
	logger.ErrorCtx(ctx, "http", "unhandled error", zap.Error(err))
	InternalErrorJson(c, err.Error())
}
