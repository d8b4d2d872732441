package server

import "github.com/gin-gonic/gin"

// Response is the uniform ApiResponse envelope wrapped around every reply.
// Code 0 means success and guarantees Data is present for value-returning
// operations; failures mirror the HTTP status into Code.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(data any) Response {
	return Response{Code: 0, Message: "success", Data: data}
}

func fail(status int, message string) Response {
	return Response{Code: status, Message: message}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(200, ok(data))
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, fail(status, message))
}
