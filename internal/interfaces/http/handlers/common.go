// Package handlers implements the HTTP endpoints over the application
// services.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/annotext/annotext/pkg/errors"
)

// Response is the uniform success envelope.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// OK writes a 200 envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: string(apperrors.CodeOK), Data: data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: string(apperrors.CodeOK), Data: data})
}

// Fail maps an error to its HTTP status and writes the error envelope.
// Internal detail is only exposed for client-class errors; server faults
// return their code and generic message.
func Fail(c *gin.Context, err error) {
	var ae *apperrors.AppError
	if !errors.As(err, &ae) {
		ae = apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
	}
	status := apperrors.HTTPStatusForCode(ae.Code)
	resp := ErrorResponse{
		Code:    string(ae.Code),
		Message: ae.Message,
	}
	if apperrors.IsClientError(ae.Code) {
		resp.Detail = ae.Detail
	}
	c.AbortWithStatusJSON(status, resp)
}

// BadRequest rejects malformed request bodies.
func BadRequest(c *gin.Context, err error) {
	Fail(c, apperrors.New(apperrors.ErrCodeBadRequest, "invalid request body").WithCause(err))
}
