package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/faq-translate/pkg/errors"
)

// HTTPError is the transport view of a failure: status, wire code and client message.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
	// RetryAfter, in seconds, is sent as the Retry-After header when positive.
	RetryAfter int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// asHTTPError resolves any error raised by a handler. Domain AppErrors map by code;
// anything else is an opaque 500.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.CodeNotFound:
			return NewHTTPError(http.StatusNotFound, apperrors.CodeNotFound, appErr.Message, err)
		case apperrors.CodeInvalidInput:
			return NewHTTPError(http.StatusBadRequest, "invalid_request", appErr.Message, err)
		case apperrors.CodeFAQ:
			return NewHTTPError(http.StatusInternalServerError, "faq_failed", "failed to process faq request", err)
		}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func writeHTTPError(c *gin.Context, httpErr *HTTPError) {
	message := httpErr.Message
	if message == "" {
		message = httpErr.Error()
	}
	if httpErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(httpErr.RetryAfter))
	}
	c.JSON(httpErr.Status, gin.H{
		"error": gin.H{
			"code":    httpErr.Code,
			"message": message,
		},
	})
}
