package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faq-translate/pkg/errors"
)

func TestAsHTTPErrorMapsDomainCodes(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "not found",
			err:     apperrors.Wrap(apperrors.CodeNotFound, "faq 7 not found", nil),
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "faq 7 not found",
		},
		{
			name:    "invalid input",
			err:     apperrors.Wrap(apperrors.CodeInvalidInput, "question cannot be empty", nil),
			status:  http.StatusBadRequest,
			code:    "invalid_request",
			message: "question cannot be empty",
		},
		{
			name:    "store failure hides cause",
			err:     apperrors.Wrap(apperrors.CodeFAQ, "failed to list faqs", errors.New("dial tcp: refused")),
			status:  http.StatusInternalServerError,
			code:    "faq_failed",
			message: "failed to process faq request",
		},
		{
			name:    "wrapped app error",
			err:     fmt.Errorf("handler: %w", apperrors.Wrap(apperrors.CodeNotFound, "faq 9 not found", nil)),
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "faq 9 not found",
		},
		{
			name:    "unknown error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "internal_error",
			message: "something went wrong",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := asHTTPError(tc.err)
			require.Equal(t, tc.status, got.Status)
			require.Equal(t, tc.code, got.Code)
			require.Equal(t, tc.message, got.Message)
			require.ErrorIs(t, got, tc.err)
		})
	}
}

func TestAsHTTPErrorKeepsHTTPError(t *testing.T) {
	original := NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil)
	require.Same(t, original, asHTTPError(fmt.Errorf("wrapped: %w", original)))
	require.Nil(t, asHTTPError(nil))
}

func TestWriteHTTPErrorSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	httpErr := NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil)
	httpErr.RetryAfter = 30
	writeHTTPError(c, httpErr)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "30", rec.Header().Get("Retry-After"))
	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])
	require.Equal(t, "too many requests", errBody["error"]["message"])
}
