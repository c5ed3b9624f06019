package httpserver

import (
	"errors"
	"net/http"

	"aguagas/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Errors     []errorEntry `json:"errors"`
}

type errorEntry struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var conflictErrors = []error{
	domain.ErrEmptyCart,
	domain.ErrNoSupplier,
	domain.ErrSupplierMismatch,
	domain.ErrNotCancellable,
	domain.ErrInvalidTransition,
	domain.ErrChatClosed,
	domain.ErrUnknownKind,
	domain.ErrVersionConflict,
}

var validationErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidSize,
	domain.ErrInvalidRole,
	domain.ErrEmptyMessage,
}

func statusFor(err error) (int, string) {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, "ResourceNotFound"
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict, "PreconditionFailed"
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, "InvalidInput"
		}
	}
	return http.StatusInternalServerError, "General"
}

// writeError maps a service error onto an HTTP status. Internal errors are
// recorded on the context for the request logger and not echoed to clients.
func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, errorResponse{
		StatusCode: status,
		Message:    msg,
		Errors:     []errorEntry{{Code: code, Message: msg}},
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    msg,
		Errors:     []errorEntry{{Code: "InvalidInput", Message: msg}},
	})
}
