package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"catalog-service/internal/apperr"

	"github.com/labstack/echo/v4"
)

// errorResponse is the uniform envelope every failure is rendered as.
type errorResponse struct {
	Status      int                `json:"status"`
	ErrorCode   string             `json:"errorCode"`
	Message     string             `json:"message"`
	Path        string             `json:"path"`
	Timestamp   string             `json:"timestamp"`
	FieldErrors []apperr.FieldError `json:"fieldErrors,omitempty"`
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindDuplicate:    http.StatusConflict,
	apperr.KindBusinessRule: http.StatusBadRequest,
	apperr.KindAccessDenied: http.StatusForbidden,
	apperr.KindInternal:     http.StatusInternalServerError,
}

// internalMessage is the only thing a client ever sees for an unanticipated
// fault. Cause, storage error text and stack stay in the logs.
const internalMessage = "An unexpected error occurred"

// NewHTTPErrorHandler builds the single translation point between errors and
// HTTP responses. Handlers and services return typed errors and never build
// a response themselves; everything that unwinds out of a request lands here.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := translate(err, c)

		if resp.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", resp.Status,
				"error", err,
			)
		} else {
			logger.Warn("request rejected",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", resp.Status,
				"code", resp.ErrorCode,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(resp.Status)
			return
		}
		if jsonErr := c.JSON(resp.Status, resp); jsonErr != nil {
			logger.Error("failed to write error response", "error", jsonErr)
		}
	}
}

func translate(err error, c echo.Context) errorResponse {
	resp := errorResponse{
		Path:      c.Request().URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		resp.Status = statusByKind[appErr.Kind]
		resp.ErrorCode = appErr.Kind.Code()
		resp.FieldErrors = appErr.Fields
		if appErr.Kind == apperr.KindInternal {
			resp.Message = internalMessage
		} else {
			resp.Message = appErr.Message
		}
		return resp
	}

	// Failures Echo raises itself: unknown route, method not allowed, bind
	// errors, 401 from the auth middleware. Same envelope, status-derived
	// code.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		resp.Status = httpErr.Code
		resp.ErrorCode = codeForStatus(httpErr.Code)
		if resp.Status >= http.StatusInternalServerError {
			resp.Message = internalMessage
		} else {
			resp.Message = fmt.Sprintf("%v", httpErr.Message)
		}
		return resp
	}

	// Anything unrecognized is an internal fault.
	resp.Status = http.StatusInternalServerError
	resp.ErrorCode = apperr.KindInternal.Code()
	resp.Message = internalMessage
	return resp
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	case http.StatusUnauthorized:
		return "AUTHENTICATION_REQUIRED"
	case http.StatusForbidden:
		return "ACCESS_DENIED"
	case http.StatusNotFound:
		return "RESOURCE_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "INTERNAL_ERROR"
	}
}
