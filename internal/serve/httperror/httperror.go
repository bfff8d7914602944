package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"
)

// HTTPError is the JSON body every failed session API call answers with.
type HTTPError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"error"`
	Extras     map[string]any `json:"extras,omitempty"`
	Err        error          `json:"-"`
	// ErrorCode is a stable identifier the front-ends use to pick a translated message. See code.go.
	ErrorCode string `json:"error_code,omitempty"`
}

var defaultMessages = map[int]string{
	http.StatusBadRequest:          "The request was invalid in some way.",
	http.StatusUnauthorized:        "Not authorized.",
	http.StatusNotFound:            "Resource not found.",
	http.StatusConflict:            "The request conflicts with the current state of the resource.",
	http.StatusUnprocessableEntity: "Unprocessable entity.",
	http.StatusInternalServerError: "An internal error occurred while processing this request.",
	http.StatusBadGateway:          "The remote service failed to process this request.",
}

// ReportErrorFunc reports errors nobody expected, usually to the crash tracker.
type ReportErrorFunc func(ctx context.Context, err error, msg string)

var (
	reportMu    sync.RWMutex
	reportError ReportErrorFunc = logError
)

func logError(ctx context.Context, err error, msg string) {
	if msg != "" {
		err = fmt.Errorf("%s: %w", msg, err)
	}
	log.Ctx(ctx).WithStack(err).Errorf("%+v", err)
}

// SetDefaultReportErrorFunc replaces the function InternalError reports through.
func SetDefaultReportErrorFunc(fn ReportErrorFunc) {
	reportMu.Lock()
	defer reportMu.Unlock()
	reportError = fn
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) WithErrorCode(code string) *HTTPError {
	e.ErrorCode = code
	return e
}

func (e *HTTPError) Render(w http.ResponseWriter) {
	httpjson.RenderStatus(w, e.StatusCode, e, httpjson.JSON)
}

// NewHTTPError builds an error for the status code. An HTTPError wrapped without a new message or
// extras is returned as is when it already carries the same status.
func NewHTTPError(statusCode int, msg string, originalErr error, extras map[string]any) *HTTPError {
	if msg == "" && originalErr != nil && len(extras) == 0 {
		var hErr *HTTPError
		if errors.As(originalErr, &hErr) && hErr.StatusCode == statusCode {
			return hErr
		}
	}

	if msg == "" {
		msg = defaultMessages[statusCode]
	}

	return &HTTPError{
		StatusCode: statusCode,
		Message:    msg,
		Extras:     extras,
		Err:        originalErr,
	}
}

func BadRequest(msg string, originalErr error, extras map[string]any) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, msg, originalErr, extras)
}

func Unauthorized(msg string, originalErr error, extras map[string]any) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, msg, originalErr, extras)
}

func NotFound(msg string, originalErr error, extras map[string]any) *HTTPError {
	return NewHTTPError(http.StatusNotFound, msg, originalErr, extras)
}

// Conflict is used when the wizard is not in a state that accepts the action.
func Conflict(msg string, originalErr error, extras map[string]any) *HTTPError {
	return NewHTTPError(http.StatusConflict, msg, originalErr, extras)
}

func UnprocessableEntity(msg string, originalErr error, extras map[string]any) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, msg, originalErr, extras)
}

// BadGateway is used when the remote service failed to serve a request on our behalf.
func BadGateway(msg string, originalErr error, extras map[string]any) *HTTPError {
	return NewHTTPError(http.StatusBadGateway, msg, originalErr, extras)
}

// InternalError reports the error before building the response, so it's never silently dropped.
func InternalError(ctx context.Context, msg string, originalErr error, extras map[string]any) *HTTPError {
	httpErr := NewHTTPError(http.StatusInternalServerError, msg, originalErr, extras)
	httpErr.ErrorCode = Code500_0

	reportMu.RLock()
	report := reportError
	reportMu.RUnlock()
	report(ctx, originalErr, httpErr.Message)

	return httpErr
}
