package betapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/betpay/betpay-wallet/internal/utils"
)

// APIError represents a non-2xx response from the remote service.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int    `json:"-"`
	Detail     string `json:"detail,omitempty"`
	// ErrorTimeMessage is set when the transaction was attempted outside the allowed operating hours.
	ErrorTimeMessage string `json:"error_time_message,omitempty"`
	// Body is the raw response body, kept for logs when it doesn't match the expected shape.
	Body string `json:"-"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Detail=%s, ErrorTimeMessage=%s", e.StatusCode, e.Detail, e.ErrorTimeMessage)
}

// IsServerError reports whether the remote failure is worth retrying.
func (e APIError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

const maxErrorBodyLogSize = 256

// parseAPIError reads the error body. Bodies that are not JSON objects are kept raw in Body.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr.Body = fmt.Sprintf("reading error response body: %v", err)
		return apiErr
	}
	apiErr.Body = utils.TruncateString(string(body), maxErrorBodyLogSize/2)

	var payload struct {
		Detail           json.RawMessage `json:"detail"`
		ErrorTimeMessage string          `json:"error_time_message"`
	}
	if err = json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	apiErr.ErrorTimeMessage = strings.TrimSpace(payload.ErrorTimeMessage)
	if len(payload.Detail) > 0 {
		var detail string
		if json.Unmarshal(payload.Detail, &detail) == nil {
			apiErr.Detail = detail
		} else {
			apiErr.Detail = string(payload.Detail)
		}
	}

	return apiErr
}

// ExtractTimeErrorMessage returns the operating-hours message carried by a remote error, or ""
// when err is not a time-window error.
func ExtractTimeErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorTimeMessage
	}
	return ""
}
