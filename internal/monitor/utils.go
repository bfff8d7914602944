package monitor

import (
	"fmt"
	"net/http"
)

const (
	noHTTPStatus  = "0"
	successStatus = "success"
	errorStatus   = "error"
)

// ParseHTTPResponseStatus returns the status and status-code labels of an outgoing request.
func ParseHTTPResponseStatus(resp *http.Response, reqErr error) (status, statusCode string) {
	if reqErr != nil || resp == nil {
		return errorStatus, noHTTPStatus
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return errorStatus, fmt.Sprint(resp.StatusCode)
	}
	return successStatus, fmt.Sprint(resp.StatusCode)
}
