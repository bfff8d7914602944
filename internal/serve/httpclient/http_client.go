package httpclient

import (
	"net/http"
	"time"
)

type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
}

const (
	TimeoutClientInSeconds = 40
	// maxIdleConnsPerHost matches the handful of catalog calls a wizard session fires at once.
	maxIdleConnsPerHost = 10
)

// DefaultClient returns the client used to reach the remote betting API. Its timeout is the only
// deadline applied to remote transaction calls.
func DefaultClient() HTTPClientInterface {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = maxIdleConnsPerHost

	return &http.Client{
		Timeout:   TimeoutClientInSeconds * time.Second,
		Transport: transport,
	}
}

var _ HTTPClientInterface = DefaultClient()
