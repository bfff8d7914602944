package betapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/betpay/betpay-wallet/internal/authctx"
	"github.com/betpay/betpay-wallet/internal/data"
	"github.com/betpay/betpay-wallet/internal/monitor"
	"github.com/betpay/betpay-wallet/internal/serve/httpclient"
	"github.com/betpay/betpay-wallet/internal/utils"
)

const (
	platformsPath  = "/api/platforms"
	networksPath   = "/api/networks"
	userPhonesPath = "/api/user-phones"
	userAppIDsPath = "/api/user-app-ids"
	settingsPath   = "/api/settings"
	depositPath    = "/api/transactions/deposit"
	withdrawalPath = "/api/transactions/withdrawal"

	DefaultRetryAttempts = 4
	DefaultRetryDelay    = 200 * time.Millisecond
)

// ClientInterface defines the operations of the remote betting-wallet service used by the wizard.
type ClientInterface interface {
	ListPlatforms(ctx context.Context) ([]data.Platform, error)
	ListNetworks(ctx context.Context) ([]data.Network, error)
	ListUserPhones(ctx context.Context) ([]data.UserPhone, error)
	ListUserAppIDs(ctx context.Context) ([]data.UserAppID, error)
	GetSettings(ctx context.Context) (*data.Settings, error)
	CreateDeposit(ctx context.Context, req data.CreateTransactionRequest) (*data.CreateTransactionResponse, error)
	CreateWithdrawal(ctx context.Context, req data.CreateTransactionRequest) (*data.CreateTransactionResponse, error)
}

type ClientOptions struct {
	BaseURL        string
	Token          string
	HTTPClient     httpclient.HTTPClientInterface
	MonitorService monitor.MonitorServiceInterface
	RetryAttempts  uint
	RetryDelay     time.Duration
}

func (o ClientOptions) Validate() error {
	if err := utils.ValidateHTTPURL(o.BaseURL); err != nil {
		return fmt.Errorf("validating base url: %w", err)
	}
	return nil
}

// Client talks to the remote service. List and read operations are retried with exponential
// backoff on transport errors and 5xx responses. Transaction creation is never retried.
type Client struct {
	BasePath       string
	Token          string
	httpClient     httpclient.HTTPClientInterface
	monitorService monitor.MonitorServiceInterface
	retryAttempts  uint
	retryDelay     time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating client options: %w", err)
	}

	client := &Client{
		BasePath:       opts.BaseURL,
		Token:          opts.Token,
		httpClient:     opts.HTTPClient,
		monitorService: opts.MonitorService,
		retryAttempts:  opts.RetryAttempts,
		retryDelay:     opts.RetryDelay,
	}
	if client.httpClient == nil {
		client.httpClient = httpclient.DefaultClient()
	}
	if client.retryAttempts == 0 {
		client.retryAttempts = DefaultRetryAttempts
	}
	if client.retryDelay == 0 {
		client.retryDelay = DefaultRetryDelay
	}

	return client, nil
}

func (client *Client) ListPlatforms(ctx context.Context) ([]data.Platform, error) {
	var platforms []data.Platform
	if err := client.getList(ctx, platformsPath, &platforms); err != nil {
		return nil, fmt.Errorf("listing platforms: %w", err)
	}
	return platforms, nil
}

func (client *Client) ListNetworks(ctx context.Context) ([]data.Network, error) {
	var networks []data.Network
	if err := client.getList(ctx, networksPath, &networks); err != nil {
		return nil, fmt.Errorf("listing networks: %w", err)
	}
	return networks, nil
}

func (client *Client) ListUserPhones(ctx context.Context) ([]data.UserPhone, error) {
	var phones []data.UserPhone
	if err := client.getList(ctx, userPhonesPath, &phones); err != nil {
		return nil, fmt.Errorf("listing user phones: %w", err)
	}
	return phones, nil
}

func (client *Client) ListUserAppIDs(ctx context.Context) ([]data.UserAppID, error) {
	var appIDs []data.UserAppID
	if err := client.getList(ctx, userAppIDsPath, &appIDs); err != nil {
		return nil, fmt.Errorf("listing user app ids: %w", err)
	}
	return appIDs, nil
}

func (client *Client) GetSettings(ctx context.Context) (*data.Settings, error) {
	var settings data.Settings
	if err := client.getJSON(ctx, settingsPath, &settings); err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return &settings, nil
}

func (client *Client) CreateDeposit(ctx context.Context, req data.CreateTransactionRequest) (*data.CreateTransactionResponse, error) {
	resp, err := client.createTransaction(ctx, depositPath, req)
	if err != nil {
		return nil, fmt.Errorf("creating deposit: %w", err)
	}
	return resp, nil
}

func (client *Client) CreateWithdrawal(ctx context.Context, req data.CreateTransactionRequest) (*data.CreateTransactionResponse, error) {
	resp, err := client.createTransaction(ctx, withdrawalPath, req)
	if err != nil {
		return nil, fmt.Errorf("creating withdrawal: %w", err)
	}
	return resp, nil
}

func (client *Client) createTransaction(ctx context.Context, path string, txReq data.CreateTransactionRequest) (*data.CreateTransactionResponse, error) {
	u, err := url.JoinPath(client.BasePath, path)
	if err != nil {
		return nil, fmt.Errorf("building path: %w", err)
	}

	body, err := json.Marshal(txReq)
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	resp, err := client.request(ctx, u, path, http.MethodPost, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("API error: %w", parseAPIError(resp))
	}

	var txResp data.CreateTransactionResponse
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err = json.Unmarshal(respBody, &txResp); err != nil {
			// The transaction was created, an unexpected body only means there is no link.
			log.Ctx(ctx).Warnf("unmarshalling transaction response from %s: %v", path, err)
		}
	}

	return &txResp, nil
}

// getList decodes either a bare JSON array or a paginated {"results": [...]} envelope.
func (client *Client) getList(ctx context.Context, path string, dst any) error {
	var raw json.RawMessage
	if err := client.getJSON(ctx, path, &raw); err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return fmt.Errorf("unmarshalling paginated response: %w", err)
		}
		trimmed = envelope.Results
	}

	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("unmarshalling list response: %w", err)
	}
	return nil
}

func (client *Client) getJSON(ctx context.Context, path string, dst any) error {
	u, err := url.JoinPath(client.BasePath, path)
	if err != nil {
		return fmt.Errorf("building path: %w", err)
	}

	return retry.Do(
		func() error {
			resp, reqErr := client.request(ctx, u, path, http.MethodGet, nil)
			if reqErr != nil {
				return fmt.Errorf("making request: %w", reqErr)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				apiErr := parseAPIError(resp)
				if apiErr.IsServerError() {
					return fmt.Errorf("API error: %w", apiErr)
				}
				return retry.Unrecoverable(fmt.Errorf("API error: %w", apiErr))
			}

			if decodeErr := json.NewDecoder(resp.Body).Decode(dst); decodeErr != nil {
				return retry.Unrecoverable(fmt.Errorf("decoding response: %w", decodeErr))
			}
			return nil
		},
		retry.Attempts(client.retryAttempts),
		retry.Delay(client.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warnf("retrying %s (attempt %d): %v", path, n+1, err)
		}),
	)
}

func (client *Client) request(ctx context.Context, u, endpoint, method string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	if token := client.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.httpClient.Do(req)
	client.recordMetrics(ctx, method, endpoint, time.Since(start), resp, err)

	return resp, err
}

// tokenFor prefers the token forwarded in the request context over the configured one.
func (client *Client) tokenFor(ctx context.Context) string {
	token, err := authctx.GetTokenFromContext(ctx)
	if err == nil {
		return token
	}
	if !errors.Is(err, authctx.ErrTokenNotFoundInContext) {
		log.Ctx(ctx).Warnf("reading token from context: %v", err)
	}
	return client.Token
}

func (client *Client) recordMetrics(ctx context.Context, method, endpoint string, duration time.Duration, resp *http.Response, reqErr error) {
	if client.monitorService == nil {
		return
	}

	status, statusCode := monitor.ParseHTTPResponseStatus(resp, reqErr)
	labels := monitor.RemoteAPILabels{
		Method:     method,
		Endpoint:   endpoint,
		Status:     status,
		StatusCode: statusCode,
	}.ToMap()

	if err := client.monitorService.MonitorHistogram(duration.Seconds(), monitor.RemoteAPIRequestDurationTag, labels); err != nil {
		log.Ctx(ctx).Errorf("monitoring histogram %s: %v", monitor.RemoteAPIRequestDurationTag, err)
	}
	if err := client.monitorService.MonitorCounters(monitor.RemoteAPIRequestsTotalTag, labels); err != nil {
		log.Ctx(ctx).Errorf("monitoring counter %s: %v", monitor.RemoteAPIRequestsTotalTag, err)
	}
}

var _ ClientInterface = (*Client)(nil)
