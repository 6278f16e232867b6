package onesky

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/onesky-appdesc/pkg/domain/types"
)

const DefaultBaseURL = "https://platform.api.onesky.io"

// ErrUnexpectedStatus is returned when OneSky responds with a status other
// than 200 or 204
var ErrUnexpectedStatus = goerr.New("unexpected status code from OneSky")

// Client talks to the OneSky platform API for one project
type Client struct {
	httpClient *http.Client
	baseURL    string
	publicKey  string
	secretKey  string
	projectID  string
	timeout    time.Duration
	now        func() time.Time
}

const defaultTimeout = 30 * time.Second

// Option is a functional option for Client
type Option func(*Client)

// WithBaseURL replaces the OneSky API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the timeout of each request. It applies to a copy of the
// HTTP client, also one given by WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithClock replaces the clock used for the authentication timestamp
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new OneSky client for a project
func NewClient(publicKey, secretKey, projectID string, opts ...Option) (*Client, error) {
	if publicKey == "" || secretKey == "" {
		return nil, goerr.New("OneSky public key and secret key are required")
	}
	if projectID == "" {
		return nil, goerr.New("OneSky project id is required")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		publicKey:  publicKey,
		secretKey:  secretKey,
		projectID:  projectID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}

	return c, nil
}

// authParams builds the api_key, timestamp and dev_hash query parameters
func (c *Client) authParams() url.Values {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	hash := md5.Sum([]byte(timestamp + c.secretKey))

	v := url.Values{}
	v.Set("api_key", c.publicKey)
	v.Set("timestamp", timestamp)
	v.Set("dev_hash", hex.EncodeToString(hash[:]))
	return v
}

// errorResponse is the error envelope of the OneSky API
type errorResponse struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
}

// ExportAppDescription exports the app description translation of a locale.
// A 204 response yields an empty body and no error.
func (c *Client) ExportAppDescription(ctx context.Context, locale string) ([]byte, error) {
	query := c.authParams()
	query.Set("locale", locale)

	endpoint := c.baseURL + "/1/projects/" + url.PathEscape(c.projectID) + "/app-descriptions/export?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create export request", goerr.V("locale", locale))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", types.AppName+"/"+types.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to export app description", goerr.V("locale", locale))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("locale", locale))
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNoContent:
		return nil, nil
	}

	var errResp errorResponse
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		message = errResp.Meta.Message
	}

	return nil, goerr.Wrap(ErrUnexpectedStatus, "failed to export app description",
		goerr.V("locale", locale),
		goerr.V("status", resp.StatusCode),
		goerr.V("message", message),
	)
}
