package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parseusers/parseusers/sdk/go/headers"
)

const defaultBaseURL = "https://parseapi.back4app.com/parse"

var defaultUserAgent = "parse-users-sdk-go/" + Version

// Environment variables read by ConfigFromEnv.
const (
	EnvApplicationID = "PARSER_APPLICATION_ID"
	EnvMasterKey     = "PARSER_MASTER_KEY" //nolint:gosec // variable name, not a credential
	EnvBaseURL       = "PARSER_BASE_URL"
)

// Config wires credentials, base URL, and telemetry for the API client.
type Config struct {
	BaseURL       string
	ApplicationID string
	MasterKey     string
	// RevocableSession controls the X-Parse-Revocable-Session header. Nil means "1".
	RevocableSession *bool
	HTTPClient       *http.Client
	Telemetry        TelemetryHooks
	UserAgent        string
}

// ConfigFromEnv builds a Config from PARSER_APPLICATION_ID, PARSER_MASTER_KEY and
// the optional PARSER_BASE_URL. Missing credentials are not an error here; the
// service rejects the requests instead.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:       strings.TrimSpace(os.Getenv(EnvBaseURL)),
		ApplicationID: os.Getenv(EnvApplicationID),
		MasterKey:     os.Getenv(EnvMasterKey),
	}
}

// Client provides high-level helpers for interacting with the Parse REST API.
// A Client is safe for concurrent use: it holds no per-call state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	app        appAuth
	template   http.Header
	telemetry  TelemetryHooks
	userAgent  string

	// Grouped service clients.
	Users *UsersClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	revocable := "1"
	if cfg.RevocableSession != nil && !*cfg.RevocableSession {
		revocable = "0"
	}
	client := &Client{
		baseURL:    normalized,
		httpClient: httpClient,
		app:        appAuth{applicationID: cfg.ApplicationID, masterKey: cfg.MasterKey},
		telemetry:  cfg.Telemetry,
		userAgent:  ua,
	}
	client.template = http.Header{}
	client.template.Set(headers.ContentType, "application/json")
	client.template.Set(headers.RevocableSession, revocable)
	client.app.Apply(client.template)
	client.Users = &UsersClient{client: client}
	return client, nil
}

// BaseURL returns the normalized endpoint all paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BaseHeaders returns a copy of the header template sent with every request.
// Mutating the result does not affect the client.
func (c *Client) BaseHeaders() http.Header {
	return c.template.Clone()
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("sdk: base URL required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("sdk: invalid base URL: %w", err)
	}
	if u.Scheme == "" {
		return "", errors.New("sdk: base URL missing scheme (http/https)")
	}
	if u.Host == "" {
		return "", errors.New("sdk: base URL missing host")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

// newJSONRequest builds a request whose headers are a fresh copy of the template
// plus whatever the per-call auth strategies add. Nothing is written back to the client.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any, auth ...authStrategy) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("sdk: encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	req.Header = c.BaseHeaders()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headers.RequestID, uuid.NewString())
	authChain(auth).Apply(req.Header)
	injectTraceparent(ctx, req)
	return req, nil
}

func (c *Client) prepare(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// send performs the request and returns the status and body of a 2xx response.
// Non-2xx responses become APIError; transport failures become TransportError.
func (c *Client) send(req *http.Request, route string) (int, []byte, error) {
	c.prepare(req)
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(req.Context(), req)
	}
	c.telemetry.log(req.Context(), LogLevelInfo, "http_request", map[string]any{
		"method": req.Method,
		"path":   req.URL.Path,
	})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(req.Context(), req, resp, err, latency)
	}
	c.telemetry.metric(req.Context(), "sdk_http_request_latency_ms", float64(latency.Milliseconds()), map[string]string{
		"method": req.Method,
		"route":  route,
	})
	if err != nil {
		c.telemetry.log(req.Context(), LogLevelError, "http_error", map[string]any{
			"method": req.Method,
			"path":   req.URL.Path,
			"error":  err.Error(),
		})
		return 0, nil, &TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp, data)
		c.telemetry.log(req.Context(), LogLevelError, "http_error", map[string]any{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": apiErr.Status,
			"code":   apiErr.Code,
		})
		return 0, nil, apiErr
	}
	return resp.StatusCode, data, nil
}

// do runs the full request/decode cycle for one call.
func (c *Client) do(ctx context.Context, method, route, path string, payload any, auth ...authStrategy) (Object, error) {
	req, err := c.newJSONRequest(ctx, method, path, payload, auth...)
	if err != nil {
		return nil, err
	}
	status, data, err := c.send(req, route)
	if err != nil {
		return nil, err
	}
	return decodeObject(status, data)
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
