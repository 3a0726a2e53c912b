package sdk

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method  string
	Path    string
	RawPath string
	Query   string
	Header  http.Header
	Body    []byte
}

// recorder is an http.RoundTripper that records requests and replies from a
// scripted list of responders, one per request.
type recorder struct {
	mu        sync.Mutex
	requests  []capturedRequest
	responses []func(*http.Request) (*http.Response, error)
}

func (r *recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}
	r.mu.Lock()
	r.requests = append(r.requests, capturedRequest{
		Method:  req.Method,
		Path:    req.URL.Path,
		RawPath: req.URL.EscapedPath(),
		Query:   req.URL.RawQuery,
		Header:  req.Header.Clone(),
		Body:    body,
	})
	idx := len(r.requests) - 1
	var respond func(*http.Request) (*http.Response, error)
	if idx < len(r.responses) {
		respond = r.responses[idx]
	}
	r.mu.Unlock()
	if respond == nil {
		return jsonResponse(http.StatusOK, `{}`)(req)
	}
	return respond(req)
}

func (r *recorder) captured() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.requests...)
}

func jsonResponse(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Request:    req,
		}, nil
	}
}

func transportError(err error) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) { return nil, err }
}

func newRecordingClient(t *testing.T, responses ...func(*http.Request) (*http.Response, error)) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{responses: responses}
	client, err := NewClient(Config{
		BaseURL:       "https://parse.example.com/parse",
		ApplicationID: "app-id",
		MasterKey:     "master-key",
		HTTPClient:    &http.Client{Transport: rec},
	})
	require.NoError(t, err)
	return client, rec
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:       srv.URL + "/parse",
		ApplicationID: "app-id",
		MasterKey:     "master-key",
		HTTPClient:    srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
