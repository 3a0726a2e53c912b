package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parseusers/parseusers/sdk/go/headers"
)

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, "https://parseapi.back4app.com/parse", client.BaseURL())
	assert.NotNil(t, client.Users)

	h := client.BaseHeaders()
	assert.Equal(t, "application/json", h.Get(headers.ContentType))
	assert.Equal(t, "1", h.Get(headers.RevocableSession))
	// Missing credentials are left for the service to reject.
	assert.Empty(t, h.Values(headers.ApplicationID))
	assert.Empty(t, h.Values(headers.MasterKey))
	assert.Empty(t, h.Values(headers.SessionToken))
}

func TestNewClientBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr string
	}{
		{name: "trailing slash", baseURL: "https://example.com/parse/", want: "https://example.com/parse"},
		{name: "spaces", baseURL: "  http://localhost:1337/parse ", want: "http://localhost:1337/parse"},
		{name: "missing scheme", baseURL: "example.com/parse", wantErr: "missing scheme"},
		{name: "missing host", baseURL: "https:///parse", wantErr: "missing host"},
		{name: "blank", baseURL: "   ", wantErr: "base URL required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Config{BaseURL: tt.baseURL})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.BaseURL())
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvApplicationID, "env-app")
	t.Setenv(EnvMasterKey, "env-master")
	t.Setenv(EnvBaseURL, " http://localhost:1337/parse ")

	cfg := ConfigFromEnv()
	assert.Equal(t, "env-app", cfg.ApplicationID)
	assert.Equal(t, "env-master", cfg.MasterKey)
	assert.Equal(t, "http://localhost:1337/parse", cfg.BaseURL)

	client, err := NewClient(cfg)
	require.NoError(t, err)
	h := client.BaseHeaders()
	assert.Equal(t, "env-app", h.Get(headers.ApplicationID))
	assert.Equal(t, "env-master", h.Get(headers.MasterKey))
}

func TestConfigFromEnvMissingCredentials(t *testing.T) {
	t.Setenv(EnvApplicationID, "")
	t.Setenv(EnvMasterKey, "")
	t.Setenv(EnvBaseURL, "")

	client, err := NewClient(ConfigFromEnv())
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, client.BaseURL())
}

func TestRevocableSessionDisabled(t *testing.T) {
	off := false
	client, err := NewClient(Config{RevocableSession: &off})
	require.NoError(t, err)
	assert.Equal(t, "0", client.BaseHeaders().Get(headers.RevocableSession))
}

func TestBaseHeadersReturnsCopy(t *testing.T) {
	client, err := NewClient(Config{ApplicationID: "app"})
	require.NoError(t, err)

	h := client.BaseHeaders()
	h.Set(headers.SessionToken, "leak")
	h.Set(headers.ApplicationID, "other")

	fresh := client.BaseHeaders()
	assert.Empty(t, fresh.Get(headers.SessionToken))
	assert.Equal(t, "app", fresh.Get(headers.ApplicationID))
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse/users/abc", r.URL.Path)
		assert.Equal(t, "app-id", r.Header.Get(headers.ApplicationID))
		assert.Equal(t, "master-key", r.Header.Get(headers.MasterKey))
		assert.Equal(t, "1", r.Header.Get(headers.RevocableSession))
		assert.Equal(t, "application/json", r.Header.Get(headers.ContentType))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "parse-users-sdk-go/"))
		assert.Len(t, r.Header.Get(headers.RequestID), 36)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"objectId":"abc"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	user, err := client.Users.GetUser(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", user.ObjectID())
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	client, rec := newRecordingClient(t)
	ctx := context.Background()
	_, err := client.Users.GetUser(ctx, "a")
	require.NoError(t, err)
	_, err = client.Users.GetUser(ctx, "a")
	require.NoError(t, err)

	reqs := rec.captured()
	require.Len(t, reqs, 2)
	assert.NotEqual(t, reqs[0].Header.Get(headers.RequestID), reqs[1].Header.Get(headers.RequestID))
}

func TestTelemetryHooks(t *testing.T) {
	var entries []LogEntry
	var metrics []Metric
	var requests, responses int
	rec := &recorder{responses: []func(*http.Request) (*http.Response, error){
		jsonResponse(http.StatusOK, `{"objectId":"u1"}`),
		jsonResponse(http.StatusNotFound, `{"code":101,"error":"Object not found."}`),
	}}
	client, err := NewClient(Config{
		BaseURL:    "https://parse.example.com/parse",
		MasterKey:  "master-key",
		HTTPClient: &http.Client{Transport: rec},
		Telemetry: TelemetryHooks{
			OnHTTPRequest:  func(context.Context, *http.Request) { requests++ },
			OnHTTPResponse: func(context.Context, *http.Request, *http.Response, error, time.Duration) { responses++ },
			OnLogEntry:     func(_ context.Context, e LogEntry) { entries = append(entries, e) },
			OnMetric:       func(_ context.Context, m Metric) { metrics = append(metrics, m) },
		},
	})
	require.NoError(t, err)

	_, err = client.Users.GetCurrentUser(context.Background(), "r:secret-token")
	require.NoError(t, err)
	_, err = client.Users.GetUser(context.Background(), "missing")
	require.Error(t, err)

	assert.Equal(t, 2, requests)
	assert.Equal(t, 2, responses)
	require.Len(t, metrics, 2)
	assert.Equal(t, "sdk_http_request_latency_ms", metrics[0].Name)
	assert.Equal(t, "/users/me", metrics[0].Labels["route"])
	assert.Equal(t, "/users/{id}", metrics[1].Labels["route"])

	require.Len(t, entries, 3)
	assert.Equal(t, LogLevelInfo, entries[0].Level)
	assert.Equal(t, "http_request", entries[0].Message)
	assert.Equal(t, LogLevelError, entries[2].Level)
	assert.Equal(t, 101, entries[2].Fields["code"])
	for _, e := range entries {
		for _, v := range e.Fields {
			s, _ := v.(string)
			assert.NotContains(t, s, "secret-token")
			assert.NotContains(t, s, "master-key")
		}
	}
}
