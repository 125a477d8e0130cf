package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestClient(url, scheme, token string) *Client {
	return NewClient(url, scheme, 2*time.Second, staticTokens{token: token}, quietLogger())
}

func TestAuthHeaderAttached(t *testing.T) {
	tests := []struct {
		name   string
		scheme string
		token  string
		want   string
	}{
		{"token scheme", "Token", "abc123", "Token abc123"},
		{"bearer scheme", "Bearer", "abc123", "Bearer abc123"},
		{"no token", "Token", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, tt.scheme, tt.token)
			_, err := c.OfficerProfile(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackendErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error field", 400, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"message field", 403, `{"message":"Account pending approval"}`, "Account pending approval"},
		{"detail field", 401, `{"detail":"Invalid token."}`, "Invalid token."},
		{"plain body", 500, `oops`, "HTTP error! status: 500"},
		{"empty body", 404, ``, "HTTP error! status: 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, "Token", "tok")
			_, err := c.Route(context.Background())
			require.Error(t, err)

			be, ok := AsBackendError(err)
			require.True(t, ok, "expected a BackendError, got %v", err)
			assert.Equal(t, tt.status, be.Status)
			assert.Equal(t, tt.wantMsg, be.Message)
			assert.False(t, IsNetworkError(err))
		})
	}
}

func TestUnauthorizedHelper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token."}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "Token", "stale")
	_, err := c.OfficerProfile(context.Background())
	assert.True(t, IsUnauthorized(err))
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL, "Token", "tok")
	_, err := c.Route(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	_, isBackend := AsBackendError(err)
	assert.False(t, isBackend)
}

func TestLoginOfficerRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/security/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "officer@example.com", req.Email)

		json.NewEncoder(w).Encode(LoginResponse{
			Token: "issued-token",
			User:  UserRecord{FirstName: "Jane", LastName: "Mokoena", Email: req.Email},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "Token", "")
	resp, err := c.LoginOfficer(context.Background(), LoginRequest{Email: "officer@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", resp.Token)
	assert.Equal(t, "Jane", resp.User.FirstName)
}

func TestValidateQRRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/security/validate-qr/", r.URL.Path)

		var req ValidateQRRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "member:42", req.QRData)

		json.NewEncoder(w).Encode(ValidationResult{
			Success: true,
			Type:    "member",
			Member:  &MemberRecord{ID: "42", Name: "Anna Botha"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "Token", "tok")
	result, err := c.ValidateQR(context.Background(), "member:42")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "member", result.Type)
	require.NotNil(t, result.Member)
	assert.Equal(t, "42", result.Member.ID)
}

func TestRouteRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RouteResponse{
			Route: RouteRecord{
				ID:   "route-9",
				Name: "Night Loop",
				Checkpoints: []CheckpointRecord{
					{ID: "cp-1", Label: "Gate", ExpectedPayload: "Main Gate"},
				},
				TotalCheckpoints: 1,
			},
			RecentScans: []RecentScan{{QRData: "Main Gate", ScannedAt: "2025-11-02T20:00:00Z"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "Token", "tok")
	resp, err := c.Route(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "route-9", resp.Route.ID)
	require.Len(t, resp.Route.Checkpoints, 1)
	assert.Equal(t, "Main Gate", resp.Route.Checkpoints[0].ExpectedPayload)
	require.Len(t, resp.RecentScans, 1)
}

func TestEmptyResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "Token", "tok")
	err := c.LogScan(context.Background(), LogScanRequest{QRData: "Main Gate"})
	assert.NoError(t, err)
}
