package gateway

import (
	"context"
	"net/http"
)

// Security (officer) endpoints.

// LoginOfficer authenticates an officer and returns the issued token.
func (c *Client) LoginOfficer(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/security/login/", req, &resp)
	return resp, err
}

// SignupOfficer submits an officer signup for approval.
func (c *Client) SignupOfficer(ctx context.Context, req SignupRequest) (SignupResponse, error) {
	var resp SignupResponse
	err := c.do(ctx, http.MethodPost, "/security/signup/", req, &resp)
	return resp, err
}

// OfficerProfile fetches the signed-in officer's profile.
func (c *Client) OfficerProfile(ctx context.Context) (ProfileResponse, error) {
	var resp ProfileResponse
	err := c.do(ctx, http.MethodGet, "/security/profile/", nil, &resp)
	return resp, err
}

// Route fetches the assigned patrol route and recent scans.
func (c *Client) Route(ctx context.Context) (RouteResponse, error) {
	var resp RouteResponse
	err := c.do(ctx, http.MethodGet, "/security/route/", nil, &resp)
	return resp, err
}

// Compliance fetches the officer's compliance metrics.
func (c *Client) Compliance(ctx context.Context) (ComplianceResponse, error) {
	var resp ComplianceResponse
	err := c.do(ctx, http.MethodGet, "/security/compliance/", nil, &resp)
	return resp, err
}

// ValidateQR asks the backend to classify a scanned payload.
func (c *Client) ValidateQR(ctx context.Context, qrData string) (ValidationResult, error) {
	var resp ValidationResult
	err := c.do(ctx, http.MethodPost, "/security/validate-qr/", ValidateQRRequest{QRData: qrData}, &resp)
	return resp, err
}

// ScanQR validates and logs a scan in one round trip.
func (c *Client) ScanQR(ctx context.Context, req ScanQRRequest) (ScanQRResponse, error) {
	var resp ScanQRResponse
	err := c.do(ctx, http.MethodPost, "/security/scan-qr/", req, &resp)
	return resp, err
}

// UpdateProgress records a checkpoint as visited on the backend.
func (c *Client) UpdateProgress(ctx context.Context, routeID, checkpointID string) error {
	req := UpdateProgressRequest{RouteID: routeID, CheckpointID: checkpointID}
	return c.do(ctx, http.MethodPost, "/security/update-progress/", req, nil)
}

// LogScan submits a best-effort scan log entry.
func (c *Client) LogScan(ctx context.Context, req LogScanRequest) error {
	return c.do(ctx, http.MethodPost, "/security/log-scan/", req, nil)
}

// PanicAlerts lists outstanding member SOS alerts.
func (c *Client) PanicAlerts(ctx context.Context) (PanicAlertsResponse, error) {
	var resp PanicAlertsResponse
	err := c.do(ctx, http.MethodGet, "/security/panic-alerts/", nil, &resp)
	return resp, err
}

// ResolveAlert marks a panic alert as handled.
func (c *Client) ResolveAlert(ctx context.Context, alertID, status string) error {
	req := ResolveAlertRequest{AlertID: alertID, Status: status}
	return c.do(ctx, http.MethodPost, "/security/resolve-alert/", req, nil)
}

// Member companion endpoints.

// LoginMember authenticates a community member.
func (c *Client) LoginMember(ctx context.Context, req LoginRequest) (MemberLoginResponse, error) {
	var resp MemberLoginResponse
	err := c.do(ctx, http.MethodPost, "/login/", req, &resp)
	return resp, err
}

// SignupMember registers a new community member.
func (c *Client) SignupMember(ctx context.Context, req MemberSignupRequest) (SignupResponse, error) {
	var resp SignupResponse
	err := c.do(ctx, http.MethodPost, "/signup/", req, &resp)
	return resp, err
}

// Posts lists forum posts.
func (c *Client) Posts(ctx context.Context) (PostsResponse, error) {
	var resp PostsResponse
	err := c.do(ctx, http.MethodGet, "/posts/", nil, &resp)
	return resp, err
}

// CreatePost publishes a forum post.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (Post, error) {
	var resp Post
	err := c.do(ctx, http.MethodPost, "/posts/", req, &resp)
	return resp, err
}

// TriggerPanic raises a member SOS alert.
func (c *Client) TriggerPanic(ctx context.Context, req PanicRequest) error {
	return c.do(ctx, http.MethodPost, "/panic/", req, nil)
}

// Subscription fetches the member's subscription state.
func (c *Client) Subscription(ctx context.Context) (SubscriptionResponse, error) {
	var resp SubscriptionResponse
	err := c.do(ctx, http.MethodGet, "/subscription/", nil, &resp)
	return resp, err
}

// CancelSubscription cancels the member's subscription.
func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/subscription/cancel/", nil, nil)
}

// PatrolStats fetches neighborhood patrol statistics for the member home
// screen.
func (c *Client) PatrolStats(ctx context.Context) (PatrolStatsResponse, error) {
	var resp PatrolStatsResponse
	err := c.do(ctx, http.MethodGet, "/patrol-stats/", nil, &resp)
	return resp, err
}
