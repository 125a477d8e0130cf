package gateway

// Wire shapes for the security (officer) endpoints.

// LoginRequest is the body of POST /security/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the user record.
type LoginResponse struct {
	Token   string     `json:"token"`
	User    UserRecord `json:"user"`
	Message string     `json:"message,omitempty"`
}

// UserRecord is the backend's user shape shared by login/profile responses.
type UserRecord struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// SignupRequest is the body of POST /security/signup/.
type SignupRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SignupResponse acknowledges a signup submission (approval may be pending).
type SignupResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is the shape of GET /security/profile/.
type ProfileResponse struct {
	User    UserRecord     `json:"user"`
	Profile OfficerProfile `json:"profile"`
}

// OfficerProfile holds officer-specific profile fields.
type OfficerProfile struct {
	EmployeeID string `json:"employee_id"`
	Department string `json:"department,omitempty"`
}

// RouteResponse is the shape of GET /security/route/.
type RouteResponse struct {
	Route       RouteRecord  `json:"route"`
	RecentScans []RecentScan `json:"recent_scans"`
}

// RouteRecord is the assigned patrol route as the backend sends it.
type RouteRecord struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Checkpoints      []CheckpointRecord `json:"checkpoints"`
	TotalCheckpoints int                `json:"total_checkpoints"`
}

// CheckpointRecord is one scan target within the route.
type CheckpointRecord struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	ExpectedPayload string `json:"expected_payload"`
}

// RecentScan is a previously logged scan returned on route load, used to
// hydrate client-side progress.
type RecentScan struct {
	QRData    string `json:"qr_data"`
	ScannedAt string `json:"scanned_at"`
}

// ComplianceResponse is the shape of GET /security/compliance/.
type ComplianceResponse struct {
	Metrics []ComplianceMetric `json:"metrics"`
}

// ComplianceMetric is one compliance figure for the officer dashboard.
type ComplianceMetric struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// ValidateQRRequest is the body of POST /security/validate-qr/.
type ValidateQRRequest struct {
	QRData string `json:"qr_data"`
}

// ValidationResult is the backend's classification of a scanned payload.
// Type is one of "member", "member_checkpoint", "location" or "invalid".
type ValidationResult struct {
	Success  bool          `json:"success"`
	Type     string        `json:"type"`
	Member   *MemberRecord `json:"member,omitempty"`
	Location string        `json:"location,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// MemberRecord identifies a community member tied to a member QR code.
type MemberRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// ScanQRRequest is the body of POST /security/scan-qr/ (validate and log in
// one round trip).
type ScanQRRequest struct {
	QRData     string   `json:"qr_data"`
	Comment    string   `json:"comment"`
	ScanStatus string   `json:"scan_status"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// ScanQRResponse wraps the validation outcome of a combined scan call.
type ScanQRResponse struct {
	Validation ValidationResult `json:"validation"`
}

// UpdateProgressRequest is the body of POST /security/update-progress/.
type UpdateProgressRequest struct {
	RouteID      string `json:"route_id"`
	CheckpointID string `json:"checkpoint_id"`
}

// LogScanRequest is the body of the best-effort POST /security/log-scan/.
type LogScanRequest struct {
	QRData   string `json:"qr_data"`
	Comment  string `json:"comment"`
	Location string `json:"location,omitempty"`
}

// PanicAlertsResponse is the shape of GET /security/panic-alerts/.
type PanicAlertsResponse struct {
	Alerts []PanicAlert `json:"alerts"`
}

// PanicAlert is one outstanding member SOS.
type PanicAlert struct {
	ID          string `json:"id"`
	MemberName  string `json:"member_name"`
	MemberEmail string `json:"member_email"`
	Address     string `json:"address"`
	Timestamp   string `json:"timestamp"`
}

// ResolveAlertRequest is the body of POST /security/resolve-alert/.
type ResolveAlertRequest struct {
	AlertID string `json:"alert_id"`
	Status  string `json:"status"`
}

// Wire shapes for the member companion endpoints.

// MemberLoginResponse carries the member token and record after login.
type MemberLoginResponse struct {
	Token string       `json:"token"`
	User  MemberRecord `json:"user"`
}

// MemberSignupRequest is the body of POST /signup/.
type MemberSignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address,omitempty"`
}

// Post is one forum post.
type Post struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// PostsResponse is the shape of GET /posts/.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// CreatePostRequest is the body of POST /posts/.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PanicRequest is the body of POST /panic/ (member SOS trigger).
type PanicRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// SubscriptionResponse is the shape of GET /subscription/.
type SubscriptionResponse struct {
	Plan     string `json:"plan"`
	Status   string `json:"status"`
	RenewsAt string `json:"renews_at,omitempty"`
}

// PatrolStatsResponse is the shape of GET /patrol-stats/ shown on the member
// home screen.
type PatrolStatsResponse struct {
	PatrolsToday      int    `json:"patrols_today"`
	LastPatrol        string `json:"last_patrol"`
	IncidentsThisWeek int    `json:"incidents_this_week"`
}
