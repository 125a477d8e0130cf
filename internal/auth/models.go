package auth

// LoginRequest represents an officer login submission
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents an officer signup submission
type SignupRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// StatusResponse represents the console session status
type StatusResponse struct {
	LoggedIn  bool   `json:"logged_in"`
	Demo      bool   `json:"demo"`
	Email     string `json:"email,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ProfileResponse is the officer profile shown on the settings screen.
type ProfileResponse struct {
	Name        string `json:"name"`
	BadgeNumber string `json:"badge_number"`
	Email       string `json:"email"`
	Department  string `json:"department"`
}
