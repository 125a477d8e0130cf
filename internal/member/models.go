package member

// LoginRequest represents a member login submission
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents a member signup submission
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
}

// CreatePostRequest represents a new forum post
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PanicRequest represents a member SOS trigger
type PanicRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Message   string   `json:"message"`
}

// CancelSubscriptionRequest represents a subscription cancellation. Confirm
// must be true; cancelling is destructive and needs an explicit confirm
// step.
type CancelSubscriptionRequest struct {
	Confirm bool `json:"confirm"`
}
