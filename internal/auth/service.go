package auth

import (
	"context"
	"errors"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/session"
)

// ErrNotLoggedIn means a flow requiring a session was used without one.
var ErrNotLoggedIn = errors.New("not logged in")

// Service handles officer authentication against the backend (or the demo
// sentinel) and owns writes to the session store.
type Service struct {
	app *app.App
	gw  *gateway.Client
}

// NewService creates a new auth service
func NewService(a *app.App, gw *gateway.Client) *Service {
	return &Service{app: a, gw: gw}
}

// Login authenticates an officer and stores the issued token.
func (s *Service) Login(ctx context.Context, email, password string) (session.User, error) {
	resp, err := s.gw.LoginOfficer(ctx, gateway.LoginRequest{Email: email, Password: password})
	if err != nil {
		return session.User{}, err
	}

	user := session.User{
		FirstName: resp.User.FirstName,
		LastName:  resp.User.LastName,
		Email:     resp.User.Email,
		Role:      "officer",
	}
	s.app.Session.Set(resp.Token, user)
	s.app.Logger.Printf("Officer %s logged in", user.Email)
	return user, nil
}

// DemoLogin stores the demo sentinel token. All backend-dependent flows
// then run against local mock data.
func (s *Service) DemoLogin() session.User {
	user := session.User{
		FirstName: "Demo",
		LastName:  "Officer",
		Email:     "demo@security.com",
		Role:      "officer",
	}
	s.app.Session.Set(session.DemoToken, user)
	s.app.Logger.Printf("Demo session started")
	return user
}

// Signup submits an officer signup for approval. No session is created;
// the account may need review before login works.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	resp, err := s.gw.SignupOfficer(ctx, gateway.SignupRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout clears the stored session.
func (s *Service) Logout() {
	if user, ok := s.app.Session.User(); ok {
		s.app.Logger.Printf("Session cleared for %s", user.Email)
	}
	s.app.Session.Clear()
}

// Profile fetches the signed-in officer's profile. Demo sessions get the
// canned demo profile with no network call.
func (s *Service) Profile(ctx context.Context) (ProfileResponse, error) {
	if _, ok := s.app.Session.Token(); !ok {
		return ProfileResponse{}, ErrNotLoggedIn
	}

	if s.app.Session.IsDemo() {
		return ProfileResponse{
			Name:        "Demo Officer",
			BadgeNumber: "DEMO-001",
			Email:       "demo@security.com",
			Department:  "Demo Division",
		}, nil
	}

	resp, err := s.gw.OfficerProfile(ctx)
	if err != nil {
		return ProfileResponse{}, err
	}

	department := resp.Profile.Department
	if department == "" {
		department = "Security Division"
	}
	return ProfileResponse{
		Name:        resp.User.FirstName + " " + resp.User.LastName,
		BadgeNumber: resp.Profile.EmployeeID,
		Email:       resp.User.Email,
		Department:  department,
	}, nil
}
