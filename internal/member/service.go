package member

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/session"
)

// ErrNotConfirmed means a destructive action was submitted without the
// explicit confirm flag.
var ErrNotConfirmed = errors.New("action not confirmed")

// Service handles the member companion flows: forum, SOS, subscription and
// neighborhood patrol stats. Demo sessions run fully local.
type Service struct {
	app *app.App
	gw  *gateway.Client

	mu            sync.Mutex
	demoPosts     []gateway.Post
	demoCancelled bool
}

// NewService creates a new member service
func NewService(a *app.App, gw *gateway.Client) *Service {
	return &Service{
		app: a,
		gw:  gw,
		demoPosts: []gateway.Post{
			{ID: "post-1", Author: "Anna Botha", Title: "Gate remote lost", Content: "Found a gate remote near the park, contact me to claim.", CreatedAt: "2025-11-01T18:20:00Z"},
			{ID: "post-2", Author: "Sipho Dlamini", Title: "Suspicious vehicle", Content: "White bakkie circling Marula Close around midnight, plates covered.", CreatedAt: "2025-11-02T07:45:00Z"},
		},
	}
}

// Login authenticates a member and stores the issued token.
func (s *Service) Login(ctx context.Context, email, password string) (gateway.MemberRecord, error) {
	resp, err := s.gw.LoginMember(ctx, gateway.LoginRequest{Email: email, Password: password})
	if err != nil {
		return gateway.MemberRecord{}, err
	}

	s.app.Session.Set(resp.Token, session.User{
		FirstName: resp.User.Name,
		Email:     email,
		Role:      "member",
	})
	s.app.Logger.Printf("Member %s logged in", email)
	return resp.User, nil
}

// Signup registers a new member.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (string, error) {
	resp, err := s.gw.SignupMember(ctx, gateway.MemberSignupRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Posts lists forum posts.
func (s *Service) Posts(ctx context.Context) ([]gateway.Post, error) {
	if s.app.Session.IsDemo() {
		s.mu.Lock()
		defer s.mu.Unlock()
		return append([]gateway.Post(nil), s.demoPosts...), nil
	}

	resp, err := s.gw.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// CreatePost publishes a forum post.
func (s *Service) CreatePost(ctx context.Context, req CreatePostRequest) (gateway.Post, error) {
	if s.app.Session.IsDemo() {
		author := "Demo Member"
		if user, ok := s.app.Session.User(); ok && user.FirstName != "" {
			author = user.FirstName
		}
		post := gateway.Post{
			ID:        uuid.NewString(),
			Author:    author,
			Title:     req.Title,
			Content:   req.Content,
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		s.mu.Lock()
		s.demoPosts = append([]gateway.Post{post}, s.demoPosts...)
		s.mu.Unlock()
		return post, nil
	}

	return s.gw.CreatePost(ctx, gateway.CreatePostRequest(req))
}

// Panic raises a member SOS alert.
func (s *Service) Panic(ctx context.Context, req PanicRequest) error {
	if s.app.Session.IsDemo() {
		s.app.Logger.Printf("Demo SOS raised: %s", req.Message)
		return nil
	}
	return s.gw.TriggerPanic(ctx, gateway.PanicRequest(req))
}

// Subscription fetches the member's subscription state.
func (s *Service) Subscription(ctx context.Context) (gateway.SubscriptionResponse, error) {
	if s.app.Session.IsDemo() {
		s.mu.Lock()
		cancelled := s.demoCancelled
		s.mu.Unlock()

		status := "active"
		if cancelled {
			status = "cancelled"
		}
		return gateway.SubscriptionResponse{
			Plan:     "Neighborhood Watch Plus",
			Status:   status,
			RenewsAt: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		}, nil
	}

	return s.gw.Subscription(ctx)
}

// CancelSubscription cancels the member's subscription. The confirm flag
// must already have been checked by the caller.
func (s *Service) CancelSubscription(ctx context.Context) error {
	if s.app.Session.IsDemo() {
		s.mu.Lock()
		s.demoCancelled = true
		s.mu.Unlock()
		return nil
	}
	return s.gw.CancelSubscription(ctx)
}

// Stats fetches neighborhood patrol statistics.
func (s *Service) Stats(ctx context.Context) (gateway.PatrolStatsResponse, error) {
	if s.app.Session.IsDemo() {
		return gateway.PatrolStatsResponse{
			PatrolsToday:      6,
			LastPatrol:        fmt.Sprintf("%s (Evening Perimeter)", time.Now().Add(-2*time.Hour).Format("15:04")),
			IncidentsThisWeek: 1,
		}, nil
	}
	return s.gw.PatrolStats(ctx)
}
