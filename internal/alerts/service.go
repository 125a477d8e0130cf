package alerts

import (
	"context"
	"errors"
	"sync"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/patrol"
)

// ErrAlertNotFound means the alert does not exist (demo mode only; the
// backend reports its own failures).
var ErrAlertNotFound = errors.New("alert not found")

// Service handles member SOS alerts on the officer side. Demo sessions see
// canned alerts and resolve them locally.
type Service struct {
	app *app.App
	gw  *gateway.Client

	mu       sync.Mutex
	resolved map[string]string // demo-mode alert ID -> status
}

// NewService creates a new alerts service
func NewService(a *app.App, gw *gateway.Client) *Service {
	return &Service{app: a, gw: gw, resolved: make(map[string]string)}
}

// List returns outstanding panic alerts.
func (s *Service) List(ctx context.Context) ([]gateway.PanicAlert, error) {
	if s.app.Session.IsDemo() {
		s.mu.Lock()
		defer s.mu.Unlock()

		alerts := make([]gateway.PanicAlert, 0)
		for _, alert := range patrol.DemoAlerts() {
			if _, done := s.resolved[alert.ID]; !done {
				alerts = append(alerts, alert)
			}
		}
		return alerts, nil
	}

	resp, err := s.gw.PanicAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// Resolve marks an alert as handled.
func (s *Service) Resolve(ctx context.Context, alertID, status string) error {
	if status == "" {
		status = "resolved"
	}

	if s.app.Session.IsDemo() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, alert := range patrol.DemoAlerts() {
			if alert.ID == alertID {
				s.resolved[alertID] = status
				s.app.Logger.Printf("Demo alert %s marked %s", alertID, status)
				return nil
			}
		}
		return ErrAlertNotFound
	}

	return s.gw.ResolveAlert(ctx, alertID, status)
}
