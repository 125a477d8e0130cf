package patrol

import (
	"context"
	"encoding/base64"

	"github.com/skip2/go-qrcode"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/scanlog"
)

// Service owns the route state and the scan session, and bridges them to
// the gateway and the offline scan log queue.
type Service struct {
	app   *app.App
	gw    *gateway.Client
	route *RouteState
	scans *ScanSession
	queue *scanlog.Queue
}

// NewService creates the patrol service. queue may be nil to disable
// offline scan log buffering.
func NewService(a *app.App, gw *gateway.Client, queue *scanlog.Queue) *Service {
	route := NewRouteState()

	var logQueue LogQueue
	if queue != nil {
		logQueue = queue
	}
	scans := NewScanSession(gw, a.Session, route, logQueue, a.Config.ScanTimeout, a.Logger)

	s := &Service{
		app:   a,
		gw:    gw,
		route: route,
		scans: scans,
		queue: queue,
	}

	// A successful scan is a good moment to retry parked scan logs.
	scans.Subscribe(ObserverFunc(func(event Event) {
		if event.Result != nil && event.Result.Success {
			go s.flushQuietly()
		}
	}))

	return s
}

// Route exposes the route state (for handlers and tests).
func (s *Service) Route() *RouteState {
	return s.route
}

// Scans exposes the scan session (for handlers and tests).
func (s *Service) Scans() *ScanSession {
	return s.scans
}

// LoadRoute fetches the assigned route and resets scan progress, hydrating
// it from the backend's recent scans. Demo sessions get the canned route
// with no network call.
func (s *Service) LoadRoute(ctx context.Context) (ProgressResponse, error) {
	if s.app.Session.IsDemo() {
		s.route.Replace(DemoRoute(), nil)
		return s.Progress()
	}

	resp, err := s.gw.Route(ctx)
	if err != nil {
		return ProgressResponse{}, err
	}

	route := Route{
		ID:          resp.Route.ID,
		Name:        resp.Route.Name,
		Description: resp.Route.Description,
	}
	for _, cp := range resp.Route.Checkpoints {
		route.Checkpoints = append(route.Checkpoints, Checkpoint{
			ID:              cp.ID,
			Label:           cp.Label,
			ExpectedPayload: cp.ExpectedPayload,
		})
	}
	recent := make([]string, 0, len(resp.RecentScans))
	for _, scan := range resp.RecentScans {
		recent = append(recent, scan.QRData)
	}
	s.route.Replace(route, recent)

	return s.Progress()
}

// Progress reports the loaded route and scan progress.
func (s *Service) Progress() (ProgressResponse, error) {
	route, loaded := s.route.Route()
	if !loaded {
		return ProgressResponse{}, ErrNoRoute
	}
	return ProgressResponse{
		Route:            route,
		ScannedPayloads:  s.route.ScannedPayloads(),
		TotalCheckpoints: len(route.Checkpoints),
		ScannedCount:     s.route.ScannedCount(),
		ProgressFraction: s.route.ProgressFraction(),
	}, nil
}

// Compliance fetches compliance metrics for the officer dashboard.
func (s *Service) Compliance(ctx context.Context) ([]gateway.ComplianceMetric, error) {
	if s.app.Session.IsDemo() {
		return DemoCompliance(), nil
	}
	resp, err := s.gw.Compliance(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Metrics, nil
}

// CheckpointQR renders a checkpoint's expected payload as a PNG data URI so
// coordinators can print the code.
func (s *Service) CheckpointQR(id string) (string, error) {
	if _, loaded := s.route.Route(); !loaded {
		return "", ErrNoRoute
	}
	cp, ok := s.route.Checkpoint(id)
	if !ok {
		return "", ErrCheckpointNotFound
	}

	qr, err := qrcode.New(cp.ExpectedPayload, qrcode.Medium)
	if err != nil {
		return "", err
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// PendingLogs lists scan logs waiting in the offline queue.
func (s *Service) PendingLogs() ([]scanlog.Entry, error) {
	if s.queue == nil {
		return nil, nil
	}
	return s.queue.Pending()
}

// FlushLogs pushes queued scan logs to the backend. Demo sessions never
// flush; their entries stay local.
func (s *Service) FlushLogs(ctx context.Context) (int, error) {
	if s.queue == nil || s.app.Session.IsDemo() {
		return 0, nil
	}
	return s.queue.Flush(ctx, s.gw)
}

func (s *Service) flushQuietly() {
	ctx, cancel := context.WithTimeout(context.Background(), s.app.Config.RequestTimeout)
	defer cancel()

	if _, err := s.FlushLogs(ctx); err != nil {
		s.app.Logger.Printf("Background scan log flush: %v", err)
	}
}
