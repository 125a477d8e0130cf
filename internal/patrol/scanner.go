package patrol

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/scanlog"
)

// State is the scan session's position in the scan cycle.
type State int

const (
	// StateIdle: capture surface closed, no decode accepted.
	StateIdle State = iota
	// StateArmed: surface open, waiting for a decode.
	StateArmed
	// StateDecoding: a payload was received; further decodes are ignored
	// until this scan resolves.
	StateDecoding
	// StateClassifying: the payload is being checked against the demo
	// tables or the backend.
	StateClassifying
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDecoding:
		return "decoding"
	case StateClassifying:
		return "classifying"
	default:
		return "idle"
	}
}

// Backend is the slice of the gateway the scan session needs. Demo sessions
// never call it.
type Backend interface {
	ValidateQR(ctx context.Context, qrData string) (gateway.ValidationResult, error)
	LogScan(ctx context.Context, req gateway.LogScanRequest) error
}

// DemoSource reports whether the current session is a demo session.
// Implemented by *session.Store.
type DemoSource interface {
	IsDemo() bool
}

// LogQueue buffers scan logs that could not reach the backend. Implemented
// by *scanlog.Queue; may be nil to disable offline buffering.
type LogQueue interface {
	Enqueue(e scanlog.Entry) error
}

// Event is a scan session state transition, delivered to observers.
type Event struct {
	ScanID string
	State  State
	Result *ScanResult
}

// Observer receives scan session events.
type Observer interface {
	OnScanEvent(event Event)
}

// ObserverFunc is a function that implements the Observer interface
type ObserverFunc func(event Event)

// OnScanEvent calls the observer function
func (f ObserverFunc) OnScanEvent(event Event) {
	f(event)
}

// ValidationOutcome is the internal classification of one payload before it
// is shaped into a ScanResult.
type ValidationOutcome struct {
	Classification Classification
	Member         *gateway.MemberRecord
	Location       string
	Message        string
}

// ScanSession is the state machine governing one camera-based QR capture
// cycle: arm the surface, accept exactly one decode at a time, classify it,
// record route progress and fire the best-effort scan log.
//
// Decodes are fed through a channel with a single consumer; while a scan is
// in flight further decodes are dropped, which guards against double-fire
// from consecutive camera frames of the same code. Cancelling bumps a
// generation counter so a classification that resolves late is discarded.
type ScanSession struct {
	mu         sync.Mutex
	state      State
	gen        uint64
	decodes    chan string
	stop       chan struct{}
	comment    string
	lastResult *ScanResult
	observers  []Observer

	backend Backend
	demo    DemoSource
	route   *RouteState
	queue   LogQueue
	timeout time.Duration
	logger  *log.Logger
}

// NewScanSession creates an idle scan session.
func NewScanSession(backend Backend, demo DemoSource, route *RouteState, queue LogQueue, timeout time.Duration, logger *log.Logger) *ScanSession {
	return &ScanSession{
		state:   StateIdle,
		backend: backend,
		demo:    demo,
		route:   route,
		queue:   queue,
		timeout: timeout,
		logger:  logger,
	}
}

// Subscribe registers an observer for scan events.
func (s *ScanSession) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// State returns the current state.
func (s *ScanSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastResult returns a copy of the most recent scan outcome, if any.
func (s *ScanSession) LastResult() (ScanResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResult == nil {
		return ScanResult{}, false
	}
	return *s.lastResult, true
}

// SetComment sets the free-text comment carried by the next successful scan
// log. It is cleared once used.
func (s *ScanSession) SetComment(comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comment = comment
}

// Arm opens the capture surface. If camera permission was refused the
// session stays idle and the caller must surface a permission affordance.
// Arming an already-armed session is a no-op.
func (s *ScanSession) Arm(permissionGranted bool) error {
	s.mu.Lock()
	if !permissionGranted {
		s.mu.Unlock()
		return ErrPermissionDenied
	}
	switch s.state {
	case StateArmed:
		s.mu.Unlock()
		return nil
	case StateDecoding, StateClassifying:
		s.mu.Unlock()
		return ErrScanInFlight
	}
	s.gen++
	gen := s.gen
	s.state = StateArmed
	s.decodes = make(chan string)
	s.stop = make(chan struct{})
	decodes, stop := s.decodes, s.stop
	s.mu.Unlock()

	s.emit(Event{State: StateArmed})
	go s.consume(gen, decodes, stop)
	return nil
}

// Submit feeds one decoded payload into the session. It reports whether the
// decode was accepted: decodes arriving while another scan is resolving are
// dropped (not queued), and submitting to an idle session is an error.
func (s *ScanSession) Submit(data string) (bool, error) {
	s.mu.Lock()
	switch s.state {
	case StateIdle:
		s.mu.Unlock()
		return false, ErrNotArmed
	case StateDecoding, StateClassifying:
		s.mu.Unlock()
		return false, nil
	}
	s.state = StateDecoding
	decodes, stop := s.decodes, s.stop
	s.mu.Unlock()

	s.emit(Event{State: StateDecoding})
	select {
	case decodes <- data:
		return true, nil
	case <-stop:
		return false, nil
	}
}

// Cancel closes the capture surface from any state. A classification still
// in flight is discarded when it resolves.
func (s *ScanSession) Cancel() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	s.gen++
	close(s.stop)
	s.state = StateIdle
	s.mu.Unlock()

	s.emit(Event{State: StateIdle})
}

// consume is the single decode consumer for one armed cycle.
func (s *ScanSession) consume(gen uint64, decodes <-chan string, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case data := <-decodes:
			if !s.resolve(gen, data) {
				return
			}
		}
	}
}

// resolve classifies one payload and applies the outcome. It reports
// whether the session is still armed for this generation.
func (s *ScanSession) resolve(gen uint64, data string) bool {
	s.mu.Lock()
	if s.gen != gen || s.state != StateDecoding {
		s.mu.Unlock()
		return false
	}
	s.state = StateClassifying
	scanID := uuid.NewString()
	comment := s.comment
	isDemo := s.demo.IsDemo()
	s.mu.Unlock()

	s.emit(Event{ScanID: scanID, State: StateClassifying})

	outcome, err := s.classify(data, isDemo)
	result := s.buildResult(scanID, data, outcome, err)

	return s.apply(gen, outcome.Classification, result, comment, isDemo)
}

// classify checks the payload against the demo tables or the backend.
func (s *ScanSession) classify(data string, isDemo bool) (ValidationOutcome, error) {
	if isDemo {
		return demoClassify(data, s.route), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	v, err := s.backend.ValidateQR(ctx, data)
	if err != nil {
		return ValidationOutcome{}, err
	}
	if !v.Success {
		message := v.Message
		if message == "" {
			message = "QR code did not match any known checkpoint or location"
		}
		return ValidationOutcome{Classification: ClassInvalid, Message: message}, nil
	}
	return ValidationOutcome{
		Classification: classificationFromWire(v.Type),
		Member:         v.Member,
		Location:       v.Location,
		Message:        v.Message,
	}, nil
}

// buildResult shapes a classification (or its failure) into a ScanResult.
// A network failure or timeout is "cannot classify", never a success.
func (s *ScanSession) buildResult(scanID, data string, outcome ValidationOutcome, err error) ScanResult {
	result := ScanResult{
		ScanID:         scanID,
		Payload:        data,
		Classification: outcome.Classification.String(),
	}

	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			result.Message = "Validation timed out, please try again"
		case gateway.IsNetworkError(err):
			result.Message = "Cannot reach the backend, please try again"
		default:
			if be, ok := gateway.AsBackendError(err); ok {
				result.Message = be.Message
			} else {
				result.Message = err.Error()
			}
		}
		return result
	}

	result.Success = outcome.Classification != ClassInvalid
	result.Member = outcome.Member
	result.Location = outcome.Location
	result.Message = outcome.Message
	return result
}

// apply installs the scan outcome unless the cycle was cancelled while the
// classification was in flight. Success closes the surface; rejection
// returns to armed so the operator can retry without re-opening the camera.
func (s *ScanSession) apply(gen uint64, class Classification, result ScanResult, comment string, isDemo bool) bool {
	s.mu.Lock()
	if s.gen != gen {
		// Cancelled mid-classification; the late outcome is discarded.
		s.mu.Unlock()
		return false
	}
	s.lastResult = &result

	if result.Success {
		if class == ClassMemberCheckpoint || class == ClassLocation {
			s.route.MarkScanned(result.Payload)
		}
		s.comment = ""
		s.state = StateIdle
		s.mu.Unlock()

		s.emit(Event{ScanID: result.ScanID, State: StateIdle, Result: &result})
		go s.logScan(result, comment, isDemo)
		return false
	}

	s.state = StateArmed
	s.mu.Unlock()

	s.emit(Event{ScanID: result.ScanID, State: StateArmed, Result: &result})
	return true
}

// logScan fires the best-effort scan log. Failures are swallowed into
// diagnostics; a network failure parks the entry in the offline queue.
func (s *ScanSession) logScan(result ScanResult, comment string, isDemo bool) {
	entry := scanlog.Entry{
		QRData:    result.Payload,
		Comment:   comment,
		Location:  result.Location,
		ScannedAt: time.Now(),
	}

	if isDemo {
		s.enqueue(entry)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	req := gateway.LogScanRequest{QRData: entry.QRData, Comment: entry.Comment, Location: entry.Location}
	if err := s.backend.LogScan(ctx, req); err != nil {
		s.logger.Printf("Scan log for %q failed: %v", entry.QRData, err)
		if gateway.IsNetworkError(err) {
			s.enqueue(entry)
		}
	}
}

func (s *ScanSession) enqueue(entry scanlog.Entry) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(entry); err != nil {
		s.logger.Printf("Failed to queue scan log for %q: %v", entry.QRData, err)
	}
}

// emit delivers an event to all observers outside the session lock.
func (s *ScanSession) emit(event Event) {
	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o.OnScanEvent(event)
	}
}
