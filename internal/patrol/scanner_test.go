package patrol

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/scanlog"
)

type fakeDemo bool

func (d fakeDemo) IsDemo() bool { return bool(d) }

// fakeBackend records validate/log calls and serves canned responses. When
// block is set, ValidateQR waits on release before returning.
type fakeBackend struct {
	mu            sync.Mutex
	validateCalls int
	logCalls      int
	logRequests   []gateway.LogScanRequest

	result   gateway.ValidationResult
	validerr error
	logErr   error
	block    bool
	blocked  chan struct{}
	release  chan struct{}
	honorCtx bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		blocked: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (b *fakeBackend) ValidateQR(ctx context.Context, qrData string) (gateway.ValidationResult, error) {
	b.mu.Lock()
	b.validateCalls++
	b.mu.Unlock()

	if b.honorCtx {
		<-ctx.Done()
		return gateway.ValidationResult{}, &gateway.NetworkError{Err: ctx.Err()}
	}
	if b.block {
		b.blocked <- struct{}{}
		<-b.release
	}
	return b.result, b.validerr
}

func (b *fakeBackend) LogScan(ctx context.Context, req gateway.LogScanRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logCalls++
	b.logRequests = append(b.logRequests, req)
	return b.logErr
}

func (b *fakeBackend) validateCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validateCalls
}

func (b *fakeBackend) logRequest(i int) (gateway.LogScanRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i >= len(b.logRequests) {
		return gateway.LogScanRequest{}, false
	}
	return b.logRequests[i], true
}

type fakeQueue struct {
	mu      sync.Mutex
	entries []scanlog.Entry
}

func (q *fakeQueue) Enqueue(e scanlog.Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, e)
	return nil
}

func (q *fakeQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

type sessionFixture struct {
	session *ScanSession
	backend *fakeBackend
	route   *RouteState
	queue   *fakeQueue
	events  chan Event
}

func newFixture(t *testing.T, demo bool) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		backend: newFakeBackend(),
		route:   NewRouteState(),
		queue:   &fakeQueue{},
		events:  make(chan Event, 64),
	}
	f.route.Replace(DemoRoute(), nil)

	logger := log.New(io.Discard, "", 0)
	f.session = NewScanSession(f.backend, fakeDemo(demo), f.route, f.queue, 2*time.Second, logger)
	f.session.Subscribe(ObserverFunc(func(e Event) {
		f.events <- e
	}))
	return f
}

// waitFor drains events until one with the wanted state and a result arrives.
func (f *sessionFixture) waitForResult(t *testing.T, state State) Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-f.events:
			if e.State == state && e.Result != nil {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v event with result", state)
		}
	}
}

func TestArmWithoutPermission(t *testing.T) {
	f := newFixture(t, true)

	err := f.session.Arm(false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, StateIdle, f.session.State())
}

func TestArmIsIdempotent(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.session.Arm(true))
	require.NoError(t, f.session.Arm(true))
	assert.Equal(t, StateArmed, f.session.State())
}

func TestSubmitWithoutArm(t *testing.T) {
	f := newFixture(t, true)

	accepted, err := f.session.Submit("Building A - Lobby")
	assert.False(t, accepted)
	assert.ErrorIs(t, err, ErrNotArmed)
}

func TestDemoMemberScanOffRoute(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.session.Arm(true))

	accepted, err := f.session.Submit("member:42")
	require.NoError(t, err)
	require.True(t, accepted)

	e := f.waitForResult(t, StateIdle)
	assert.True(t, e.Result.Success)
	assert.Equal(t, "member", e.Result.Classification)
	require.NotNil(t, e.Result.Member)
	assert.Equal(t, "42", e.Result.Member.ID)
	assert.Equal(t, "Anna Botha", e.Result.Member.Name)

	// A member not tied to a checkpoint does not advance progress.
	assert.Equal(t, 0, f.route.ScannedCount())
	assert.Equal(t, 0, f.backend.validateCount())
}

func TestDemoMemberCheckpointScan(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.session.Arm(true))

	accepted, err := f.session.Submit("member:88")
	require.NoError(t, err)
	require.True(t, accepted)

	e := f.waitForResult(t, StateIdle)
	assert.True(t, e.Result.Success)
	assert.Equal(t, "member_checkpoint", e.Result.Classification)
	assert.True(t, f.route.IsScanned("member:88"))
	assert.Equal(t, 0, f.backend.validateCount())
}

func TestDemoLocationScan(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.session.Arm(true))

	accepted, err := f.session.Submit("Clubhouse - Main Gate")
	require.NoError(t, err)
	require.True(t, accepted)

	e := f.waitForResult(t, StateIdle)
	assert.True(t, e.Result.Success)
	assert.Equal(t, "location", e.Result.Classification)
	assert.Equal(t, "Clubhouse - Main Gate", e.Result.Location)
	assert.True(t, f.route.IsScanned("Clubhouse - Main Gate"))
	assert.Equal(t, 0, f.backend.validateCount())
}

func TestDemoInvalidScanReturnsToArmed(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.session.Arm(true))

	accepted, err := f.session.Submit("garbage payload")
	require.NoError(t, err)
	require.True(t, accepted)

	e := f.waitForResult(t, StateArmed)
	assert.False(t, e.Result.Success)
	assert.Equal(t, "invalid", e.Result.Classification)
	assert.Equal(t, "QR code did not match any known checkpoint or location", e.Result.Message)
	assert.Equal(t, 0, f.route.ScannedCount())

	// The surface stays armed, so the operator can retry immediately.
	accepted, err = f.session.Submit("Park - East Corner")
	require.NoError(t, err)
	assert.True(t, accepted)
	f.waitForResult(t, StateIdle)
}

func TestDemoSuccessEnqueuesLocalLog(t *testing.T) {
	f := newFixture(t, true)
	f.session.SetComment("gate secured")
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Building A - Lobby")
	require.NoError(t, err)
	f.waitForResult(t, StateIdle)

	require.Eventually(t, func() bool { return f.queue.depth() == 1 }, 2*time.Second, 10*time.Millisecond)
	f.queue.mu.Lock()
	entry := f.queue.entries[0]
	f.queue.mu.Unlock()
	assert.Equal(t, "Building A - Lobby", entry.QRData)
	assert.Equal(t, "gate secured", entry.Comment)
	assert.Equal(t, 0, f.backend.logCalls)
}

func TestBackendScanSuccess(t *testing.T) {
	f := newFixture(t, false)
	f.backend.result = gateway.ValidationResult{
		Success:  true,
		Type:     "location",
		Location: "Building A - Lobby",
	}
	f.session.SetComment("all clear")
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Building A - Lobby")
	require.NoError(t, err)

	e := f.waitForResult(t, StateIdle)
	assert.True(t, e.Result.Success)
	assert.Equal(t, "location", e.Result.Classification)
	assert.True(t, f.route.IsScanned("Building A - Lobby"))
	assert.Equal(t, 1, f.backend.validateCount())

	require.Eventually(t, func() bool {
		_, ok := f.backend.logRequest(0)
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	req, _ := f.backend.logRequest(0)
	assert.Equal(t, "Building A - Lobby", req.QRData)
	assert.Equal(t, "all clear", req.Comment)

	// The comment is consumed by the scan that carried it.
	last, ok := f.session.LastResult()
	require.True(t, ok)
	assert.Equal(t, e.Result.ScanID, last.ScanID)
}

func TestOnlyOneScanInFlight(t *testing.T) {
	f := newFixture(t, false)
	f.backend.block = true
	f.backend.result = gateway.ValidationResult{Success: true, Type: "location", Location: "Main Gate"}
	require.NoError(t, f.session.Arm(true))

	accepted, err := f.session.Submit("Main Gate")
	require.NoError(t, err)
	require.True(t, accepted)
	<-f.backend.blocked

	// A second decode while the first is classifying is dropped, not queued.
	accepted, err = f.session.Submit("Main Gate")
	require.NoError(t, err)
	assert.False(t, accepted)

	close(f.backend.release)
	f.waitForResult(t, StateIdle)
	assert.Equal(t, 1, f.backend.validateCount())
}

func TestNetworkFailureRejectsScan(t *testing.T) {
	f := newFixture(t, false)
	f.backend.validerr = &gateway.NetworkError{Err: assertableErr("connection refused")}
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Main Gate")
	require.NoError(t, err)

	e := f.waitForResult(t, StateArmed)
	assert.False(t, e.Result.Success)
	assert.Equal(t, "Cannot reach the backend, please try again", e.Result.Message)
	assert.Equal(t, 0, f.route.ScannedCount())
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }

func TestClassificationTimeout(t *testing.T) {
	f := newFixture(t, false)
	f.backend.honorCtx = true
	f.session.timeout = 20 * time.Millisecond
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Main Gate")
	require.NoError(t, err)

	e := f.waitForResult(t, StateArmed)
	assert.False(t, e.Result.Success)
	assert.Equal(t, "Validation timed out, please try again", e.Result.Message)
}

func TestBackendErrorMessageSurfaces(t *testing.T) {
	f := newFixture(t, false)
	f.backend.validerr = &gateway.BackendError{Status: 401, Message: "Invalid token."}
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Main Gate")
	require.NoError(t, err)

	e := f.waitForResult(t, StateArmed)
	assert.False(t, e.Result.Success)
	assert.Equal(t, "Invalid token.", e.Result.Message)
}

func TestCancelDiscardsLateClassification(t *testing.T) {
	f := newFixture(t, false)
	f.backend.block = true
	f.backend.result = gateway.ValidationResult{Success: true, Type: "location", Location: "Main Gate"}
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Main Gate")
	require.NoError(t, err)
	<-f.backend.blocked

	f.session.Cancel()
	assert.Equal(t, StateIdle, f.session.State())

	close(f.backend.release)

	// The late outcome must not surface: state stays idle, progress and
	// last result untouched.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, StateIdle, f.session.State())
	_, ok := f.session.LastResult()
	assert.False(t, ok)
	assert.False(t, f.route.IsScanned("Main Gate"))
}

func TestCancelWhileArmed(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.session.Arm(true))

	f.session.Cancel()
	assert.Equal(t, StateIdle, f.session.State())

	_, err := f.session.Submit("Main Gate")
	assert.ErrorIs(t, err, ErrNotArmed)
}

func TestLogNetworkFailureGoesToQueue(t *testing.T) {
	f := newFixture(t, false)
	f.backend.result = gateway.ValidationResult{Success: true, Type: "location", Location: "Main Gate"}
	f.backend.logErr = &gateway.NetworkError{Err: assertableErr("no route to host")}
	require.NoError(t, f.session.Arm(true))

	_, err := f.session.Submit("Main Gate")
	require.NoError(t, err)
	f.waitForResult(t, StateIdle)

	require.Eventually(t, func() bool { return f.queue.depth() == 1 }, 2*time.Second, 10*time.Millisecond)
	f.queue.mu.Lock()
	entry := f.queue.entries[0]
	f.queue.mu.Unlock()
	assert.Equal(t, "Main Gate", entry.QRData)
}
