package patrol

import (
	"sort"
	"sync"
)

// RouteState tracks the active route and which payloads were matched during
// the current patrol session. The scanned set grows monotonically and is
// replaced wholesale when a new route is loaded. Writes come only from the
// scan session's success path; reads come from the render path.
type RouteState struct {
	mu      sync.RWMutex
	route   Route
	loaded  bool
	scanned map[string]struct{}
}

// NewRouteState creates an empty route state.
func NewRouteState() *RouteState {
	return &RouteState{scanned: make(map[string]struct{})}
}

// Replace installs a freshly loaded route, resetting the scanned set and
// hydrating it from previously logged scans. Hydration keeps only payloads
// the route actually expects, so stale scans from an earlier route cannot
// inflate progress.
func (r *RouteState) Replace(route Route, recentPayloads []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.route = route
	r.loaded = true
	r.scanned = make(map[string]struct{})

	expected := make(map[string]struct{}, len(route.Checkpoints))
	for _, cp := range route.Checkpoints {
		expected[cp.ExpectedPayload] = struct{}{}
	}
	for _, p := range recentPayloads {
		if _, ok := expected[p]; ok {
			r.scanned[p] = struct{}{}
		}
	}
}

// Route returns a copy of the active route.
func (r *RouteState) Route() (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	route := r.route
	route.Checkpoints = append([]Checkpoint(nil), r.route.Checkpoints...)
	return route, r.loaded
}

// Checkpoint finds a checkpoint of the active route by ID.
func (r *RouteState) Checkpoint(id string) (Checkpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cp := range r.route.Checkpoints {
		if cp.ID == id {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// CheckpointByPayload finds a checkpoint whose expected payload matches.
func (r *RouteState) CheckpointByPayload(payload string) (Checkpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cp := range r.route.Checkpoints {
		if cp.ExpectedPayload == payload {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// IsScanned reports whether the payload was already matched this session.
func (r *RouteState) IsScanned(payload string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.scanned[payload]
	return ok
}

// MarkScanned records a matched payload. Idempotent.
func (r *RouteState) MarkScanned(payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scanned[payload] = struct{}{}
}

// ScannedCount returns the size of the scanned set.
func (r *RouteState) ScannedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.scanned)
}

// ScannedPayloads returns the scanned payloads in stable order.
func (r *RouteState) ScannedPayloads() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payloads := make([]string, 0, len(r.scanned))
	for p := range r.scanned {
		payloads = append(payloads, p)
	}
	sort.Strings(payloads)
	return payloads
}

// ProgressFraction returns scanned/total clamped to [0,1]. An empty route
// yields 0.
func (r *RouteState) ProgressFraction() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.route.Checkpoints)
	if total == 0 {
		return 0
	}
	fraction := float64(len(r.scanned)) / float64(total)
	if fraction > 1 {
		return 1
	}
	return fraction
}
