package patrol

import "errors"

var (
	// ErrPermissionDenied means camera access was refused; the surface
	// stays closed and the user must be routed to system settings.
	ErrPermissionDenied = errors.New("camera permission denied")

	// ErrNotArmed means a decode arrived while the capture surface was
	// closed.
	ErrNotArmed = errors.New("scan session is not armed")

	// ErrScanInFlight means arming was attempted while a scan is still
	// resolving.
	ErrScanInFlight = errors.New("a scan is already in flight")

	// ErrNoRoute means no patrol route has been loaded yet.
	ErrNoRoute = errors.New("no route loaded")

	// ErrCheckpointNotFound means the requested checkpoint is not part of
	// the loaded route.
	ErrCheckpointNotFound = errors.New("checkpoint not found in route")
)
