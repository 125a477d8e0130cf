package patrol

import "github.com/nwatch/patrol-console/internal/gateway"

// Checkpoint is a single expected scan target within a patrol route.
type Checkpoint struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	ExpectedPayload string `json:"expected_payload"`
}

// Route is the ordered collection of checkpoints assigned to an officer.
// Order is informational only; scanning is not required to follow it.
type Route struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// Classification is the outcome category of a scanned payload.
type Classification int

const (
	ClassInvalid Classification = iota
	ClassMember
	ClassMemberCheckpoint
	ClassLocation
)

// String returns the wire representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassMember:
		return "member"
	case ClassMemberCheckpoint:
		return "member_checkpoint"
	case ClassLocation:
		return "location"
	default:
		return "invalid"
	}
}

// classificationFromWire maps the backend's type field onto Classification.
func classificationFromWire(t string) Classification {
	switch t {
	case "member":
		return ClassMember
	case "member_checkpoint":
		return ClassMemberCheckpoint
	case "location":
		return ClassLocation
	default:
		return ClassInvalid
	}
}

// ScanResult is the transient outcome of one scan cycle. It is handed to
// the presentation layer and never persisted.
type ScanResult struct {
	ScanID         string                `json:"scan_id"`
	Payload        string                `json:"payload"`
	Success        bool                  `json:"success"`
	Classification string                `json:"classification"`
	Member         *gateway.MemberRecord `json:"member,omitempty"`
	Location       string                `json:"location,omitempty"`
	Message        string                `json:"message,omitempty"`
}

// Request/response shapes for the console's patrol endpoints.

// ArmRequest carries the camera permission outcome from the device.
type ArmRequest struct {
	PermissionGranted bool `json:"permission_granted"`
}

// DecodeRequest carries one decoded QR payload from the capture surface.
type DecodeRequest struct {
	Data string `json:"data"`
}

// CommentRequest sets the free-text comment carried by the next scan log.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// ProgressResponse describes the route and scan progress for display.
type ProgressResponse struct {
	Route            Route    `json:"route"`
	ScannedPayloads  []string `json:"scanned_payloads"`
	TotalCheckpoints int      `json:"total_checkpoints"`
	ScannedCount     int      `json:"scanned_count"`
	ProgressFraction float64  `json:"progress_fraction"`
}

// StatusResponse reports the scan session state for the viewfinder UI.
type StatusResponse struct {
	State      string      `json:"state"`
	LastResult *ScanResult `json:"last_result,omitempty"`
}
