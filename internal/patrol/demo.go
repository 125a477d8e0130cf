package patrol

import (
	"strings"

	"github.com/nwatch/patrol-console/internal/gateway"
)

// Demo-mode tables. A demo session classifies every payload against these
// without touching the gateway, so the app demos end to end with no backend.

const memberPayloadPrefix = "member:"

var demoMembers = map[string]gateway.MemberRecord{
	"42": {ID: "42", Name: "Anna Botha", Address: "14 Acacia Street"},
	"57": {ID: "57", Name: "Sipho Dlamini", Address: "3 Marula Close"},
	"63": {ID: "63", Name: "Maria Fourie", Address: "29 Protea Avenue"},
	"88": {ID: "88", Name: "Pieter van Wyk", Address: "7 Karee Lane"},
}

var demoLocations = map[string]struct{}{
	"Building A - Lobby":          {},
	"Building B - North Entrance": {},
	"Clubhouse - Main Gate":       {},
	"Park - East Corner":          {},
	"Pool Area - Service Door":    {},
}

// DemoRoute returns the canned patrol route used by demo sessions.
func DemoRoute() Route {
	return Route{
		ID:          "demo-route-1",
		Name:        "Evening Perimeter",
		Description: "Standard evening sweep of the estate perimeter and member homes",
		Checkpoints: []Checkpoint{
			{ID: "cp-1", Label: "Building A - Lobby", ExpectedPayload: "Building A - Lobby"},
			{ID: "cp-2", Label: "Building B - North Entrance", ExpectedPayload: "Building B - North Entrance"},
			{ID: "cp-3", Label: "Pieter van Wyk, 7 Karee Lane", ExpectedPayload: "member:88"},
			{ID: "cp-4", Label: "Clubhouse - Main Gate", ExpectedPayload: "Clubhouse - Main Gate"},
			{ID: "cp-5", Label: "Sipho Dlamini, 3 Marula Close", ExpectedPayload: "member:57"},
			{ID: "cp-6", Label: "Park - East Corner", ExpectedPayload: "Park - East Corner"},
			{ID: "cp-7", Label: "Maria Fourie, 29 Protea Avenue", ExpectedPayload: "member:63"},
			{ID: "cp-8", Label: "Pool Area - Service Door", ExpectedPayload: "Pool Area - Service Door"},
		},
	}
}

// DemoAlerts returns canned panic alerts for demo sessions.
func DemoAlerts() []gateway.PanicAlert {
	return []gateway.PanicAlert{
		{ID: "alert-1", MemberName: "Anna Botha", MemberEmail: "anna@example.com", Address: "14 Acacia Street", Timestamp: "2025-11-02T21:14:00Z"},
		{ID: "alert-2", MemberName: "Sipho Dlamini", MemberEmail: "sipho@example.com", Address: "3 Marula Close", Timestamp: "2025-11-02T22:03:00Z"},
	}
}

// DemoCompliance returns canned compliance metrics for demo sessions.
func DemoCompliance() []gateway.ComplianceMetric {
	return []gateway.ComplianceMetric{
		{Title: "On-time Patrols", Value: "95%", Status: "Excellent"},
		{Title: "Incident Reports", Value: "100%", Status: "Perfect"},
		{Title: "Equipment Check", Value: "92%", Status: "Good"},
		{Title: "Client Feedback", Value: "4.8/5", Status: "Excellent"},
	}
}

// demoClassify classifies a payload against the local tables. The route is
// consulted so that member codes belonging to a checkpoint classify as
// member_checkpoint rather than plain member.
func demoClassify(data string, route *RouteState) ValidationOutcome {
	if strings.HasPrefix(data, memberPayloadPrefix) {
		id := strings.TrimPrefix(data, memberPayloadPrefix)
		if id == "" {
			return ValidationOutcome{
				Classification: ClassInvalid,
				Message:        "QR code did not match any known checkpoint or location",
			}
		}

		member, known := demoMembers[id]
		if !known {
			member = gateway.MemberRecord{ID: id}
		}

		if _, onRoute := route.CheckpointByPayload(data); onRoute {
			return ValidationOutcome{Classification: ClassMemberCheckpoint, Member: &member}
		}
		return ValidationOutcome{Classification: ClassMember, Member: &member}
	}

	if _, ok := demoLocations[data]; ok {
		return ValidationOutcome{Classification: ClassLocation, Location: data}
	}
	if _, onRoute := route.CheckpointByPayload(data); onRoute {
		return ValidationOutcome{Classification: ClassLocation, Location: data}
	}

	return ValidationOutcome{
		Classification: ClassInvalid,
		Message:        "QR code did not match any known checkpoint or location",
	}
}
