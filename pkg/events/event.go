package events

import "time"

// Event codes published on the bus. The notification worker maps them to
// notification types through the registry table.
const (
	TypeUserLogin       = "USER_LOGIN"
	TypeUserLogout      = "USER_LOGOUT"
	TypeUpdatePublished = "UPDATE_PUBLISHED"
	TypeAlertTriggered  = "ALERT_TRIGGERED"
	TypeReportCompleted = "REPORT_COMPLETED"
	TypeReportFailed    = "REPORT_FAILED"
	TypeGapCompleted    = "GAP_ANALYSIS_COMPLETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
