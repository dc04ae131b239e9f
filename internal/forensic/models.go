package forensic

import "time"

// EventType is the fixed enumeration of timeline event kinds.
type EventType string

const (
	// EventTypeRequest is a written request for medical records.
	EventTypeRequest EventType = "request"
	// EventTypeReceipt is the receipt of records or of a notification.
	EventTypeReceipt EventType = "receipt"
	// EventTypeDischarge is a facility discharge.
	EventTypeDischarge EventType = "discharge"
	// EventTypeFiling is the filing or discovery of an incident.
	EventTypeFiling EventType = "filing"
)

// Event is one caller-supplied timeline entry. Not persisted by the
// analyzer; case timelines store their own copies.
type Event struct {
	ID    string    `json:"id"`
	Type  EventType `json:"type"`
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Notes string    `json:"notes,omitempty"`
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Violation is one rule evaluation.
//
// IsTriggered uniformly means "violation found" for every rule. The appeal
// rule additionally reports IsActionable=true while its filing window is
// still open; no other rule sets it.
type Violation struct {
	ID           string   `json:"id"`
	Severity     Severity `json:"severity"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Statute      string   `json:"statute"`
	IsTriggered  bool     `json:"isTriggered"`
	IsActionable bool     `json:"isActionable,omitempty"`
	Remedy       string   `json:"remedy,omitempty"`
}
