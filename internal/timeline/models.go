package timeline

import "advocacy-platform/internal/forensic"

// CaseTimeline is a saved set of forensic events for one case.
type CaseTimeline struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	UpdatedAt   string           `json:"updatedAt"`
	Events      []forensic.Event `json:"events"`
}
