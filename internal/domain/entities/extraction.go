package entities

import "time"

// Document is one meeting-notes document plus its metadata. Title, type and
// date derivation belongs to the surrounding tool; the pipeline takes them as
// given.
type Document struct {
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
	Text  string    `json:"text"`
	// Source identifies where the document came from (file path, request id);
	// attached to failures so the caller can re-ingest.
	Source string `json:"source,omitempty"`
}

// Identity names the document in errors and logs.
func (d Document) Identity() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Source
}

// ExtractedActionItem is one action item as found in the text. Assignee is
// empty when resolution failed; such items are dropped during persistence.
type ExtractedActionItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// Attendee is one attendee with an optionally resolved email.
type Attendee struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

// ExtractionRecord is the structured output of one ingestion run, mirrored
// into persisted graph state.
type ExtractionRecord struct {
	Topics      []string              `json:"topics"`
	ActionItems []ExtractedActionItem `json:"action_items"`
	Decisions   []string              `json:"decisions"`
	Attendees   []Attendee            `json:"attendees"`
}
