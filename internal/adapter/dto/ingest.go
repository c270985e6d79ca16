package dto

import "github.com/notegraph-dev/notegraph/internal/domain/entities"

// IngestRequest is the payload for ingesting one meeting-notes document
type IngestRequest struct {
	Title string `json:"title" validate:"required,max=500"`
	Type  string `json:"type" validate:"max=100"`
	// Date in YYYY-MM-DD form; defaults to today when omitted.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Text string `json:"text" validate:"required"`
}

// IngestResponse returns the extraction record mirrored into the graph
type IngestResponse struct {
	Title  string                     `json:"title"`
	Record *entities.ExtractionRecord `json:"record"`
}
