package entities

import (
	"time"

	"github.com/google/uuid"
)

// Edge kinds
const (
	EdgeDiscusses     = "DISCUSSES"
	EdgeHasActionItem = "HAS_ACTION_ITEM"
	EdgeAssignedTo    = "ASSIGNED_TO"
	EdgeMadeDecision  = "MADE_DECISION"
	EdgeHasAttendee   = "HAS_ATTENDEE"
)

// GraphEdge is a typed relationship between two nodes. Edges are never
// deduplicated: because Meeting nodes themselves are created fresh per
// ingestion, a repeated run adds a parallel set of edges from the new Meeting.
type GraphEdge struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Kind      string    `json:"kind" gorm:"type:varchar(50);not null;index"`
	FromID    uuid.UUID `json:"from_id" gorm:"type:uuid;not null;index"`
	ToID      uuid.UUID `json:"to_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GraphEdge
func (GraphEdge) TableName() string {
	return "graph_edges"
}

// NewEdge creates a new edge of the given kind
func NewEdge(kind string, fromID, toID uuid.UUID) *GraphEdge {
	return &GraphEdge{
		ID:     uuid.New(),
		Kind:   kind,
		FromID: fromID,
		ToID:   toID,
	}
}
