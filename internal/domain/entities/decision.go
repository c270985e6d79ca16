package entities

import (
	"time"

	"github.com/google/uuid"
)

// Decision is a decision node owned by exactly one Meeting. Decisions have no
// dedup key and are created fresh on every ingestion.
type Decision struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Decision
func (Decision) TableName() string {
	return "decisions"
}

// NewDecision creates a new Decision node
func NewDecision(content string) *Decision {
	return &Decision{
		ID:      uuid.New(),
		Content: content,
	}
}
