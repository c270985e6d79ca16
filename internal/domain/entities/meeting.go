package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting is a meeting node. Meetings are created fresh on every ingestion
// call and never merged: re-ingesting the same document under the same title
// produces a second Meeting node.
type Meeting struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Title     string    `json:"title" gorm:"type:varchar(500);not null;index"`
	Type      string    `json:"type" gorm:"type:varchar(100)"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
	// Extraction holds the structured record produced during ingestion, kept
	// alongside the node for auditing.
	Extraction datatypes.JSON `json:"extraction,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new Meeting node
func NewMeeting(title, meetingType string, timestamp time.Time) *Meeting {
	return &Meeting{
		ID:        uuid.New(),
		Title:     title,
		Type:      meetingType,
		Timestamp: timestamp,
	}
}
