package entities

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a topic node. Name is the global identity key: the same name in
// any meeting resolves to one node (merge-or-create).
type Topic struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(500);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

// NewTopic creates a new Topic node
func NewTopic(name string) *Topic {
	return &Topic{
		ID:   uuid.New(),
		Name: name,
	}
}
