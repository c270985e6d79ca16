package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItem is an action-item node. Items belong to exactly one Meeting and
// have no identity key: repeated ingestion of the same text creates new nodes
// each time.
type ActionItem struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Priority    string    `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a new ActionItem node with default status and priority
func NewActionItem(description string) *ActionItem {
	return &ActionItem{
		ID:          uuid.New(),
		Description: description,
		Status:      ActionItemStatusPending,
		Priority:    ActionItemPriorityMedium,
	}
}

// ActionItemPriority constants
const (
	ActionItemPriorityLow    = "low"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityHigh   = "high"
)

// ActionItemStatus constants
const (
	ActionItemStatusPending    = "pending"
	ActionItemStatusInProgress = "in_progress"
	ActionItemStatusCompleted  = "completed"
)
