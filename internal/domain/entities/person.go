package entities

import (
	"time"

	"github.com/google/uuid"
)

// Person is a person node, keyed globally by name (merge-or-create). Email is
// optional and may be set or overwritten whenever a newer ingestion discovers
// one.
type Person struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(500);not null;uniqueIndex"`
	Email     *string   `json:"email,omitempty" gorm:"type:varchar(320)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Person
func (Person) TableName() string {
	return "persons"
}

// NewPerson creates a new Person node
func NewPerson(name string) *Person {
	return &Person{
		ID:   uuid.New(),
		Name: name,
	}
}
