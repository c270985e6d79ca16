package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/notegraph-dev/notegraph/internal/domain/entities"
)

// GraphStore is the connection-level interface to the graph store.
type GraphStore interface {
	// Ping verifies connectivity. A failure at startup is fatal and must not
	// be retried.
	Ping(ctx context.Context) error

	// Session acquires a scoped session for one ingestion call. The caller
	// must Close it on every exit path.
	Session(ctx context.Context) (GraphSession, error)
}

// GraphSession executes node and edge writes for a single ingestion call.
// Each call is independently retriable; there is no cross-call rollback.
type GraphSession interface {
	// CreateMeeting inserts a fresh Meeting node with no existence check.
	CreateMeeting(ctx context.Context, meeting *entities.Meeting) error

	// MergeTopic creates the Topic if no node with that name exists,
	// otherwise returns the existing node's id.
	MergeTopic(ctx context.Context, name string) (uuid.UUID, error)

	// MergePerson creates the Person if no node with that name exists,
	// otherwise returns the existing node's id.
	MergePerson(ctx context.Context, name string) (uuid.UUID, error)

	// SetPersonEmail sets or overwrites the person's email.
	SetPersonEmail(ctx context.Context, personID uuid.UUID, email string) error

	// CreateActionItem inserts a fresh ActionItem node.
	CreateActionItem(ctx context.Context, item *entities.ActionItem) error

	// CreateDecision inserts a fresh Decision node.
	CreateDecision(ctx context.Context, decision *entities.Decision) error

	// CreateEdge inserts an edge of the given kind; edges are not
	// deduplicated.
	CreateEdge(ctx context.Context, kind string, fromID, toID uuid.UUID) error

	// Close releases the session.
	Close() error
}
