package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	repo "github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

type graphStore struct {
	db *gorm.DB
}

// NewGraphStore creates a graph store backed by GORM's connection pool.
// Sessions check a dedicated connection out of the pool so one ingestion
// call's writes share a connection end to end.
func NewGraphStore(db *gorm.DB) repo.GraphStore {
	return &graphStore{db: db}
}

func (s *graphStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.ErrStoreUnavailable(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.ErrStoreUnavailable(err)
	}
	return nil
}

func (s *graphStore) Session(ctx context.Context) (repo.GraphSession, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &graphSession{conn: conn}, nil
}

type graphSession struct {
	conn *sql.Conn
}

func (s *graphSession) CreateMeeting(ctx context.Context, meeting *entities.Meeting) error {
	extraction := []byte("null")
	if len(meeting.Extraction) > 0 {
		extraction = meeting.Extraction
	}
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO meetings (id, title, type, timestamp, extraction, created_at) VALUES ($1, $2, $3, $4, $5::jsonb, $6)`,
		meeting.ID, meeting.Title, meeting.Type, meeting.Timestamp, string(extraction), time.Now())
	return err
}

func (s *graphSession) MergeTopic(ctx context.Context, name string) (uuid.UUID, error) {
	// The no-op update makes RETURNING yield the surviving row's id on
	// conflict.
	q := `INSERT INTO topics (id, name, created_at) VALUES ($1, $2, $3)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`
	var id uuid.UUID
	if err := s.conn.QueryRowContext(ctx, q, uuid.New(), name, time.Now()).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *graphSession) MergePerson(ctx context.Context, name string) (uuid.UUID, error) {
	q := `INSERT INTO persons (id, name, created_at) VALUES ($1, $2, $3)
        ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`
	var id uuid.UUID
	if err := s.conn.QueryRowContext(ctx, q, uuid.New(), name, time.Now()).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (s *graphSession) SetPersonEmail(ctx context.Context, personID uuid.UUID, email string) error {
	_, err := s.conn.ExecContext(ctx, `UPDATE persons SET email = $1 WHERE id = $2`, email, personID)
	return err
}

func (s *graphSession) CreateActionItem(ctx context.Context, item *entities.ActionItem) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO action_items (id, description, status, priority, created_at) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.Description, item.Status, item.Priority, time.Now())
	return err
}

func (s *graphSession) CreateDecision(ctx context.Context, decision *entities.Decision) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO decisions (id, content, created_at) VALUES ($1, $2, $3)`,
		decision.ID, decision.Content, time.Now())
	return err
}

func (s *graphSession) CreateEdge(ctx context.Context, kind string, fromID, toID uuid.UUID) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO graph_edges (id, kind, from_id, to_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), kind, fromID, toID, time.Now())
	return err
}

func (s *graphSession) Close() error {
	return s.conn.Close()
}
