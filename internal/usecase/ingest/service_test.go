package ingest

import (
	"context"
	goerrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

type edgeRecord struct {
	kind   string
	fromID uuid.UUID
	toID   uuid.UUID
}

// fakeStore records every write in memory and hands out sessions that share
// its state, so merge-by-name behavior survives across sessions like it does
// in the real store.
type fakeStore struct {
	topics      map[string]uuid.UUID
	persons     map[string]uuid.UUID
	emails      map[uuid.UUID]string
	meetings    []*entities.Meeting
	actionItems []*entities.ActionItem
	decisions   []*entities.Decision
	edges       []edgeRecord

	sessionErr     error
	closedSessions int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		topics:  make(map[string]uuid.UUID),
		persons: make(map[string]uuid.UUID),
		emails:  make(map[uuid.UUID]string),
	}
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

func (s *fakeStore) Session(ctx context.Context) (repositories.GraphSession, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	return &fakeSession{store: s}, nil
}

type fakeSession struct {
	store *fakeStore
}

func (s *fakeSession) CreateMeeting(ctx context.Context, meeting *entities.Meeting) error {
	s.store.meetings = append(s.store.meetings, meeting)
	return nil
}

func (s *fakeSession) MergeTopic(ctx context.Context, name string) (uuid.UUID, error) {
	if id, ok := s.store.topics[name]; ok {
		return id, nil
	}
	id := uuid.New()
	s.store.topics[name] = id
	return id, nil
}

func (s *fakeSession) MergePerson(ctx context.Context, name string) (uuid.UUID, error) {
	if id, ok := s.store.persons[name]; ok {
		return id, nil
	}
	id := uuid.New()
	s.store.persons[name] = id
	return id, nil
}

func (s *fakeSession) SetPersonEmail(ctx context.Context, personID uuid.UUID, email string) error {
	s.store.emails[personID] = email
	return nil
}

func (s *fakeSession) CreateActionItem(ctx context.Context, item *entities.ActionItem) error {
	s.store.actionItems = append(s.store.actionItems, item)
	return nil
}

func (s *fakeSession) CreateDecision(ctx context.Context, decision *entities.Decision) error {
	s.store.decisions = append(s.store.decisions, decision)
	return nil
}

func (s *fakeSession) CreateEdge(ctx context.Context, kind string, fromID, toID uuid.UUID) error {
	s.store.edges = append(s.store.edges, edgeRecord{kind: kind, fromID: fromID, toID: toID})
	return nil
}

func (s *fakeSession) Close() error {
	s.store.closedSessions++
	return nil
}

func testDocument() *entities.Document {
	return &entities.Document{
		Title: "Sprint Planning",
		Type:  "planning",
		Date:  time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC),
		Text: "Attendees: Alice Johnson, Bob Smith\n" +
			"Bob will implement the cache urgently.\n" +
			"Decision: adopt the new deployment pipeline.\n" +
			"TODO: update the runbook.\n",
	}
}

func newTestService(store *fakeStore) *Service {
	return NewService(nlp.NewEngine(nil), store, nil, 5, zap.NewNop())
}

func TestIngestMaterializesRecord(t *testing.T) {
	store := newFakeStore()
	record, err := newTestService(store).Ingest(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.meetings) != 1 {
		t.Fatalf("expected 1 meeting, got %d", len(store.meetings))
	}
	if store.meetings[0].Title != "Sprint Planning" {
		t.Errorf("unexpected meeting title %q", store.meetings[0].Title)
	}
	if len(store.meetings[0].Extraction) == 0 {
		t.Error("expected extraction record stored on the meeting")
	}

	// "Bob will implement ..." persists; "TODO: update the runbook" has no
	// resolvable assignee and stays record-only.
	if len(record.ActionItems) != 2 {
		t.Fatalf("expected 2 extracted action items, got %d: %v", len(record.ActionItems), record.ActionItems)
	}
	if len(store.actionItems) != 1 {
		t.Fatalf("expected 1 persisted action item, got %d", len(store.actionItems))
	}
	if store.actionItems[0].Priority != entities.ActionItemPriorityHigh {
		t.Errorf("expected high priority, got %q", store.actionItems[0].Priority)
	}

	if len(store.decisions) != 1 || store.decisions[0].Content != "adopt the new deployment pipeline" {
		t.Fatalf("unexpected decisions %v", store.decisions)
	}

	for _, name := range []string{"Alice Johnson", "Bob Smith", "Bob"} {
		if _, ok := store.persons[name]; !ok {
			t.Errorf("expected person %q to be merged", name)
		}
	}

	if store.closedSessions != 1 {
		t.Errorf("expected session to be closed once, got %d", store.closedSessions)
	}
}

func TestIngestEdgesOriginateFromMeeting(t *testing.T) {
	store := newFakeStore()
	if _, err := newTestService(store).Ingest(context.Background(), testDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meetingID := store.meetings[0].ID
	kinds := make(map[string]int)
	for _, edge := range store.edges {
		kinds[edge.kind]++
		if edge.kind != entities.EdgeAssignedTo && edge.fromID != meetingID {
			t.Errorf("%s edge does not originate from the meeting", edge.kind)
		}
	}
	if kinds[entities.EdgeHasActionItem] != 1 {
		t.Errorf("expected 1 %s edge, got %d", entities.EdgeHasActionItem, kinds[entities.EdgeHasActionItem])
	}
	if kinds[entities.EdgeAssignedTo] != 1 {
		t.Errorf("expected 1 %s edge, got %d", entities.EdgeAssignedTo, kinds[entities.EdgeAssignedTo])
	}
	if kinds[entities.EdgeMadeDecision] != 1 {
		t.Errorf("expected 1 %s edge, got %d", entities.EdgeMadeDecision, kinds[entities.EdgeMadeDecision])
	}
	if kinds[entities.EdgeHasAttendee] != 2 {
		t.Errorf("expected 2 %s edges, got %d", entities.EdgeHasAttendee, kinds[entities.EdgeHasAttendee])
	}
}

func TestReingestDuplicatesMeetingButMergesEntities(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	doc := testDocument()

	if _, err := svc.Ingest(context.Background(), doc); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	topicsAfterFirst := len(store.topics)
	personsAfterFirst := len(store.persons)
	actionsAfterFirst := len(store.actionItems)
	decisionsAfterFirst := len(store.decisions)

	if _, err := svc.Ingest(context.Background(), doc); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if len(store.meetings) != 2 {
		t.Errorf("expected 2 distinct meetings, got %d", len(store.meetings))
	}
	if store.meetings[0].ID == store.meetings[1].ID {
		t.Error("expected distinct meeting ids")
	}
	if len(store.topics) != topicsAfterFirst {
		t.Errorf("topic count changed across re-ingestion: %d -> %d", topicsAfterFirst, len(store.topics))
	}
	if len(store.persons) != personsAfterFirst {
		t.Errorf("person count changed across re-ingestion: %d -> %d", personsAfterFirst, len(store.persons))
	}
	if len(store.actionItems) != 2*actionsAfterFirst {
		t.Errorf("expected action items to double, got %d", len(store.actionItems))
	}
	if len(store.decisions) != 2*decisionsAfterFirst {
		t.Errorf("expected decisions to double, got %d", len(store.decisions))
	}
	if store.closedSessions != 2 {
		t.Errorf("expected 2 closed sessions, got %d", store.closedSessions)
	}
}

func TestIngestSessionFailure(t *testing.T) {
	store := newFakeStore()
	store.sessionErr = fmt.Errorf("connection pool exhausted")

	_, err := newTestService(store).Ingest(context.Background(), testDocument())
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr errors.AppError
	if !goerrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrorCode_STORE_SESSION_FAILED {
		t.Errorf("unexpected code %s", appErr.Code)
	}
	if appErr.Details["document"] != "Sprint Planning" {
		t.Errorf("expected document identity in details, got %v", appErr.Details)
	}
}
