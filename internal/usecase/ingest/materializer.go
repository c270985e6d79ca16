package ingest

import (
	"context"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

// Materializer persists one extraction record as nodes and edges through a
// single graph session. The five steps run in fixed order; a failure aborts
// the sequence and leaves the already-written part of the Meeting subgraph in
// place. Callers must treat such a failure as "ingestion unconfirmed".
type Materializer struct {
	session repositories.GraphSession
}

// NewMaterializer creates a Materializer bound to one session.
func NewMaterializer(session repositories.GraphSession) *Materializer {
	return &Materializer{session: session}
}

// Materialize writes the meeting and its extracted record. The meeting node is
// created fresh with no existence check; Topic and Person nodes are merged by
// name. Action items without a description or a resolved assignee are dropped
// silently, as are attendees without a name.
func (m *Materializer) Materialize(ctx context.Context, meeting *entities.Meeting, record *entities.ExtractionRecord) error {
	document := meeting.Title

	if err := m.session.CreateMeeting(ctx, meeting); err != nil {
		return errors.ErrPersistenceFailed(document, "create_meeting", err)
	}

	for _, topic := range record.Topics {
		if topic == "" {
			continue
		}
		topicID, err := m.session.MergeTopic(ctx, topic)
		if err != nil {
			return errors.ErrPersistenceFailed(document, "merge_topics", err)
		}
		if err := m.session.CreateEdge(ctx, entities.EdgeDiscusses, meeting.ID, topicID); err != nil {
			return errors.ErrPersistenceFailed(document, "merge_topics", err)
		}
	}

	for _, item := range record.ActionItems {
		if item.Description == "" || item.Assignee == "" {
			continue
		}
		node := entities.NewActionItem(item.Description)
		node.Priority = item.Priority
		node.Status = item.Status
		if err := m.session.CreateActionItem(ctx, node); err != nil {
			return errors.ErrPersistenceFailed(document, "create_action_items", err)
		}
		if err := m.session.CreateEdge(ctx, entities.EdgeHasActionItem, meeting.ID, node.ID); err != nil {
			return errors.ErrPersistenceFailed(document, "create_action_items", err)
		}
		personID, err := m.session.MergePerson(ctx, item.Assignee)
		if err != nil {
			return errors.ErrPersistenceFailed(document, "create_action_items", err)
		}
		if err := m.session.CreateEdge(ctx, entities.EdgeAssignedTo, node.ID, personID); err != nil {
			return errors.ErrPersistenceFailed(document, "create_action_items", err)
		}
	}

	for _, decision := range record.Decisions {
		if decision == "" {
			continue
		}
		node := entities.NewDecision(decision)
		if err := m.session.CreateDecision(ctx, node); err != nil {
			return errors.ErrPersistenceFailed(document, "create_decisions", err)
		}
		if err := m.session.CreateEdge(ctx, entities.EdgeMadeDecision, meeting.ID, node.ID); err != nil {
			return errors.ErrPersistenceFailed(document, "create_decisions", err)
		}
	}

	for _, attendee := range record.Attendees {
		if attendee.Name == "" {
			continue
		}
		personID, err := m.session.MergePerson(ctx, attendee.Name)
		if err != nil {
			return errors.ErrPersistenceFailed(document, "merge_attendees", err)
		}
		if attendee.Email != nil {
			if err := m.session.SetPersonEmail(ctx, personID, *attendee.Email); err != nil {
				return errors.ErrPersistenceFailed(document, "merge_attendees", err)
			}
		}
		if err := m.session.CreateEdge(ctx, entities.EdgeHasAttendee, meeting.ID, personID); err != nil {
			return errors.ErrPersistenceFailed(document, "merge_attendees", err)
		}
	}

	return nil
}
