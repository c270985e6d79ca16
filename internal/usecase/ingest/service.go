package ingest

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
	"github.com/notegraph-dev/notegraph/internal/usecase/extract"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

// Archiver stores the raw document alongside the graph. Archiving is best
// effort; a failure is logged and does not fail the ingestion.
type Archiver interface {
	ArchiveDocument(ctx context.Context, doc *entities.Document) error
}

// Service runs the full pipeline for one document: extraction, enrichment and
// graph materialization. Each Ingest call acquires its own graph session and
// releases it on every exit path.
type Service struct {
	extractor  *extract.PatternExtractor
	keyphrases *extract.KeyphraseExtractor
	store      repositories.GraphStore
	archiver   Archiver
	logger     *zap.Logger
}

// NewService creates an ingestion Service. archiver may be nil when no raw
// document archive is configured.
func NewService(engine nlp.Engine, store repositories.GraphStore, archiver Archiver, topKeyphrases int, logger *zap.Logger) *Service {
	return &Service{
		extractor:  extract.NewPatternExtractor(engine),
		keyphrases: extract.NewKeyphraseExtractor(engine, topKeyphrases),
		store:      store,
		archiver:   archiver,
		logger:     logger,
	}
}

// Extract produces the structured record for a document without touching the
// graph store. An engine failure aborts extraction for the whole document so
// a partial record is never persisted.
func (s *Service) Extract(doc *entities.Document) (*entities.ExtractionRecord, error) {
	topics, err := s.keyphrases.Extract(doc.Text)
	if err != nil {
		return nil, errors.ErrExtractionFailed(doc.Identity(), err)
	}

	return &entities.ExtractionRecord{
		Topics:      topics,
		ActionItems: s.extractor.ExtractActionItems(doc.Text),
		Decisions:   s.extractor.ExtractDecisions(doc.Text),
		Attendees:   s.extractor.ExtractAttendees(doc.Text),
	}, nil
}

// Ingest extracts the document and materializes the result into the graph.
// The returned record mirrors persisted state, except that action items
// without a resolved assignee appear in the record but not in the graph.
func (s *Service) Ingest(ctx context.Context, doc *entities.Document) (*entities.ExtractionRecord, error) {
	record, err := s.Extract(doc)
	if err != nil {
		return nil, err
	}

	session, err := s.store.Session(ctx)
	if err != nil {
		return nil, errors.ErrStoreSessionFailed(err).WithDetail("document", doc.Identity())
	}
	defer session.Close()

	meeting := entities.NewMeeting(doc.Title, doc.Type, doc.Date)
	if payload, err := json.Marshal(record); err == nil {
		meeting.Extraction = payload
	}

	if err := NewMaterializer(session).Materialize(ctx, meeting, record); err != nil {
		return nil, err
	}

	if s.archiver != nil {
		if err := s.archiver.ArchiveDocument(ctx, doc); err != nil {
			s.logger.Warn("failed to archive document",
				zap.String("document", doc.Identity()),
				zap.Error(err))
		}
	}

	s.logger.Info("meeting ingested",
		zap.String("title", meeting.Title),
		zap.String("type", meeting.Type),
		zap.Int("topics", len(record.Topics)),
		zap.Int("action_items", len(record.ActionItems)),
		zap.Int("decisions", len(record.Decisions)),
		zap.Int("attendees", len(record.Attendees)))

	return record, nil
}
