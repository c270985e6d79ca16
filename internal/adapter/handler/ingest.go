package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/adapter/dto"
	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/internal/usecase/ingest"
)

// Ingest exposes the extraction pipeline over HTTP
type Ingest struct {
	svc    *ingest.Service
	logger *zap.Logger
}

// NewIngestHandler creates a new ingestion handler
func NewIngestHandler(svc *ingest.Service, logger *zap.Logger) *Ingest {
	return &Ingest{svc: svc, logger: logger}
}

func (h *Ingest) bindDocument(c echo.Context) (*entities.Document, error) {
	var req dto.IngestRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.ErrInvalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return nil, errors.ErrInvalidArgument(err.Error())
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, errors.ErrInvalidArgument("date must be in YYYY-MM-DD form")
		}
		date = parsed
	}

	return &entities.Document{
		Title:  req.Title,
		Type:   req.Type,
		Date:   date,
		Text:   req.Text,
		Source: "api",
	}, nil
}

// Create ingests a document and materializes it into the graph.
// POST /v1/meetings
func (h *Ingest) Create(c echo.Context) error {
	doc, err := h.bindDocument(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.svc.Ingest(c.Request().Context(), doc)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.IngestResponse{Title: doc.Title, Record: record})
}

// Preview runs extraction only, without touching the graph store.
// POST /v1/meetings/preview
func (h *Ingest) Preview(c echo.Context) error {
	doc, err := h.bindDocument(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	record, err := h.svc.Extract(doc)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, dto.IngestResponse{Title: doc.Title, Record: record})
}
