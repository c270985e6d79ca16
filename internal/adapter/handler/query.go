package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/internal/adapter/dto"
	"github.com/notegraph-dev/notegraph/internal/usecase/query"
)

// Query exposes natural-language querying of the meeting graph
type Query struct {
	svc    *query.Service
	logger *zap.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(svc *query.Service, logger *zap.Logger) *Query {
	return &Query{svc: svc, logger: logger}
}

// Ask answers a natural-language question.
// POST /v1/query
func (h *Query) Ask(c echo.Context) error {
	var req dto.QueryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.Ask(c.Request().Context(), req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}
