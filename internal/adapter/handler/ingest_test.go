package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/internal/usecase/ingest"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
	"github.com/notegraph-dev/notegraph/pkg/validator"
)

func newPreviewContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/preview", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newPreviewHandler() *Ingest {
	svc := ingest.NewService(nlp.NewEngine(nil), nil, nil, 5, zap.NewNop())
	return NewIngestHandler(svc, zap.NewNop())
}

func TestIngestPreview(t *testing.T) {
	e := echo.New()
	e.Validator = validator.New()

	c, rec := newPreviewContext(e, `{"title":"Standup","type":"standup","text":"Bob will implement the cache."}`)
	if err := newPreviewHandler().Preview(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"assignee":"Bob"`) {
		t.Errorf("expected extracted assignee in response, got %s", rec.Body.String())
	}
}

func TestIngestPreviewRejectsMissingText(t *testing.T) {
	e := echo.New()
	e.Validator = validator.New()

	c, rec := newPreviewContext(e, `{"title":"Standup"}`)
	if err := newPreviewHandler().Preview(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIngestPreviewRejectsBadDate(t *testing.T) {
	e := echo.New()
	e.Validator = validator.New()

	c, rec := newPreviewContext(e, `{"title":"Standup","text":"notes","date":"12-03-2024"}`)
	if err := newPreviewHandler().Preview(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
