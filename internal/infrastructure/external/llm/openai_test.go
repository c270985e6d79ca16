package llm

import (
	"context"
	goerrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/pkg/config"
)

func TestGenerateTextWrapsModelFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewOpenAIClient(&config.LLMConfig{
		APIKey:  "test-key",
		Model:   "gpt-3.5-turbo",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	_, err = client.GenerateText(context.Background(), "summarize the week")
	if err == nil {
		t.Fatal("expected error")
	}

	var appErr errors.AppError
	if !goerrors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != errors.ErrorCode_INTEGRATION_LLM_FAILED {
		t.Errorf("unexpected code %s", appErr.Code)
	}
}
