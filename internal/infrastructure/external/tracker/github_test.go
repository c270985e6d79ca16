package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-github/v57/github"

	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	gh := github.NewClient(nil)
	base, err := url.Parse(serverURL + "/")
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	gh.BaseURL = base
	gh.UploadURL = base
	return &Client{gh: gh, owner: "acme", repo: "notes"}
}

func TestCreateIssues(t *testing.T) {
	var requests []github.IssueRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/acme/notes/issues" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req github.IssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		requests = append(requests, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"number": %d, "html_url": "https://github.com/acme/notes/issues/%d"}`, len(requests), len(requests))
	}))
	defer server.Close()

	actions := []repositories.PendingAction{
		{Description: "update the deployment runbook with the new rollback steps and owner contacts", Assignee: "Bob", Priority: "high"},
		{Description: "rotate the certs", Assignee: "Alice", Priority: "medium"},
	}

	urls, err := newTestClient(t, server.URL).CreateIssues(context.Background(), actions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 issue urls, got %d", len(urls))
	}
	if len(requests) != 2 {
		t.Fatalf("expected 2 create requests, got %d", len(requests))
	}

	first := requests[0]
	if !strings.HasPrefix(first.GetTitle(), "Action Item: ") {
		t.Errorf("unexpected title %q", first.GetTitle())
	}
	if len(first.GetTitle()) > len("Action Item: ")+issueTitleLimit {
		t.Errorf("title not truncated: %q", first.GetTitle())
	}
	if !strings.Contains(first.GetBody(), "**Assignee:** Bob") {
		t.Errorf("unexpected body %q", first.GetBody())
	}

	labels := *requests[1].Labels
	found := false
	for _, label := range labels {
		if label == "priority:medium" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected priority label, got %v", labels)
	}
}

func TestIssueTitleTruncatesOnRuneBoundary(t *testing.T) {
	title := issueTitle(strings.Repeat("é", issueTitleLimit+10))
	if !utf8.ValidString(title) {
		t.Fatalf("title is not valid UTF-8: %q", title)
	}
	want := len([]rune("Action Item: ")) + issueTitleLimit
	if got := len([]rune(title)); got != want {
		t.Errorf("expected %d runes, got %d", want, got)
	}
}

func TestCreateIssuesStopsOnPermanentError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed"}`)
	}))
	defer server.Close()

	actions := []repositories.PendingAction{
		{Description: "first", Assignee: "Bob", Priority: "low"},
		{Description: "second", Assignee: "Alice", Priority: "low"},
	}

	urls, err := newTestClient(t, server.URL).CreateIssues(context.Background(), actions)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(urls) != 0 {
		t.Errorf("expected no urls, got %v", urls)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt for a permanent error, got %d", calls)
	}
}
