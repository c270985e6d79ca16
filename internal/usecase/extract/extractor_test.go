package extract

import (
	"testing"

	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

func newTestExtractor() *PatternExtractor {
	return NewPatternExtractor(nlp.NewEngine(nil))
}

func TestExtractActionItemsVerbAnchor(t *testing.T) {
	items := newTestExtractor().ExtractActionItems("Bob will implement the cache.")
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d: %v", len(items), items)
	}
	item := items[0]
	if item.Assignee != "Bob" {
		t.Errorf("expected assignee Bob, got %q", item.Assignee)
	}
	if item.Priority != entities.ActionItemPriorityMedium {
		t.Errorf("expected priority medium, got %q", item.Priority)
	}
	if item.Status != entities.ActionItemStatusPending {
		t.Errorf("expected status pending, got %q", item.Status)
	}
}

func TestExtractActionItemsLabelAnchor(t *testing.T) {
	items := newTestExtractor().ExtractActionItems("Action: review the deployment checklist before Friday.")
	if len(items) != 1 {
		t.Fatalf("expected 1 action item, got %d: %v", len(items), items)
	}
	if items[0].Description != "review the deployment checklist before Friday" {
		t.Errorf("unexpected description %q", items[0].Description)
	}
}

func TestExtractActionItemsDiscardsEmptyCapture(t *testing.T) {
	if items := newTestExtractor().ExtractActionItems("Action:"); len(items) != 0 {
		t.Fatalf("expected no action items for empty capture, got %v", items)
	}
}

func TestSentenceMatchingTwoFamiliesContributesToBoth(t *testing.T) {
	x := newTestExtractor()
	text := "Decision: we will implement the cache layer."

	actions := x.ExtractActionItems(text)
	decisions := x.ExtractDecisions(text)
	if len(actions) == 0 {
		t.Error("expected the sentence to yield an action item")
	}
	if len(decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d: %v", len(decisions), decisions)
	}
	if decisions[0] != "we will implement the cache layer" {
		t.Errorf("unexpected decision %q", decisions[0])
	}
}

func TestExtractDecisionsAgreedAnchor(t *testing.T) {
	decisions := newTestExtractor().ExtractDecisions("Agreed: migrate the staging cluster next sprint.")
	if len(decisions) != 1 || decisions[0] != "migrate the staging cluster next sprint" {
		t.Fatalf("unexpected decisions %v", decisions)
	}
}

func TestExtractAttendeesExplicitList(t *testing.T) {
	attendees := newTestExtractor().ExtractAttendees("Attendees: Alice Johnson, Bob Smith and Carol Williams")
	if len(attendees) != 3 {
		t.Fatalf("expected 3 attendees, got %d: %v", len(attendees), attendees)
	}
	want := []string{"Alice Johnson", "Bob Smith", "Carol Williams"}
	for i, name := range want {
		if attendees[i].Name != name {
			t.Errorf("attendee %d: expected %q, got %q", i, name, attendees[i].Name)
		}
	}
}

func TestExtractAttendeesFallsBackToEntities(t *testing.T) {
	text := "Bob will implement the cache. Contact Alice at alice@example.com for details."
	attendees := newTestExtractor().ExtractAttendees(text)
	names := make(map[string]bool, len(attendees))
	for _, a := range attendees {
		names[a.Name] = true
	}
	if !names["Bob"] || !names["Alice"] {
		t.Fatalf("expected Bob and Alice from entity fallback, got %v", attendees)
	}
	for _, a := range attendees {
		if a.Name == "Alice" {
			if a.Email == nil || *a.Email != "alice@example.com" {
				t.Errorf("expected Alice's email to resolve, got %v", a.Email)
			}
		}
	}
}

func TestKeyphraseExtractorBoundsAndDeduplicates(t *testing.T) {
	x := NewKeyphraseExtractor(nlp.NewEngine(nil), 0)
	text := "The deployment pipeline broke again. We discussed the deployment pipeline, " +
		"the staging cluster and the release schedule for the next quarter."
	topics, err := x.Extract(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(topics) > DefaultTopKeyphrases {
		t.Fatalf("expected at most %d topics, got %d", DefaultTopKeyphrases, len(topics))
	}
	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		if topic == "" {
			t.Error("empty topic in result")
		}
		if seen[topic] {
			t.Errorf("duplicate topic %q", topic)
		}
		seen[topic] = true
	}
}
