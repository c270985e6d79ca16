package nlp

import (
	"reflect"
	"testing"
)

func TestSegmentSentences(t *testing.T) {
	engine := NewEngine(nil)

	text := "Attendees: Alice, Bob\nWe reviewed the roadmap. Decision: ship in March! Any objections?"
	got := engine.SegmentSentences(text)
	want := []string{
		"Attendees: Alice, Bob",
		"We reviewed the roadmap",
		"Decision: ship in March",
		"Any objections",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sentences: %v", got)
	}
}

func TestSegmentSentencesEmpty(t *testing.T) {
	engine := NewEngine(nil)
	if got := engine.SegmentSentences("   \n\n  "); len(got) != 0 {
		t.Fatalf("expected no sentences, got %v", got)
	}
}

func TestExtractEntitiesPersons(t *testing.T) {
	engine := NewEngine(nil)

	cases := []struct {
		text string
		want []string
	}{
		{"Bob will implement the cache", []string{"Bob"}},
		{"Contact Alice at alice@example.com for details", []string{"Alice"}},
		{"Attendees: Alice Johnson, Bob Smith and Carol Williams", []string{"Alice Johnson", "Bob Smith", "Carol Williams"}},
		{"The API review is scheduled for Monday", nil},
		{"TODO: fix the build", nil},
	}

	for _, tc := range cases {
		ents := engine.ExtractEntities(tc.text)
		var names []string
		for _, e := range ents {
			if e.Label == LabelPerson {
				names = append(names, e.Text)
			}
		}
		if !reflect.DeepEqual(names, tc.want) {
			t.Errorf("ExtractEntities(%q) = %v, want %v", tc.text, names, tc.want)
		}
	}
}

func TestExtractEntitiesReportsEveryMention(t *testing.T) {
	engine := NewEngine(nil)

	ents := engine.ExtractEntities("Alice presented. Alice will follow up.")
	count := 0
	for _, e := range ents {
		if e.Text == "Alice" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 mentions of Alice, got %d (%v)", count, ents)
	}
}
