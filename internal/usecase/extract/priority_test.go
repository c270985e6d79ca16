package extract

import (
	"testing"

	"github.com/notegraph-dev/notegraph/internal/domain/entities"
)

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		sentence string
		want     string
	}{
		{"This must ship ASAP", entities.ActionItemPriorityHigh},
		{"Critical fix for the login flow", entities.ActionItemPriorityHigh},
		{"Normal cleanup of old branches", entities.ActionItemPriorityMedium},
		{"Do this when possible", entities.ActionItemPriorityLow},
		{"Refactor the parser", entities.ActionItemPriorityMedium},
		{"", entities.ActionItemPriorityMedium},
	}
	for _, tc := range cases {
		if got := ClassifyPriority(tc.sentence); got != tc.want {
			t.Errorf("ClassifyPriority(%q) = %q, want %q", tc.sentence, got, tc.want)
		}
	}
}

func TestClassifyPriorityHighWinsOverLow(t *testing.T) {
	if got := ClassifyPriority("This is urgent and also minor"); got != entities.ActionItemPriorityHigh {
		t.Errorf("expected high to win over low, got %q", got)
	}
}
