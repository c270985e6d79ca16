package extract

import (
	"strings"

	"github.com/notegraph-dev/notegraph/errors"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

// DefaultTopKeyphrases bounds how many topics a single document yields.
const DefaultTopKeyphrases = 5

// KeyphraseExtractor turns a document into a short ranked list of topics.
type KeyphraseExtractor struct {
	engine nlp.Engine
	topN   int
}

// NewKeyphraseExtractor creates a KeyphraseExtractor. topN <= 0 selects the
// default of 5.
func NewKeyphraseExtractor(engine nlp.Engine, topN int) *KeyphraseExtractor {
	if topN <= 0 {
		topN = DefaultTopKeyphrases
	}
	return &KeyphraseExtractor{engine: engine, topN: topN}
}

// Extract returns at most topN unique non-empty keyphrases in ranked order.
func (x *KeyphraseExtractor) Extract(text string) ([]string, error) {
	ranked, err := x.engine.ExtractKeyphrases(text, x.topN)
	if err != nil {
		return nil, errors.ErrNLPEngineFailed("keyphrases", err)
	}

	seen := make(map[string]bool, len(ranked))
	topics := make([]string, 0, len(ranked))
	for _, phrase := range ranked {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		topics = append(topics, phrase)
	}
	return topics, nil
}
