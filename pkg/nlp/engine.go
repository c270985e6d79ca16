// Package nlp provides the language-processing capability the extraction
// pipeline depends on: sentence segmentation, named-entity recognition and
// keyphrase scoring. The pipeline only sees the Engine interface so the
// heuristic implementation can be swapped for a model-backed one.
package nlp

// Entity is a labeled text span recognized in a document.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Entity labels
const (
	LabelPerson = "PERSON"
)

// Engine models the external NLP capability.
type Engine interface {
	// SegmentSentences splits raw text into trimmed sentences in document order.
	SegmentSentences(text string) []string

	// ExtractEntities returns labeled spans in output order, leftmost first.
	// Repeated mentions yield repeated entities.
	ExtractEntities(text string) []Entity

	// ExtractKeyphrases returns up to topN candidate phrases ordered by
	// descending relevance. Scores are not exposed.
	ExtractKeyphrases(text string, topN int) ([]string, error)
}
