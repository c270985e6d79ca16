package nlp

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// Embedder produces one vector per input text. All vectors from a single call
// share the same dimension.
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
}

// nrCandidates bounds the candidate pool considered for diversification.
const nrCandidates = 20

// mmrLambda balances document relevance against similarity to already
// selected phrases.
const mmrLambda = 0.5

var wordPattern = regexp.MustCompile(`[a-z0-9][a-z0-9'-]+`)

var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "an": true, "and": true, "any": true,
	"are": true, "as": true, "at": true, "be": true, "because": true,
	"been": true, "before": true, "being": true, "between": true,
	"both": true, "but": true, "by": true, "can": true, "could": true,
	"did": true, "do": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "few": true, "for": true, "from": true,
	"further": true, "had": true, "has": true, "have": true, "having": true,
	"he": true, "her": true, "here": true, "hers": true, "him": true,
	"his": true, "how": true, "if": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "just": true, "more": true,
	"most": true, "my": true, "no": true, "nor": true, "not": true,
	"now": true, "of": true, "off": true, "on": true, "once": true,
	"only": true, "or": true, "other": true, "our": true, "out": true,
	"over": true, "own": true, "same": true, "she": true, "should": true,
	"so": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"to": true, "too": true, "under": true, "until": true, "up": true,
	"very": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "who": true,
	"whom": true, "why": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}

// ranker scores unigram/bigram candidates against the whole document and
// diversifies the selection so near-duplicate phrases don't crowd the result.
type ranker struct {
	embedder Embedder
}

func newRanker(embedder Embedder) *ranker {
	return &ranker{embedder: embedder}
}

type candidate struct {
	phrase string
	count  int
	order  int
}

// candidates tokenizes the lowercased document, drops stopwords and collects
// unique unigrams and bigrams in first-occurrence order.
func (r *ranker) candidates(text string) []candidate {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	filtered := tokens[:0:0]
	for _, t := range tokens {
		if !stopwords[t] {
			filtered = append(filtered, t)
		}
	}

	index := make(map[string]int)
	var cands []candidate
	add := func(phrase string) {
		if i, ok := index[phrase]; ok {
			cands[i].count++
			return
		}
		index[phrase] = len(cands)
		cands = append(cands, candidate{phrase: phrase, count: 1, order: len(cands)})
	}
	for i, t := range filtered {
		add(t)
		if i+1 < len(filtered) {
			add(filtered[i] + " " + filtered[i+1])
		}
	}
	return cands
}

// Rank returns up to topN phrases ordered by descending relevance. Ties keep
// generation order. The returned phrases are unique and non-empty.
func (r *ranker) Rank(text string, topN int) ([]string, error) {
	if topN <= 0 {
		return nil, nil
	}
	cands := r.candidates(text)
	if len(cands) == 0 {
		return nil, nil
	}

	// Trim the pool to the most frequent candidates, keeping generation
	// order stable among equal counts.
	if len(cands) > nrCandidates {
		pool := make([]candidate, len(cands))
		copy(pool, cands)
		for i := 1; i < len(pool); i++ {
			for j := i; j > 0 && pool[j].count > pool[j-1].count; j-- {
				pool[j], pool[j-1] = pool[j-1], pool[j]
			}
		}
		pool = pool[:nrCandidates]
		for i := 1; i < len(pool); i++ {
			for j := i; j > 0 && pool[j].order < pool[j-1].order; j-- {
				pool[j], pool[j-1] = pool[j-1], pool[j]
			}
		}
		cands = pool
	}

	texts := make([]string, 0, len(cands)+1)
	texts = append(texts, text)
	for _, c := range cands {
		texts = append(texts, c.phrase)
	}
	vectors, err := r.embedder.Embed(texts)
	if err != nil {
		return nil, fmt.Errorf("embedding candidates: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	docVec := vectors[0]
	candVecs := vectors[1:]
	docSim := make([]float64, len(cands))
	for i, v := range candVecs {
		docSim[i] = cosine(docVec, v)
	}

	// Greedy maximal-marginal-relevance selection.
	selected := make([]int, 0, topN)
	used := make([]bool, len(cands))
	for len(selected) < topN && len(selected) < len(cands) {
		best := -1
		bestScore := math.Inf(-1)
		for i := range cands {
			if used[i] {
				continue
			}
			penalty := 0.0
			for _, s := range selected {
				if sim := cosine(candVecs[i], candVecs[s]); sim > penalty {
					penalty = sim
				}
			}
			score := mmrLambda*docSim[i] - (1-mmrLambda)*penalty
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		selected = append(selected, best)
	}

	phrases := make([]string, 0, len(selected))
	for _, i := range selected {
		phrases = append(phrases, cands[i].phrase)
	}
	return phrases, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// HashingEmbedder is a deterministic lexical embedder: token counts hashed
// into a fixed-width vector. It ranks by word overlap and needs no model
// files, which makes it the fallback when no embedding model is configured.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a HashingEmbedder; dim <= 0 selects the default
// width of 256.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &HashingEmbedder{dim: dim}
}

// Embed implements Embedder.
func (h *HashingEmbedder) Embed(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, h.dim)
		for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
			hash := fnv.New32a()
			hash.Write([]byte(token))
			vec[hash.Sum32()%uint32(h.dim)]++
		}
		out[i] = vec
	}
	return out, nil
}
