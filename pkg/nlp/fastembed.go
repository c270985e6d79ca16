package nlp

import (
	"fmt"

	fastembed "github.com/anush008/fastembed-go"
)

// FastEmbedder scores phrases with a local ONNX embedding model.
type FastEmbedder struct {
	model *fastembed.FlagEmbedding
}

// NewFastEmbedder initializes the embedding model, downloading it into
// cacheDir on first use. An empty model name selects BGE-small-en-v1.5.
func NewFastEmbedder(model, cacheDir string) (*FastEmbedder, error) {
	showProgress := false
	opts := &fastembed.InitOptions{
		Model:                fastembed.BGESmallENV15,
		CacheDir:             cacheDir,
		MaxLength:            512,
		ShowDownloadProgress: &showProgress,
	}
	if model != "" {
		opts.Model = fastembed.EmbeddingModel(model)
	}

	fe, err := fastembed.NewFlagEmbedding(opts)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding model: %w", err)
	}
	return &FastEmbedder{model: fe}, nil
}

// Embed implements Embedder.
func (f *FastEmbedder) Embed(texts []string) ([][]float32, error) {
	return f.model.Embed(texts, 32)
}

// Close releases the underlying ONNX session.
func (f *FastEmbedder) Close() error {
	return f.model.Destroy()
}
