package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notegraph-dev/notegraph/internal/adapter/repository"
	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	"github.com/notegraph-dev/notegraph/internal/infrastructure/database"
	"github.com/notegraph-dev/notegraph/internal/usecase/ingest"
	"github.com/notegraph-dev/notegraph/pkg/config"
	"github.com/notegraph-dev/notegraph/pkg/nlp"
)

// Filenames follow <type>_<YYYY>_<MM>_<DD>.txt; anything else falls back to
// type "meeting" dated today.
var filenamePattern = regexp.MustCompile(`^([a-zA-Z-]+)_(\d{4})_(\d{2})_(\d{2})\.txt$`)

var (
	notesDir string
	dryRun   bool
)

var rootCmd = &cobra.Command{
	Use:   "notegraph-ingest",
	Short: "Ingest a directory of meeting-notes files into the knowledge graph",
	Long: `Walks a directory of plain-text meeting notes, extracts topics, action
items, decisions and attendees from each file and materializes them into the
graph store. With --dry-run the extraction record is printed instead of
persisted.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&notesDir, "dir", "d", "meeting_notes", "directory containing .txt meeting notes")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "extract and print records without persisting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	var embedder nlp.Embedder
	if cfg.NLP.EmbeddingModel != "" {
		fastEmbedder, err := nlp.NewFastEmbedder(cfg.NLP.EmbeddingModel, cfg.NLP.ModelCacheDir)
		if err != nil {
			return fmt.Errorf("failed to initialize embedding model: %w", err)
		}
		defer fastEmbedder.Close()
		embedder = fastEmbedder
	}
	engine := nlp.NewEngine(embedder)

	var svc *ingest.Service
	if dryRun {
		svc = ingest.NewService(engine, nil, nil, cfg.NLP.TopKeyphrases, logger)
	} else {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.CloseDB(db)

		store := repository.NewGraphStore(db)
		if err := store.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("graph store is unavailable: %w", err)
		}
		svc = ingest.NewService(engine, store, nil, cfg.NLP.TopKeyphrases, logger)
	}

	var ingested, failed int
	err = filepath.WalkDir(notesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}

		doc, err := loadDocument(path)
		if err != nil {
			log.Printf("❌ %s: %v", path, err)
			failed++
			return nil
		}

		if err := processDocument(cmd.Context(), svc, doc); err != nil {
			log.Printf("❌ %s: %v", path, err)
			failed++
			return nil
		}

		log.Printf("✅ Ingested %s (%s, %s)", doc.Title, doc.Type, doc.Date.Format("2006-01-02"))
		ingested++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", notesDir, err)
	}

	log.Printf("Done: %d ingested, %d failed", ingested, failed)
	if failed > 0 {
		return fmt.Errorf("%d documents failed", failed)
	}
	return nil
}

func loadDocument(path string) (*entities.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(raw)

	meetingType := "meeting"
	date := time.Now()
	if match := filenamePattern.FindStringSubmatch(filepath.Base(path)); match != nil {
		meetingType = match[1]
		parsed, err := time.Parse("2006_01_02", match[2]+"_"+match[3]+"_"+match[4])
		if err == nil {
			date = parsed
		}
	}

	return &entities.Document{
		Title:  titleFrom(text, path),
		Type:   meetingType,
		Date:   date,
		Text:   text,
		Source: path,
	}, nil
}

// titleFrom uses the first non-empty line as the meeting title, falling back
// to the file name.
func titleFrom(text, path string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return strings.TrimSuffix(filepath.Base(path), ".txt")
}

func processDocument(ctx context.Context, svc *ingest.Service, doc *entities.Document) error {
	if dryRun {
		record, err := svc.Extract(doc)
		if err != nil {
			return err
		}
		payload, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("--- %s ---\n%s\n", doc.Title, payload)
		return nil
	}

	_, err := svc.Ingest(ctx, doc)
	return err
}
