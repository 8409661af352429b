package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
)

// IndexFactory constructs a searcher over a complete entry set. The concrete
// index type (exact flat is the baseline) is chosen at bootstrap.
type IndexFactory func(entries []domain.IndexEntry) (ports.IndexSearcher, error)

// BuildIndexUseCase owns the index lifecycle: load corpus, embed all
// documents in one batched call, build the index, persist the snapshot, and
// publish the new version atomically. Readers keep serving the previous
// version until the swap.
type BuildIndexUseCase struct {
	loader   ports.CorpusLoader
	embedder ports.Embedder
	store    ports.SnapshotStore
	registry *IndexRegistry
	factory  IndexFactory
	logger   *slog.Logger
}

func NewBuildIndexUseCase(
	loader ports.CorpusLoader,
	embedder ports.Embedder,
	store ports.SnapshotStore,
	registry *IndexRegistry,
	factory IndexFactory,
	logger *slog.Logger,
) *BuildIndexUseCase {
	return &BuildIndexUseCase{
		loader:   loader,
		embedder: embedder,
		store:    store,
		registry: registry,
		factory:  factory,
		logger:   logger,
	}
}

// LoadOrBuild restores a persisted snapshot when one exists and its model
// identifier matches the configured embedding model; otherwise it builds
// from the corpus. A model mismatch is fatal: the stale index must not be
// served and must not be silently re-embedded.
func (uc *BuildIndexUseCase) LoadOrBuild(ctx context.Context) (*domain.IndexStats, error) {
	if !uc.store.Exists() {
		return uc.Rebuild(ctx)
	}

	snap, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load index snapshot: %w", err)
	}
	if snap.Model != uc.embedder.Model() {
		return nil, domain.WrapError(domain.ErrModelMismatch, "load index snapshot",
			fmt.Errorf("snapshot built with %q, configured model is %q", snap.Model, uc.embedder.Model()))
	}

	version, err := uc.versionFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	uc.registry.Publish(version)

	stats := version.Stats()
	uc.logger.Info("index_snapshot_loaded",
		"model", stats.Model,
		"documents", stats.Documents,
		"dimension", stats.Dimension,
		"corpus_version", stats.CorpusVersion,
	)
	return &stats, nil
}

// Rebuild performs a wholesale rebuild from the corpus source. Incremental
// update of individual entries is deliberately unsupported.
func (uc *BuildIndexUseCase) Rebuild(ctx context.Context) (*domain.IndexStats, error) {
	started := time.Now()

	docs, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "load corpus",
			errors.New("corpus has zero rows"))
	}
	if err := checkUniqueIDs(docs); err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "load corpus", err)
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.SearchText
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("embed corpus: vectors/documents mismatch: %d/%d", len(vectors), len(docs))
	}

	entries := make([]domain.IndexEntry, len(docs))
	for i, doc := range docs {
		entries[i] = domain.IndexEntry{CourseID: doc.ID, Vector: vectors[i]}
	}

	searcher, err := uc.factory(entries)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	snap := &domain.IndexSnapshot{
		Model:         uc.embedder.Model(),
		Dimension:     searcher.Dimension(),
		CorpusVersion: corpusFingerprint(docs),
		BuiltAt:       time.Now().UTC(),
		Entries:       entries,
		Documents:     docs,
	}
	if err := uc.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("persist index snapshot: %w", err)
	}

	version, err := uc.versionFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	uc.registry.Publish(version)

	stats := version.Stats()
	uc.logger.Info("index_rebuilt",
		"model", stats.Model,
		"documents", stats.Documents,
		"dimension", stats.Dimension,
		"corpus_version", stats.CorpusVersion,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return &stats, nil
}

func (uc *BuildIndexUseCase) versionFromSnapshot(snap *domain.IndexSnapshot) (*IndexVersion, error) {
	searcher, err := uc.factory(snap.Entries)
	if err != nil {
		return nil, fmt.Errorf("build index from snapshot: %w", err)
	}

	byID := make(map[string]domain.CourseDocument, len(snap.Documents))
	for _, doc := range snap.Documents {
		byID[doc.ID] = doc
	}

	return &IndexVersion{
		Searcher:      searcher,
		Documents:     byID,
		Model:         snap.Model,
		CorpusVersion: snap.CorpusVersion,
		BuiltAt:       snap.BuiltAt,
	}, nil
}

func checkUniqueIDs(docs []domain.CourseDocument) error {
	seen := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if _, dup := seen[doc.ID]; dup {
			return fmt.Errorf("duplicate course id %q", doc.ID)
		}
		seen[doc.ID] = struct{}{}
	}
	return nil
}

// corpusFingerprint identifies one corpus version independently of the
// source format: the same documents always hash to the same version.
func corpusFingerprint(docs []domain.CourseDocument) string {
	h := sha256.New()
	for _, doc := range docs {
		h.Write([]byte(doc.ID))
		h.Write([]byte{0x1f})
		h.Write([]byte(doc.SearchText))
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
