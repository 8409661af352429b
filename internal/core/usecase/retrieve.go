package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
)

// RetrieveUseCase is the retrieval pipeline: normalize the query, embed it,
// search the published index, filter by score threshold, and resolve the
// surviving ids to full course documents.
type RetrieveUseCase struct {
	normalizer *QueryNormalizer
	embedder   ports.Embedder
	registry   *IndexRegistry
	logger     *slog.Logger
}

func NewRetrieveUseCase(
	normalizer *QueryNormalizer,
	embedder ports.Embedder,
	registry *IndexRegistry,
	logger *slog.Logger,
) *RetrieveUseCase {
	return &RetrieveUseCase{
		normalizer: normalizer,
		embedder:   embedder,
		registry:   registry,
		logger:     logger,
	}
}

func (uc *RetrieveUseCase) Retrieve(
	ctx context.Context,
	query string,
	topK int,
	scoreThreshold float64,
) (*domain.RetrievalResult, error) {
	// Parameter validation happens before any embedding or index work.
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidParameter, "retrieve",
			fmt.Errorf("query must not be empty"))
	}
	if topK <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidParameter, "retrieve",
			fmt.Errorf("top_k must be positive, got %d", topK))
	}
	if scoreThreshold < -1 || scoreThreshold > 1 {
		return nil, domain.WrapError(domain.ErrInvalidParameter, "retrieve",
			fmt.Errorf("score_threshold must be in [-1, 1], got %v", scoreThreshold))
	}

	version, err := uc.registry.Current()
	if err != nil {
		return nil, fmt.Errorf("resolve index version: %w", err)
	}
	if version.Model != uc.embedder.Model() {
		return nil, domain.WrapError(domain.ErrModelMismatch, "retrieve",
			fmt.Errorf("index built with %q, configured model is %q", version.Model, uc.embedder.Model()))
	}

	qc := uc.normalizer.Normalize(ctx, query)

	queryVector, err := uc.embedder.EmbedQuery(ctx, qc.Normalized.Text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := version.Searcher.Search(queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	matches := make([]domain.Match, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < scoreThreshold {
			continue
		}
		doc, ok := version.Documents[hit.CourseID]
		if !ok {
			// An indexed id must always resolve; a miss means the snapshot
			// and the document map diverged.
			return nil, fmt.Errorf("resolve course %q: %w", hit.CourseID, domain.ErrCourseNotFound)
		}
		matches = append(matches, domain.Match{
			CourseID: hit.CourseID,
			Score:    hit.Score,
			Course:   doc,
		})
	}

	uc.logger.Debug("retrieval_complete",
		"language", qc.Language,
		"translated", qc.Normalized.Translated,
		"candidates", len(hits),
		"matches", len(matches),
	)

	return &domain.RetrievalResult{
		Query:      query,
		Language:   qc.Language,
		Normalized: qc.Normalized,
		Matches:    matches,
	}, nil
}

// CourseReadUseCase resolves individual courses and index diagnostics from
// the published version.
type CourseReadUseCase struct {
	registry *IndexRegistry
}

func NewCourseReadUseCase(registry *IndexRegistry) *CourseReadUseCase {
	return &CourseReadUseCase{registry: registry}
}

func (uc *CourseReadUseCase) GetByID(_ context.Context, id string) (*domain.CourseDocument, error) {
	version, err := uc.registry.Current()
	if err != nil {
		return nil, err
	}
	doc, ok := version.Documents[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	return &doc, nil
}

func (uc *CourseReadUseCase) Stats(_ context.Context) (*domain.IndexStats, error) {
	version, err := uc.registry.Current()
	if err != nil {
		return nil, err
	}
	stats := version.Stats()
	return &stats, nil
}
