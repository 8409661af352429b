package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/skillseek/course-search/internal/core/domain"
)

type detectorFake struct {
	language string
}

func (f *detectorFake) Detect(string) string { return f.language }

type translatorFake struct {
	result     string
	err        error
	lastText   string
	lastSource string
	lastTarget string
	calls      int
}

func (f *translatorFake) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	f.calls++
	f.lastText = text
	f.lastSource = sourceLang
	f.lastTarget = targetLang
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

type embedderFake struct {
	model    string
	vectors  [][]float32
	queryVec []float32
	queryErr error
	embedErr error
	texts    []string
	lastText string
}

func (f *embedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.texts = texts
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.vectors, nil
}

func (f *embedderFake) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.lastText = text
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryVec, nil
}

func (f *embedderFake) Model() string { return f.model }

type searcherFake struct {
	hits      []domain.IndexHit
	err       error
	lastK     int
	dimension int
}

func (f *searcherFake) Search(_ []float32, k int) ([]domain.IndexHit, error) {
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *searcherFake) Size() int      { return len(f.hits) }
func (f *searcherFake) Dimension() int { return f.dimension }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func publishedRegistry(model string, searcher *searcherFake, docs ...domain.CourseDocument) *IndexRegistry {
	byID := make(map[string]domain.CourseDocument, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
	}
	registry := NewIndexRegistry()
	registry.Publish(&IndexVersion{
		Searcher:  searcher,
		Documents: byID,
		Model:     model,
		BuiltAt:   time.Now(),
	})
	return registry
}

func englishRetriever(embedder *embedderFake, registry *IndexRegistry) *RetrieveUseCase {
	normalizer := NewQueryNormalizer(&detectorFake{language: domain.LanguageEnglish}, &translatorFake{}, discardLogger())
	return NewRetrieveUseCase(normalizer, embedder, registry, discardLogger())
}

func TestRetrieveValidatesParameters(t *testing.T) {
	embedder := &embedderFake{model: "m"}
	uc := englishRetriever(embedder, publishedRegistry("m", &searcherFake{}))

	cases := []struct {
		name      string
		query     string
		topK      int
		threshold float64
	}{
		{"empty query", "   ", 3, 0.5},
		{"zero top_k", "q", 0, 0.5},
		{"negative top_k", "q", -1, 0.5},
		{"threshold above range", "q", 3, 1.5},
		{"threshold below range", "q", 3, -1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Retrieve(context.Background(), tc.query, tc.topK, tc.threshold)
			if !domain.IsKind(err, domain.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if embedder.lastText != "" {
				t.Fatalf("embedder must not be called on invalid parameters")
			}
		})
	}
}

func TestRetrieveBeforeFirstPublish(t *testing.T) {
	uc := englishRetriever(&embedderFake{model: "m"}, NewIndexRegistry())

	_, err := uc.Retrieve(context.Background(), "q", 3, 0.5)
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestRetrieveModelMismatch(t *testing.T) {
	registry := publishedRegistry("old-model", &searcherFake{})
	uc := englishRetriever(&embedderFake{model: "new-model"}, registry)

	_, err := uc.Retrieve(context.Background(), "q", 3, 0.5)
	if !domain.IsKind(err, domain.ErrModelMismatch) {
		t.Fatalf("expected ErrModelMismatch, got %v", err)
	}
}

func TestRetrieveFiltersByThresholdAndResolvesDocuments(t *testing.T) {
	searcher := &searcherFake{hits: []domain.IndexHit{
		{CourseID: "c1", Score: 0.92},
		{CourseID: "c2", Score: 0.74},
		{CourseID: "c3", Score: 0.41},
	}}
	registry := publishedRegistry("m", searcher,
		domain.CourseDocument{ID: "c1", SearchText: "first"},
		domain.CourseDocument{ID: "c2", SearchText: "second"},
		domain.CourseDocument{ID: "c3", SearchText: "third"},
	)
	embedder := &embedderFake{model: "m", queryVec: []float32{1, 0}}
	uc := englishRetriever(embedder, registry)

	result, err := uc.Retrieve(context.Background(), "query", 3, 0.7)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if searcher.lastK != 3 {
		t.Fatalf("expected k=3 passed to searcher, got %d", searcher.lastK)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches above threshold, got %d", len(result.Matches))
	}
	if result.Matches[0].CourseID != "c1" || result.Matches[1].CourseID != "c2" {
		t.Fatalf("unexpected match order: %+v", result.Matches)
	}
	if result.Matches[0].Course.SearchText != "first" {
		t.Fatalf("expected resolved course document, got %+v", result.Matches[0].Course)
	}
}

func TestRetrieveEmptyWhenNothingClearsThreshold(t *testing.T) {
	searcher := &searcherFake{hits: []domain.IndexHit{{CourseID: "c1", Score: 0.2}}}
	registry := publishedRegistry("m", searcher, domain.CourseDocument{ID: "c1"})
	uc := englishRetriever(&embedderFake{model: "m", queryVec: []float32{1}}, registry)

	result, err := uc.Retrieve(context.Background(), "query", 3, 0.7)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(result.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(result.Matches))
	}
}

func TestRetrieveUnresolvableHit(t *testing.T) {
	searcher := &searcherFake{hits: []domain.IndexHit{{CourseID: "ghost", Score: 0.99}}}
	registry := publishedRegistry("m", searcher)
	uc := englishRetriever(&embedderFake{model: "m", queryVec: []float32{1}}, registry)

	_, err := uc.Retrieve(context.Background(), "query", 3, 0.5)
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestRetrieveEmbedError(t *testing.T) {
	registry := publishedRegistry("m", &searcherFake{})
	uc := englishRetriever(&embedderFake{model: "m", queryErr: errors.New("embed down")}, registry)

	_, err := uc.Retrieve(context.Background(), "query", 3, 0.5)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRetrieveUsesTranslatedQuery(t *testing.T) {
	searcher := &searcherFake{}
	registry := publishedRegistry("m", searcher)
	embedder := &embedderFake{model: "m", queryVec: []float32{1}}
	translator := &translatorFake{result: "data science courses"}
	normalizer := NewQueryNormalizer(&detectorFake{language: domain.LanguageHindi}, translator, discardLogger())
	uc := NewRetrieveUseCase(normalizer, embedder, registry, discardLogger())

	result, err := uc.Retrieve(context.Background(), "डेटा साइंस", 3, 0.5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if embedder.lastText != "data science courses" {
		t.Fatalf("expected translated text embedded, got %q", embedder.lastText)
	}
	if result.Language != domain.LanguageHindi || !result.Normalized.Translated {
		t.Fatalf("unexpected normalization: %+v", result)
	}
}

func TestRetrieveSoftDegradeOnTranslationFailure(t *testing.T) {
	registry := publishedRegistry("m", &searcherFake{})
	embedder := &embedderFake{model: "m", queryVec: []float32{1}}
	translator := &translatorFake{err: errors.New("translate down")}
	normalizer := NewQueryNormalizer(&detectorFake{language: domain.LanguageTamil}, translator, discardLogger())
	uc := NewRetrieveUseCase(normalizer, embedder, registry, discardLogger())

	result, err := uc.Retrieve(context.Background(), "தமிழ் வினவல்", 3, 0.5)
	if err != nil {
		t.Fatalf("expected soft degrade, got error %v", err)
	}
	if embedder.lastText != "தமிழ் வினவல்" {
		t.Fatalf("expected raw query embedded on fallback, got %q", embedder.lastText)
	}
	if result.Normalized.Translated || result.Normalized.FallbackReason == "" {
		t.Fatalf("expected fallback branch recorded, got %+v", result.Normalized)
	}
}

func TestCourseReadUseCase(t *testing.T) {
	searcher := &searcherFake{
		hits:      []domain.IndexHit{{CourseID: "c1"}},
		dimension: 4,
	}
	registry := publishedRegistry("m", searcher, domain.CourseDocument{ID: "c1", SearchText: "text"})
	uc := NewCourseReadUseCase(registry)

	doc, err := uc.GetByID(context.Background(), "c1")
	if err != nil || doc.ID != "c1" {
		t.Fatalf("GetByID() = %v, %v", doc, err)
	}
	if _, err := uc.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Model != "m" || stats.Documents != 1 || stats.Dimension != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
