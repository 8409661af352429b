package ports

import (
	"context"

	"github.com/skillseek/course-search/internal/core/domain"
)

// CorpusLoader produces the canonical ordered course documents from the raw
// catalog source. No model calls happen here.
type CorpusLoader interface {
	Load(ctx context.Context) ([]domain.CourseDocument, error)
}

// Embedder maps text to fixed-dimension unit vectors using one fixed model
// for both corpus documents and queries.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// IndexSearcher performs nearest-neighbor search over a built, immutable
// index. Query vectors arrive already normalized; the index never
// renormalizes.
type IndexSearcher interface {
	Search(queryVector []float32, k int) ([]domain.IndexHit, error)
	Size() int
	Dimension() int
}

// LanguageDetector identifies the query language from the closed supported
// set, defaulting to English when the text is too short to classify.
type LanguageDetector interface {
	Detect(text string) string
}

// Translator translates text between two supported languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// SnapshotStore persists and restores built indexes together with the
// embedding model identifier they were built with.
type SnapshotStore interface {
	Save(ctx context.Context, snap *domain.IndexSnapshot) error
	Load(ctx context.Context) (*domain.IndexSnapshot, error)
	Exists() bool
}

// MessageQueue carries index rebuild requests between the API and the
// indexer.
type MessageQueue interface {
	PublishRebuildRequested(ctx context.Context, reason string) error
	SubscribeRebuildRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// AnswerGenerator is the external LLM collaborator composing the final
// user-facing answer text.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
