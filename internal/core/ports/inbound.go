package ports

import (
	"context"

	"github.com/skillseek/course-search/internal/core/domain"
)

// CourseRetriever is the inbound contract for the retrieval pipeline. It is
// the single entry point front ends and the answer composer depend on.
type CourseRetriever interface {
	Retrieve(ctx context.Context, query string, topK int, scoreThreshold float64) (*domain.RetrievalResult, error)
}

// AnswerComposer is the inbound contract for grounded answer generation.
type AnswerComposer interface {
	Answer(ctx context.Context, query string, topK int, scoreThreshold float64) (*domain.Answer, error)
}

// IndexBuilder is the inbound contract for index lifecycle operations.
type IndexBuilder interface {
	Rebuild(ctx context.Context) (*domain.IndexStats, error)
	LoadOrBuild(ctx context.Context) (*domain.IndexStats, error)
}

// CourseReader is the inbound read model for resolved course documents.
type CourseReader interface {
	GetByID(ctx context.Context, id string) (*domain.CourseDocument, error)
	Stats(ctx context.Context) (*domain.IndexStats, error)
}
