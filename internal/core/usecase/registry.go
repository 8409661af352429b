package usecase

import (
	"sync/atomic"
	"time"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
)

// IndexVersion is one immutable published generation of the index together
// with the id-to-document mapping resolved against it. Concurrent readers
// hold a reference to exactly one version; a rebuild produces a fresh
// version and swaps it in atomically.
type IndexVersion struct {
	Searcher      ports.IndexSearcher
	Documents     map[string]domain.CourseDocument
	Model         string
	CorpusVersion string
	BuiltAt       time.Time
}

func (v *IndexVersion) Stats() domain.IndexStats {
	return domain.IndexStats{
		Model:         v.Model,
		Dimension:     v.Searcher.Dimension(),
		CorpusVersion: v.CorpusVersion,
		Documents:     v.Searcher.Size(),
		BuiltAt:       v.BuiltAt,
	}
}

// IndexRegistry owns the currently published index version. Queries read it
// lock-free; rebuilds publish a complete replacement, never a partially
// built index.
type IndexRegistry struct {
	current atomic.Pointer[IndexVersion]
}

func NewIndexRegistry() *IndexRegistry {
	return &IndexRegistry{}
}

func (r *IndexRegistry) Current() (*IndexVersion, error) {
	v := r.current.Load()
	if v == nil {
		return nil, domain.ErrIndexUnavailable
	}
	return v, nil
}

func (r *IndexRegistry) Publish(v *IndexVersion) {
	r.current.Store(v)
}
