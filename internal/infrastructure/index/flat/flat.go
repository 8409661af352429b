package flat

import (
	"errors"
	"fmt"
	"sort"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
)

// Index is an exact brute-force cosine index. Vectors are unit length before
// they arrive, so similarity is a plain dot product and no per-query
// renormalization happens here. The structure is immutable after Build;
// corpus changes go through a wholesale rebuild.
type Index struct {
	ids       []string
	vectors   [][]float32
	dimension int
}

func Build(entries []domain.IndexEntry) (*Index, error) {
	if len(entries) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyIndex, "build flat index",
			errors.New("zero entries"))
	}

	dimension := len(entries[0].Vector)
	if dimension == 0 {
		return nil, fmt.Errorf("build flat index: entry %q has an empty vector", entries[0].CourseID)
	}

	ids := make([]string, len(entries))
	vectors := make([][]float32, len(entries))
	for i, entry := range entries {
		if len(entry.Vector) != dimension {
			return nil, fmt.Errorf("build flat index: entry %q dimension %d, expected %d",
				entry.CourseID, len(entry.Vector), dimension)
		}
		ids[i] = entry.CourseID
		vectors[i] = entry.Vector
	}

	return &Index{ids: ids, vectors: vectors, dimension: dimension}, nil
}

// Factory adapts Build to the index factory signature used at bootstrap.
func Factory(entries []domain.IndexEntry) (ports.IndexSearcher, error) {
	return Build(entries)
}

// Search returns the k entries with the highest dot product against the
// query vector, ties broken by corpus insertion order.
func (idx *Index) Search(queryVector []float32, k int) ([]domain.IndexHit, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(queryVector) != idx.dimension {
		return nil, fmt.Errorf("flat search: query dimension %d, index dimension %d",
			len(queryVector), idx.dimension)
	}

	scores := make([]float64, len(idx.vectors))
	for i, vector := range idx.vectors {
		scores[i] = dot(vector, queryVector)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	hits := make([]domain.IndexHit, 0, k)
	for _, i := range order[:k] {
		hits = append(hits, domain.IndexHit{CourseID: idx.ids[i], Score: scores[i]})
	}
	return hits, nil
}

func (idx *Index) Size() int      { return len(idx.ids) }
func (idx *Index) Dimension() int { return idx.dimension }

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
