package domain

import "time"

// IndexHit is one nearest-neighbor candidate returned by the vector index.
type IndexHit struct {
	CourseID string  `json:"course_id"`
	Score    float64 `json:"score"`
}

// Match pairs an index hit with the resolved course document.
type Match struct {
	CourseID string         `json:"course_id"`
	Score    float64        `json:"score"`
	Course   CourseDocument `json:"course"`
}

// RetrievalResult is the ranked outcome of one retrieval call. Matches are
// ordered by descending score, every score is at least the caller's
// threshold, and the length never exceeds top-k. An empty Matches slice is a
// normal outcome, not an error.
type RetrievalResult struct {
	Query      string          `json:"query"`
	Language   string          `json:"language"`
	Normalized NormalizedQuery `json:"normalized"`
	Matches    []Match         `json:"matches"`
}

// Answer is the composed user-facing response built on top of retrieval.
type Answer struct {
	Text      string          `json:"text"`
	Language  string          `json:"language"`
	Retrieval RetrievalResult `json:"retrieval"`
}

// IndexEntry pairs a course id with its embedding vector. Vectors are
// L2-normalized before they reach the index, so cosine similarity is a plain
// dot product.
type IndexEntry struct {
	CourseID string    `json:"course_id"`
	Vector   []float32 `json:"vector"`
}

// IndexSnapshot is the persisted form of a built index: vectors, the
// id-to-document mapping, and the embedding model identifier they were built
// with. A snapshot built with a different model than the one configured must
// be rejected, never searched.
type IndexSnapshot struct {
	Model         string           `json:"model"`
	Dimension     int              `json:"dimension"`
	CorpusVersion string           `json:"corpus_version"`
	BuiltAt       time.Time        `json:"built_at"`
	Entries       []IndexEntry     `json:"entries"`
	Documents     []CourseDocument `json:"documents"`
}

// IndexStats describes the currently published index version.
type IndexStats struct {
	Model         string    `json:"model"`
	Dimension     int       `json:"dimension"`
	CorpusVersion string    `json:"corpus_version"`
	Documents     int       `json:"documents"`
	BuiltAt       time.Time `json:"built_at"`
}
