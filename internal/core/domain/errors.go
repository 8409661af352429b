package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCorpusLoad marks an unreadable or empty corpus source. Fatal to
	// startup: no partial corpus is ever served.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrEmptyIndex marks an index build attempted over zero entries.
	ErrEmptyIndex = errors.New("empty index")

	// ErrModelMismatch marks a persisted index built with a different
	// embedding model than the one configured.
	ErrModelMismatch = errors.New("embedding model mismatch")

	// ErrInvalidParameter marks out-of-range caller-supplied retrieval
	// parameters, rejected before any embedding or index work.
	ErrInvalidParameter = errors.New("invalid retrieval parameter")

	// ErrCourseNotFound marks a lookup for an id absent from the corpus.
	ErrCourseNotFound = errors.New("course not found")

	// ErrIndexUnavailable marks retrieval attempted before any index
	// version has been published.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrTemporary marks transient upstream failures worth retrying.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
