package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/infrastructure/corpus"
)

// Loader reads the course catalog from a delimited text file. The first row
// is the header; column semantics come from the mapping.
type Loader struct {
	path    string
	mapping corpus.Mapping
}

func New(path string, mapping corpus.Mapping) *Loader {
	return &Loader{path: path, mapping: mapping}
}

func (l *Loader) Load(ctx context.Context) ([]domain.CourseDocument, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "open csv corpus", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "read csv header", err)
	}

	var docs []domain.CourseDocument
	for row := 0; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.WrapError(domain.ErrCorpusLoad, fmt.Sprintf("read csv row %d", row), err)
		}
		docs = append(docs, corpus.BuildDocument(l.mapping, header, cells, row))
	}

	if len(docs) == 0 {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "read csv corpus",
			fmt.Errorf("%s has zero rows", l.path))
	}
	return docs, nil
}
