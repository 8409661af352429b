package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/infrastructure/corpus"
)

// Loader reads the course catalog straight from the spreadsheet it is
// maintained in, so operators can skip the CSV export step.
type Loader struct {
	path    string
	sheet   string
	mapping corpus.Mapping
}

func New(path, sheet string, mapping corpus.Mapping) *Loader {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Loader{path: path, sheet: sheet, mapping: mapping}
}

func (l *Loader) Load(ctx context.Context) ([]domain.CourseDocument, error) {
	book, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "open xlsx corpus", err)
	}
	defer book.Close()

	rows, err := book.GetRows(l.sheet)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "read xlsx sheet", err)
	}
	if len(rows) < 2 {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "read xlsx corpus",
			fmt.Errorf("sheet %q of %s has zero data rows", l.sheet, l.path))
	}

	header := rows[0]
	docs := make([]domain.CourseDocument, 0, len(rows)-1)
	for row, cells := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs = append(docs, corpus.BuildDocument(l.mapping, header, cells, row))
	}
	return docs, nil
}
