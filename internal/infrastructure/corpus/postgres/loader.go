package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/infrastructure/corpus"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Loader reads the course catalog from a Postgres table mirroring the
// spreadsheet columns. Column names come back from the result set, so the
// same mapping drives file-based and database-based corpora.
type Loader struct {
	db      *sql.DB
	table   string
	mapping corpus.Mapping
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func New(db *sql.DB, table string, mapping corpus.Mapping) (*Loader, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid corpus table name %q", table)
	}
	return &Loader{db: db, table: table, mapping: mapping}, nil
}

func (l *Loader) Load(ctx context.Context) ([]domain.CourseDocument, error) {
	rows, err := l.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %q`, l.table))
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "query corpus table", err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "read corpus columns", err)
	}

	var docs []domain.CourseDocument
	for row := 0; rows.Next(); row++ {
		values := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, domain.WrapError(domain.ErrCorpusLoad, fmt.Sprintf("scan corpus row %d", row), err)
		}

		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = stringify(v)
		}
		docs = append(docs, corpus.BuildDocument(l.mapping, header, cells, row))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "iterate corpus rows", err)
	}

	if len(docs) == 0 {
		return nil, domain.WrapError(domain.ErrCorpusLoad, "query corpus table",
			fmt.Errorf("table %q has zero rows", l.table))
	}
	return docs, nil
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(value)
	case string:
		return value
	case time.Time:
		return value.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}
