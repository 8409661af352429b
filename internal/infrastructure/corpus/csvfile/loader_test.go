package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/infrastructure/corpus"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, `Course No,Course Title,Course Description,Who This Course is For,Released Languages
C-101,Python Basics,Intro to Python,Beginners,"24, 6"
C-102,Data Engineering,Pipelines,Practitioners,20
`)
	loader := New(path, corpus.DefaultMapping())

	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "C-101" || docs[1].ID != "C-102" {
		t.Fatalf("unexpected ids: %s, %s", docs[0].ID, docs[1].ID)
	}
	if docs[1].Languages[0] != "Tamil" {
		t.Fatalf("unexpected languages: %v", docs[1].Languages)
	}
}

func TestLoadCSVZeroRows(t *testing.T) {
	path := writeCSV(t, "Course No,Course Title\n")
	loader := New(path, corpus.DefaultMapping())

	_, err := loader.Load(context.Background())
	if !domain.IsKind(err, domain.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	loader := New(filepath.Join(t.TempDir(), "absent.csv"), corpus.DefaultMapping())
	if _, err := loader.Load(context.Background()); !domain.IsKind(err, domain.ErrCorpusLoad) {
		t.Fatalf("expected ErrCorpusLoad, got %v", err)
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeCSV(t, `Course No,Course Title,Course Description,Who This Course is For,Released Languages
C-101,Short Row
`)
	loader := New(path, corpus.DefaultMapping())

	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if docs[0].Fields["Course Description"] != "" {
		t.Fatalf("missing trailing cells must become empty strings")
	}
}

func TestLoadCSVCancelledContext(t *testing.T) {
	path := writeCSV(t, `Course No,Course Title
C-101,Python
`)
	loader := New(path, corpus.DefaultMapping())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.Load(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}
