package corpus

import (
	"strings"
	"testing"

	"github.com/skillseek/course-search/internal/core/domain"
)

func catalogHeader() []string {
	return []string{"Course No", "Course Title", "Course Description", "Who This Course is For", "Released Languages"}
}

func TestBuildDocument(t *testing.T) {
	m := DefaultMapping()
	cells := []string{" C-101 ", "Python Basics", "Intro to Python", "Beginners", "24, 6"}

	doc := BuildDocument(m, catalogHeader(), cells, 0)
	if doc.ID != "C-101" {
		t.Fatalf("unexpected id %q", doc.ID)
	}
	if len(doc.Languages) != 2 || doc.Languages[0] != "English" || doc.Languages[1] != "Hindi" {
		t.Fatalf("unexpected languages %v", doc.Languages)
	}
	if doc.Fields["Released Languages"] != "English, Hindi" {
		t.Fatalf("language column not rewritten: %q", doc.Fields["Released Languages"])
	}
	if !strings.Contains(doc.SearchText, "Course Title: Python Basics") ||
		!strings.Contains(doc.SearchText, "Languages: English, Hindi") {
		t.Fatalf("unexpected search text:\n%s", doc.SearchText)
	}
}

func TestBuildDocumentMissingCells(t *testing.T) {
	m := DefaultMapping()
	doc := BuildDocument(m, catalogHeader(), []string{"C-102", "Short Row"}, 1)

	if doc.Fields["Course Description"] != "" {
		t.Fatalf("missing cell must become empty string, got %q", doc.Fields["Course Description"])
	}
	if len(doc.Languages) != 1 || doc.Languages[0] != domain.LanguageEnglish {
		t.Fatalf("empty language cell must default to English, got %v", doc.Languages)
	}
	if !strings.Contains(doc.SearchText, "Description: ") {
		t.Fatalf("search text must keep the field layout:\n%s", doc.SearchText)
	}
}

func TestBuildDocumentMissingIDFallsBackToRowNumber(t *testing.T) {
	m := DefaultMapping()
	doc := BuildDocument(m, catalogHeader(), []string{"", "No ID Course"}, 7)
	if doc.ID != "row-7" {
		t.Fatalf("expected row fallback id, got %q", doc.ID)
	}
}

func TestBuildDocumentUnknownLanguageCode(t *testing.T) {
	m := DefaultMapping()
	doc := BuildDocument(m, catalogHeader(), []string{"C-103", "T", "D", "W", "99"}, 0)
	if len(doc.Languages) != 1 || doc.Languages[0] != domain.LanguageUnknown {
		t.Fatalf("unknown code must resolve to Unknown, got %v", doc.Languages)
	}
}

func TestBuildDocumentIgnoresNonNumericCodes(t *testing.T) {
	m := DefaultMapping()
	doc := BuildDocument(m, catalogHeader(), []string{"C-104", "T", "D", "W", "english, 20"}, 0)
	if len(doc.Languages) != 1 || doc.Languages[0] != "Tamil" {
		t.Fatalf("non-numeric codes must be skipped, got %v", doc.Languages)
	}
}
