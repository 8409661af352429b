package domain

import "testing"

func TestResolveLanguageCodes(t *testing.T) {
	names := DefaultLanguageNames()
	cases := map[int]string{
		6:  "Hindi",
		7:  "Kannada",
		11: "Malayalam",
		20: "Tamil",
		21: "Telugu",
		24: "English",
		99: LanguageUnknown,
	}
	for code, want := range cases {
		if got := names.Resolve(code); got != want {
			t.Fatalf("Resolve(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestBuildSearchTextFollowsLayoutOrder(t *testing.T) {
	fields := map[string]string{
		"title": "Python Basics",
		"desc":  "Intro to Python",
	}
	layout := []SearchField{
		{Label: "Course Title", Column: "title"},
		{Label: "Description", Column: "desc"},
		{Label: "Audience", Column: "audience"},
	}

	got := BuildSearchText(fields, layout)
	want := "Course Title: Python Basics\nDescription: Intro to Python\nAudience: "
	if got != want {
		t.Fatalf("BuildSearchText() = %q, want %q", got, want)
	}
}

func TestWrapErrorKeepsKind(t *testing.T) {
	err := WrapError(ErrCorpusLoad, "load corpus", ErrCourseNotFound)
	if !IsKind(err, ErrCorpusLoad) {
		t.Fatalf("expected corpus kind preserved")
	}
	if !IsKind(err, ErrCourseNotFound) {
		t.Fatalf("expected cause preserved")
	}
	if IsKind(err, ErrModelMismatch) {
		t.Fatalf("unexpected kind match")
	}
}
