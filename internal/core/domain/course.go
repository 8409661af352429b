package domain

import "strings"

// CourseDocument is one catalog row in canonical form. Fields never hold
// missing values: absent cells are normalized to the empty string so the
// text fed to the embedding model is always well-formed.
type CourseDocument struct {
	ID         string            `json:"id"`
	Fields     map[string]string `json:"fields"`
	Languages  []string          `json:"languages"`
	SearchText string            `json:"search_text"`
}

// LanguageNames maps integer catalog language codes to human language names.
type LanguageNames map[int]string

// DefaultLanguageNames is the catalog code enumeration used by the course
// source data.
func DefaultLanguageNames() LanguageNames {
	return LanguageNames{
		6:  "Hindi",
		7:  "Kannada",
		11: "Malayalam",
		20: "Tamil",
		21: "Telugu",
		24: "English",
	}
}

// Resolve returns the language name for a catalog code. Unknown codes map to
// "Unknown"; the document carrying them is retained, never dropped.
func (n LanguageNames) Resolve(code int) string {
	if name, ok := n[code]; ok {
		return name
	}
	return LanguageUnknown
}

// SearchField pairs a display label with the source column feeding it.
type SearchField struct {
	Label  string `yaml:"label"`
	Column string `yaml:"column"`
}

// BuildSearchText renders the embedding input for one document. The layout
// order is fixed by configuration; changing it invalidates every stored
// vector and requires a full reindex.
func BuildSearchText(fields map[string]string, layout []SearchField) string {
	var b strings.Builder
	for i, f := range layout {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(fields[f.Column])
	}
	return b.String()
}
