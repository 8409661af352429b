package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skillseek/course-search/internal/core/domain"
)

// BuildDocument normalizes one raw tabular row into the canonical course
// document. Missing cells become empty strings, the language column is
// rewritten from catalog codes to language names, and the embedding input is
// computed from the configured field layout.
func BuildDocument(m Mapping, header []string, cells []string, rowIndex int) domain.CourseDocument {
	fields := make(map[string]string, len(header))
	for i, column := range header {
		value := ""
		if i < len(cells) {
			value = strings.TrimSpace(cells[i])
		}
		fields[column] = value
	}

	languages := resolveLanguages(m.LanguageNames, fields[m.LanguageColumn])
	if m.LanguageColumn != "" {
		fields[m.LanguageColumn] = strings.Join(languages, ", ")
	}

	id := fields[m.IDColumn]
	if id == "" {
		id = fmt.Sprintf("row-%d", rowIndex)
	}

	return domain.CourseDocument{
		ID:         id,
		Fields:     fields,
		Languages:  languages,
		SearchText: domain.BuildSearchText(fields, m.SearchFields),
	}
}

// resolveLanguages maps a comma-separated list of catalog codes to language
// names. Unknown codes resolve to "Unknown" and are kept; a cell with no
// usable code defaults to English, matching the catalog convention.
func resolveLanguages(names domain.LanguageNames, cell string) []string {
	out := make([]string, 0, 2)
	for _, part := range strings.Split(cell, ",") {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, names.Resolve(code))
	}
	if len(out) == 0 {
		return []string{domain.LanguageEnglish}
	}
	return out
}
