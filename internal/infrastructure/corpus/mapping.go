package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skillseek/course-search/internal/core/domain"
)

// Mapping describes how raw catalog columns map onto the canonical document
// model: which column carries the stable id, which carries the language
// codes, and the fixed, ordered field subset concatenated into the embedding
// input. Column names are configuration, not code; changing the search field
// set or order invalidates all stored embeddings and requires a reindex.
type Mapping struct {
	IDColumn       string               `yaml:"id_column"`
	LanguageColumn string               `yaml:"language_column"`
	SearchFields   []domain.SearchField `yaml:"search_fields"`
	LanguageNames  domain.LanguageNames `yaml:"language_names"`
}

// DefaultMapping matches the course catalog spreadsheet export this service
// was built around.
func DefaultMapping() Mapping {
	return Mapping{
		IDColumn:       "Course No",
		LanguageColumn: "Released Languages",
		SearchFields: []domain.SearchField{
			{Label: "Course Title", Column: "Course Title"},
			{Label: "Description", Column: "Course Description"},
			{Label: "Who This Course is For", Column: "Who This Course is For"},
			{Label: "Languages", Column: "Released Languages"},
		},
		LanguageNames: domain.DefaultLanguageNames(),
	}
}

// LoadMapping reads a mapping file, falling back to the default mapping when
// path is empty.
func LoadMapping(path string) (Mapping, error) {
	if path == "" {
		return DefaultMapping(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read corpus mapping: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("parse corpus mapping: %w", err)
	}
	if err := m.validate(); err != nil {
		return Mapping{}, fmt.Errorf("corpus mapping %s: %w", path, err)
	}
	if len(m.LanguageNames) == 0 {
		m.LanguageNames = domain.DefaultLanguageNames()
	}
	return m, nil
}

func (m Mapping) validate() error {
	if m.IDColumn == "" {
		return fmt.Errorf("id_column is required")
	}
	if len(m.SearchFields) == 0 {
		return fmt.Errorf("search_fields must not be empty")
	}
	for i, f := range m.SearchFields {
		if f.Label == "" || f.Column == "" {
			return fmt.Errorf("search_fields[%d]: label and column are required", i)
		}
	}
	return nil
}
