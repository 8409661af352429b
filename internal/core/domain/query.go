package domain

// Language names used across detection and response localization. The
// detection set is closed: the six catalog languages plus Unknown.
const (
	LanguageEnglish   = "English"
	LanguageHindi     = "Hindi"
	LanguageKannada   = "Kannada"
	LanguageMalayalam = "Malayalam"
	LanguageTamil     = "Tamil"
	LanguageTelugu    = "Telugu"
	LanguageUnknown   = "Unknown"
)

// NormalizedQuery is the explicit two-branch outcome of query normalization:
// either the query was translated to English, or translation was skipped or
// failed and the original text is used with the reason recorded.
type NormalizedQuery struct {
	Text           string `json:"text"`
	Translated     bool   `json:"translated"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// QueryContext carries per-request query state. It is created for each
// incoming query and discarded once the response is produced.
type QueryContext struct {
	RawQuery   string          `json:"raw_query"`
	Language   string          `json:"language"`
	Normalized NormalizedQuery `json:"normalized"`
}
