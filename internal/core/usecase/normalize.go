package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
)

// QueryNormalizer detects the query language and produces the
// English-normalized query used for retrieval. Translation failures never
// abort retrieval: the raw query is used instead and the reason is recorded
// on the result, so the caller sees an explicit fallback branch rather than
// an error.
type QueryNormalizer struct {
	detector   ports.LanguageDetector
	translator ports.Translator
	logger     *slog.Logger
}

func NewQueryNormalizer(
	detector ports.LanguageDetector,
	translator ports.Translator,
	logger *slog.Logger,
) *QueryNormalizer {
	return &QueryNormalizer{
		detector:   detector,
		translator: translator,
		logger:     logger,
	}
}

func (n *QueryNormalizer) Normalize(ctx context.Context, rawQuery string) domain.QueryContext {
	qc := domain.QueryContext{
		RawQuery: rawQuery,
		Language: n.detector.Detect(rawQuery),
	}

	if qc.Language == domain.LanguageEnglish || qc.Language == domain.LanguageUnknown {
		qc.Normalized = domain.NormalizedQuery{Text: rawQuery}
		return qc
	}

	translated, err := n.translator.Translate(ctx, rawQuery, qc.Language, domain.LanguageEnglish)
	if err != nil || strings.TrimSpace(translated) == "" {
		reason := "empty translation"
		if err != nil {
			reason = err.Error()
		}
		n.logger.Warn("query_translation_fallback",
			"language", qc.Language,
			"reason", reason,
		)
		qc.Normalized = domain.NormalizedQuery{Text: rawQuery, FallbackReason: reason}
		return qc
	}

	qc.Normalized = domain.NormalizedQuery{Text: translated, Translated: true}
	return qc
}
