package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/core/ports"
)

const noMatchAnswer = "I couldn't find specific information about your question in the available course data. Please try rephrasing your question or contact support for more details."

// AnswerUseCase composes a grounded answer on top of retrieval and localizes
// it back to the language the question was asked in. Generation quality is
// the generator's concern; this layer only wires retrieval output into it.
type AnswerUseCase struct {
	retriever  ports.CourseRetriever
	generator  ports.AnswerGenerator
	translator ports.Translator
	logger     *slog.Logger
}

func NewAnswerUseCase(
	retriever ports.CourseRetriever,
	generator ports.AnswerGenerator,
	translator ports.Translator,
	logger *slog.Logger,
) *AnswerUseCase {
	return &AnswerUseCase{
		retriever:  retriever,
		generator:  generator,
		translator: translator,
		logger:     logger,
	}
}

func (uc *AnswerUseCase) Answer(
	ctx context.Context,
	query string,
	topK int,
	scoreThreshold float64,
) (*domain.Answer, error) {
	result, err := uc.retriever.Retrieve(ctx, query, topK, scoreThreshold)
	if err != nil {
		return nil, err
	}

	englishText := noMatchAnswer
	if len(result.Matches) > 0 {
		englishText, err = uc.generator.Generate(ctx, buildAnswerPrompt(result))
		if err != nil {
			return nil, fmt.Errorf("generate answer: %w", err)
		}
		if strings.TrimSpace(englishText) == "" {
			englishText = noMatchAnswer
		}
	}

	return &domain.Answer{
		Text:      uc.localize(ctx, englishText, result.Language),
		Language:  result.Language,
		Retrieval: *result,
	}, nil
}

// localize translates the English answer to the detected query language,
// falling back to English when translation is unavailable.
func (uc *AnswerUseCase) localize(ctx context.Context, text, language string) string {
	if language == domain.LanguageEnglish || language == domain.LanguageUnknown {
		return text
	}

	translated, err := uc.translator.Translate(ctx, text, domain.LanguageEnglish, language)
	if err != nil || strings.TrimSpace(translated) == "" {
		uc.logger.Warn("answer_translation_fallback", "language", language, "error", err)
		return text
	}
	return translated
}

func buildAnswerPrompt(result *domain.RetrievalResult) string {
	var context strings.Builder
	for i, match := range result.Matches {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(match.Course.SearchText)
	}

	return fmt.Sprintf(`You are a helpful assistant for a training course catalog. Based on the provided course information, answer the user's question completely and accurately.

Course Information Available:
%s

User Question: %s

Instructions:
- Provide a complete, detailed answer based on the course information
- If the exact information isn't available, explain what related information is available
- Be specific about course names, details, and requirements
- If multiple courses are relevant, mention them all

Complete Answer:`, context.String(), result.Normalized.Text)
}
