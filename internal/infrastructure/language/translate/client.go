package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/infrastructure/resilience"
)

// isoCodes maps catalog language names to translation API codes.
var isoCodes = map[string]string{
	domain.LanguageEnglish:   "en",
	domain.LanguageHindi:     "hi",
	domain.LanguageKannada:   "kn",
	domain.LanguageMalayalam: "ml",
	domain.LanguageTamil:     "ta",
	domain.LanguageTelugu:    "te",
}

// Client talks to a LibreTranslate-compatible endpoint. Requests are rate
// limited to stay inside the upstream quota, and retried with a breaker so a
// flapping backend degrades retrieval softly instead of stalling it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

func New(baseURL string, requestsPerSecond float64, executor *resilience.Executor) *Client {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		executor:   executor,
	}
}

func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" || sourceLang == targetLang {
		return text, nil
	}

	source, ok := isoCodes[sourceLang]
	if !ok {
		return "", fmt.Errorf("unsupported source language %q", sourceLang)
	}
	target, ok := isoCodes[targetLang]
	if !ok {
		return "", fmt.Errorf("unsupported target language %q", targetLang)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translate rate limit: %w", err)
	}

	request := map[string]any{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}

	var response struct {
		TranslatedText string `json:"translatedText"`
	}
	err := c.executor.Execute(ctx, "translate", func(callCtx context.Context) error {
		return c.post(callCtx, request, &response)
	}, classifyTranslateError)
	if err != nil {
		return "", err
	}
	return response.TranslatedText, nil
}

func (c *Client) post(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &statusError{code: resp.StatusCode, status: resp.Status, body: strings.TrimSpace(string(raw))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode translate response: %w", err)
	}
	return nil
}

type statusError struct {
	code   int
	status string
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("translate status: %s", e.status)
	}
	return fmt.Sprintf("translate status: %s: %s", e.status, e.body)
}

func classifyTranslateError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		switch statusErr.code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		}
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
