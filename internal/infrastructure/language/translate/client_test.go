package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillseek/course-search/internal/core/domain"
	"github.com/skillseek/course-search/internal/infrastructure/resilience"
)

func noRetryExecutor() *resilience.Executor {
	cfg := resilience.DefaultConfig()
	cfg.RetryMaxAttempts = 1
	return resilience.NewExecutor(cfg)
}

func TestTranslateSuccess(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "data science courses"})
	}))
	defer srv.Close()

	c := New(srv.URL, 100, noRetryExecutor())
	out, err := c.Translate(context.Background(), "डेटा साइंस", domain.LanguageHindi, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "data science courses" {
		t.Fatalf("unexpected translation: %q", out)
	}
	if got["source"] != "hi" || got["target"] != "en" || got["format"] != "text" {
		t.Fatalf("unexpected request payload: %v", got)
	}
}

func TestTranslateSameLanguagePassthrough(t *testing.T) {
	c := New("http://unreachable.invalid", 100, noRetryExecutor())
	out, err := c.Translate(context.Background(), "hello", domain.LanguageEnglish, domain.LanguageEnglish)
	if err != nil || out != "hello" {
		t.Fatalf("expected passthrough, got %q, %v", out, err)
	}
}

func TestTranslateEmptyTextPassthrough(t *testing.T) {
	c := New("http://unreachable.invalid", 100, noRetryExecutor())
	out, err := c.Translate(context.Background(), "  ", domain.LanguageHindi, domain.LanguageEnglish)
	if err != nil || out != "  " {
		t.Fatalf("expected passthrough, got %q, %v", out, err)
	}
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	c := New("http://unreachable.invalid", 100, noRetryExecutor())
	if _, err := c.Translate(context.Background(), "bonjour", "French", domain.LanguageEnglish); err == nil {
		t.Fatalf("expected unsupported language error")
	}
}

func TestTranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 100, noRetryExecutor())
	if _, err := c.Translate(context.Background(), "text", domain.LanguageTamil, domain.LanguageEnglish); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestTranslateRetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, 100, resilience.NewExecutor(resilience.DefaultConfig()))
	out, err := c.Translate(context.Background(), "text", domain.LanguageKannada, domain.LanguageEnglish)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "ok" || attempts != 2 {
		t.Fatalf("expected retry then success, got %q after %d attempts", out, attempts)
	}
}
