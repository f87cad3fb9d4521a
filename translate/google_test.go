package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGoogleTranslator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("tl") != "hi" || q.Get("sl") != "en" || q.Get("q") != "Summer. Sandy loam" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`[[["गर्मी। ","Summer. ",null,null,10],["बलुई दोमट","Sandy loam",null,null,10]],null,"en"]`))
	}))
	defer server.Close()

	translator := NewGoogleTranslator(server.URL, time.Second)
	result := translator.Translate(context.Background(), "Summer. Sandy loam", "en", "hi")
	if !result.OK() {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.Text != "गर्मी। बलुई दोमट" {
		t.Fatalf("unexpected translation: %q", result.Text)
	}
}

func TestGoogleTranslatorFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>`))
		}},
		{"empty translation", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[[["","Summer",null]]]`))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
			w.Write([]byte(`[[["late","Summer"]]]`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			translator := NewGoogleTranslator(server.URL, 100*time.Millisecond)
			result := translator.Translate(context.Background(), "Summer", "en", "hi")
			if result.OK() {
				t.Fatalf("expected failure, got %q", result.Text)
			}
			if got := result.Or("Summer"); got != "Summer" {
				t.Fatalf("expected fallback text, got %q", got)
			}
		})
	}
}

func TestGoogleTranslatorEmptyInput(t *testing.T) {
	translator := NewGoogleTranslator("http://127.0.0.1:0", time.Second)
	if result := translator.Translate(context.Background(), "  ", "en", "hi"); result.OK() {
		t.Fatal("expected failure for blank input")
	}
}
