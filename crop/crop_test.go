package crop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"croprec/translate"
)

func TestLabelsClosedSet(t *testing.T) {
	if len(Labels()) != 22 {
		t.Fatalf("expected 22 labels, got %d", len(Labels()))
	}
	for _, label := range Labels() {
		if _, ok := infoTable[label]; !ok {
			t.Errorf("%s has no info record", label)
		}
		if name, ok := DisplayName(label, DefaultLanguage); !ok || name == "" {
			t.Errorf("%s has no English display name", label)
		}
		for code := range supportedLanguages {
			if _, ok := DisplayName(label, code); !ok {
				t.Errorf("%s has no %s display name", label, code)
			}
		}
	}
	if label, ok := ParseLabel("rice"); !ok || label != Rice {
		t.Fatalf("expected rice, got %q %v", label, ok)
	}
	if _, ok := ParseLabel("wheat"); ok {
		t.Fatal("wheat is not in the label set")
	}
}

func TestLookupInfoFallback(t *testing.T) {
	info, ok := LookupInfo(Label("dragonfruit"))
	if ok {
		t.Fatal("expected missing record")
	}
	want := Info{
		Name:        "Dragonfruit",
		Description: NoDescription,
		Season:      NotAvailable,
		SoilType:    NotAvailable,
		Tips:        NotAvailable,
	}
	if info != want {
		t.Fatalf("unexpected fallback: %+v", info)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "en", true},
		{"hi", "hi", true},
		{"HI", "hi", true},
		{"ta-IN", "ta", true},
		{"fr", "", false},
		{"not a tag", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeLanguage(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeLanguage(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLanguageCode(t *testing.T) {
	tests := map[string]string{
		"":          "en",
		" HI ":      "hi",
		"ta-IN":     "ta",
		"fr":        "fr",
		"FR-ca":     "fr",
		"not a tag": "not a tag",
	}
	for in, want := range tests {
		if got := LanguageCode(in); got != want {
			t.Errorf("LanguageCode(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestResolveDefaultLanguageSkipsTranslator(t *testing.T) {
	var calls atomic.Int32
	translator := translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
		calls.Add(1)
		return translate.Success("x")
	})
	info := NewResolver(translator, time.Second, nil).Resolve(context.Background(), Rice, "en")
	if info != infoTable[Rice] {
		t.Fatalf("unexpected info: %+v", info)
	}
	if calls.Load() != 0 {
		t.Fatalf("translator called %d times", calls.Load())
	}
}

func TestResolveTranslates(t *testing.T) {
	translator := translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
		if source != "en" || target != "hi" {
			t.Errorf("unexpected languages %s -> %s", source, target)
		}
		return translate.Success("[hi] " + text)
	})
	info := NewResolver(translator, time.Second, nil).Resolve(context.Background(), Rice, "hi")
	if info.Name != "धान" {
		t.Fatalf("expected curated name, got %q", info.Name)
	}
	source := infoTable[Rice]
	if info.Description != "[hi] "+source.Description || info.Season != "[hi] "+source.Season ||
		info.SoilType != "[hi] "+source.SoilType || info.Tips != "[hi] "+source.Tips {
		t.Fatalf("fields not translated: %+v", info)
	}
}

func TestResolveFallsBackOnTranslationFailure(t *testing.T) {
	translators := map[string]translate.Translator{
		"error": translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
			return translate.Failure(errors.New("network down"))
		}),
		"empty": translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
			return translate.Result{}
		}),
		"disabled": translate.Disabled{},
		"slow": translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
			<-ctx.Done()
			return translate.Failure(ctx.Err())
		}),
	}
	for name, translator := range translators {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			info := NewResolver(translator, 50*time.Millisecond, nil).Resolve(context.Background(), Maize, "te")
			if time.Since(start) > time.Second {
				t.Fatal("translation budget not enforced")
			}
			source := infoTable[Maize]
			if info.Name != "మొక్కజొన్న" {
				t.Fatalf("expected curated name, got %q", info.Name)
			}
			if info.Description != source.Description || info.Season != source.Season ||
				info.SoilType != source.SoilType || info.Tips != source.Tips {
				t.Fatalf("expected source text, got %+v", info)
			}
		})
	}
}

func TestResolveUnknownLabel(t *testing.T) {
	translator := translate.TranslatorFunc(func(ctx context.Context, text, source, target string) translate.Result {
		return translate.Failure(errors.New("down"))
	})
	info := NewResolver(translator, time.Second, nil).Resolve(context.Background(), Label("quinoa"), "hi")
	if info.Name != "Quinoa" || info.Season != NotAvailable || info.Tips != NotAvailable {
		t.Fatalf("unexpected fallback: %+v", info)
	}
}

func TestResolverTranslateText(t *testing.T) {
	r := NewResolver(translate.Disabled{}, time.Second, nil)
	if got := r.Translate(context.Background(), "Recommended crop", "hi"); got != "Recommended crop" {
		t.Fatalf("expected source text, got %q", got)
	}
}
