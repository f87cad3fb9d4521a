// Package translate wraps the best-effort machine translation dependency. Calls
// never fail the caller: every outcome is a Result that either carries translated
// text or the reason there is none.
package translate

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrDisabled   = errors.New("translation disabled")
	ErrEmptyText  = errors.New("translator returned empty text")
	ErrEmptyInput = errors.New("nothing to translate")
)

type Result struct {
	Text string
	Err  error
}

func Success(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Failure(ErrEmptyText)
	}
	return Result{Text: text}
}

func Failure(err error) Result {
	if err == nil {
		err = errors.New("translation failed")
	}
	return Result{Err: err}
}

func (r Result) OK() bool {
	return r.Err == nil && r.Text != ""
}

// Or returns the translated text, or fallback when the translation failed.
func (r Result) Or(fallback string) string {
	if r.OK() {
		return r.Text
	}
	return fallback
}

type Translator interface {
	Translate(ctx context.Context, text, source, target string) Result
}

type TranslatorFunc func(ctx context.Context, text, source, target string) Result

func (f TranslatorFunc) Translate(ctx context.Context, text, source, target string) Result {
	return f(ctx, text, source, target)
}

// Disabled is used when no translation backend is configured.
type Disabled struct{}

func (Disabled) Translate(context.Context, string, string, string) Result {
	return Failure(ErrDisabled)
}
