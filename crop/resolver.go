package crop

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"croprec/metrics"
	"croprec/translate"
)

// Resolver turns a predicted label into a display record in the requested
// language. It never returns an error: missing data and translation failures
// degrade to placeholders and source text.
type Resolver struct {
	translator translate.Translator
	budget     time.Duration
	logger     *zap.Logger
}

func NewResolver(translator translate.Translator, budget time.Duration, logger *zap.Logger) *Resolver {
	if translator == nil {
		translator = translate.Disabled{}
	}
	if budget <= 0 {
		budget = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{translator: translator, budget: budget, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, label Label, lang string) Info {
	info, _ := LookupInfo(label)
	if lang == "" || lang == DefaultLanguage {
		return info
	}

	name := info.Name
	if localized, ok := DisplayName(label, lang); ok {
		name = localized
	}

	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()

	fields := []*string{&info.Description, &info.Season, &info.SoilType, &info.Tips}
	translated := make([]string, len(fields))
	var g errgroup.Group
	for i, field := range fields {
		source := *field
		g.Go(func() error {
			translated[i] = r.translate(ctx, source, lang)
			return nil
		})
	}
	g.Wait()

	for i, field := range fields {
		*field = translated[i]
	}
	info.Name = name
	return info
}

// Translate is the best-effort path for arbitrary display text.
func (r *Resolver) Translate(ctx context.Context, text, lang string) string {
	if lang == "" || lang == DefaultLanguage || text == "" {
		return text
	}
	ctx, cancel := context.WithTimeout(ctx, r.budget)
	defer cancel()
	return r.translate(ctx, text, lang)
}

func (r *Resolver) translate(ctx context.Context, text, lang string) string {
	result := r.translator.Translate(ctx, text, DefaultLanguage, lang)
	if !result.OK() {
		metrics.TranslationFallbacks.Inc()
		if errors.Is(result.Err, translate.ErrDisabled) {
			return text
		}
		r.logger.Warn("translation unavailable, using source text",
			zap.String("language", lang),
			zap.Error(result.Err))
	}
	return result.Or(text)
}
