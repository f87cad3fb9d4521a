package inference

import (
	"context"

	"go.uber.org/zap"

	"croprec/crop"
)

type Request struct {
	Features map[string]any
	Language string
}

type Recommendation struct {
	Crop     crop.Label `json:"crop"`
	Info     crop.Info  `json:"info"`
	Language string     `json:"language"`
}

// Service combines the predictor with display lookup. Both are shared read-only
// across requests.
type Service struct {
	predictor *Predictor
	resolver  *crop.Resolver
	logger    *zap.Logger
}

func NewService(predictor *Predictor, resolver *crop.Resolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{predictor: predictor, resolver: resolver, logger: logger}
}

func (s *Service) Recommend(ctx context.Context, req Request) (*Recommendation, error) {
	lang := crop.LanguageCode(req.Language)
	label, err := s.predictor.Predict(req.Features)
	if err != nil {
		return nil, err
	}
	info := s.resolver.Resolve(ctx, label, lang)
	s.logger.Debug("recommendation served",
		zap.String("crop", label.String()),
		zap.String("language", lang))
	return &Recommendation{Crop: label, Info: info, Language: lang}, nil
}

func (s *Service) TranslateText(ctx context.Context, text, language string) (string, error) {
	return s.resolver.Translate(ctx, text, crop.LanguageCode(language)), nil
}

func (s *Service) Languages() map[string]string {
	return crop.SupportedLanguages()
}

func (s *Service) Predictor() *Predictor {
	return s.predictor
}
