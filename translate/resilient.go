package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"croprec/metrics"
)

type Options struct {
	Timeout         time.Duration
	CacheSize       int
	RatePerSecond   float64
	Burst           int
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

func DefaultOptions() Options {
	return Options{
		Timeout:         3 * time.Second,
		CacheSize:       1024,
		RatePerSecond:   5,
		Burst:           10,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

type cacheKey struct {
	text, source, target string
}

// Resilient puts a cache, a rate limit, a per-call timeout and a circuit breaker
// in front of another Translator.
type Resilient struct {
	next    Translator
	cache   *lru.Cache[cacheKey, string]
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
	timeout time.Duration
	logger  *zap.Logger
}

func NewResilient(next Translator, opts Options, logger *zap.Logger) (*Resilient, error) {
	if next == nil {
		return nil, errors.New("translator is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	defaults := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaults.CacheSize
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = defaults.BreakerFailures
	}
	if opts.BreakerCooldown <= 0 {
		opts.BreakerCooldown = defaults.BreakerCooldown
	}

	cache, err := lru.New[cacheKey, string](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create translation cache: %w", err)
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}

	failures := opts.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "translator",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Resilient{
		next:    next,
		cache:   cache,
		limiter: limiter,
		breaker: breaker,
		timeout: opts.Timeout,
		logger:  logger,
	}, nil
}

func (r *Resilient) Translate(ctx context.Context, text, source, target string) Result {
	key := cacheKey{text: text, source: source, target: target}
	if cached, ok := r.cache.Get(key); ok {
		metrics.TranslationRequests.WithLabelValues("cache_hit").Inc()
		return Success(cached)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			metrics.TranslationRequests.WithLabelValues("rate_limited").Inc()
			return Failure(fmt.Errorf("rate limited: %w", err))
		}
	}

	translated, err := r.breaker.Execute(func() (string, error) {
		result := r.next.Translate(ctx, text, source, target)
		if result.Err != nil {
			return "", result.Err
		}
		if !result.OK() {
			return "", ErrEmptyText
		}
		return result.Text, nil
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.TranslationRequests.WithLabelValues(outcome).Inc()
		r.logger.Debug("translation failed",
			zap.String("target", target),
			zap.String("outcome", outcome),
			zap.Error(err))
		return Failure(err)
	}

	metrics.TranslationRequests.WithLabelValues("ok").Inc()
	r.cache.Add(key, translated)
	return Success(translated)
}

func (r *Resilient) State() gobreaker.State {
	return r.breaker.State()
}
