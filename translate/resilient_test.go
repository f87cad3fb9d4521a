package translate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestResilientCachesSuccess(t *testing.T) {
	var calls atomic.Int32
	next := TranslatorFunc(func(ctx context.Context, text, source, target string) Result {
		calls.Add(1)
		return Success(target + ":" + text)
	})
	r, err := NewResilient(next, Options{RatePerSecond: 0}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		result := r.Translate(context.Background(), "Summer", "en", "hi")
		if result.Text != "hi:Summer" {
			t.Fatalf("unexpected translation: %q", result.Text)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 backend call, got %d", calls.Load())
	}

	r.Translate(context.Background(), "Summer", "en", "ta")
	if calls.Load() != 2 {
		t.Fatalf("expected a miss for another language, got %d calls", calls.Load())
	}
}

func TestResilientDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int32
	next := TranslatorFunc(func(ctx context.Context, text, source, target string) Result {
		calls.Add(1)
		return Failure(errors.New("boom"))
	})
	r, _ := NewResilient(next, Options{BreakerFailures: 100}, nil)
	for i := 0; i < 3; i++ {
		if result := r.Translate(context.Background(), "Summer", "en", "hi"); result.OK() {
			t.Fatal("expected failure")
		}
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 backend calls, got %d", calls.Load())
	}
}

func TestResilientTimeout(t *testing.T) {
	next := TranslatorFunc(func(ctx context.Context, text, source, target string) Result {
		select {
		case <-ctx.Done():
			return Failure(ctx.Err())
		case <-time.After(time.Second):
			return Success("late")
		}
	})
	r, _ := NewResilient(next, Options{Timeout: 50 * time.Millisecond}, nil)

	start := time.Now()
	result := r.Translate(context.Background(), "Summer", "en", "hi")
	if result.OK() {
		t.Fatal("expected timeout failure")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("timeout not enforced, took %v", elapsed)
	}
}

func TestResilientOpensBreaker(t *testing.T) {
	var calls atomic.Int32
	next := TranslatorFunc(func(ctx context.Context, text, source, target string) Result {
		calls.Add(1)
		return Failure(errors.New("unavailable"))
	})
	r, _ := NewResilient(next, Options{BreakerFailures: 2, BreakerCooldown: time.Minute}, nil)

	for i := 0; i < 5; i++ {
		r.Translate(context.Background(), "Summer", "en", "hi")
	}
	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop calls after 2 failures, got %d", calls.Load())
	}
	if r.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %v", r.State())
	}
}

func TestResultOr(t *testing.T) {
	if got := Success("x").Or("y"); got != "x" {
		t.Fatalf("expected x, got %q", got)
	}
	if got := Success("").Or("y"); got != "y" {
		t.Fatalf("expected fallback for empty success, got %q", got)
	}
	if got := Failure(nil).Or("y"); got != "y" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := (Disabled{}).Translate(context.Background(), "a", "en", "hi").Or("a"); got != "a" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
