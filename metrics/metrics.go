// Package metrics holds the Prometheus collectors for training and serving.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "croprec_predictions_total",
		Help: "Predictions served, by crop.",
	}, []string{"crop"})

	PredictionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "croprec_predictions_rejected_total",
		Help: "Prediction requests rejected for malformed input.",
	})

	PredictionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "croprec_prediction_duration_seconds",
		Help:    "Time spent in the classifier per prediction.",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	})

	TranslationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "croprec_translation_requests_total",
		Help: "Translation attempts by outcome (ok, cache_hit, error, rejected, rate_limited).",
	}, []string{"outcome"})

	TranslationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "croprec_translation_fallbacks_total",
		Help: "Fields served in the source language because translation failed.",
	})

	TrainingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "croprec_training_runs_total",
		Help: "Training pipeline runs by result.",
	}, []string{"result"})

	TrainingAccuracy = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "croprec_training_accuracy",
		Help: "Held-out accuracy of the last successful training run.",
	})
)
