package ml

type Classifier interface {
	Predict(features []float64) (string, error)
	PredictProba(features []float64) (map[string]float64, error)
	Classes() []string
	FeatureNames() []string
}

var _ Classifier = (*RandomForest)(nil)
