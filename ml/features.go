package ml

const LabelColumn = "label"

func CropFeatureNames() []string {
	return []string{
		"N",
		"P",
		"K",
		"temperature",
		"humidity",
		"ph",
		"rainfall",
	}
}

func FeatureVector(names []string, values map[string]float64) ([]float64, bool) {
	vector := make([]float64, len(names))
	for i, name := range names {
		value, ok := values[name]
		if !ok {
			return nil, false
		}
		vector[i] = value
	}
	return vector, true
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
