package training

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"croprec/ml"
)

// QualityRule inspects one dataset row. Rules may keep state across rows and
// are not safe for concurrent use.
type QualityRule interface {
	Name() string
	Check(features []float64, label string) (severity string, err error)
}

// QualityIssue is a suspicious row found before training.
type QualityIssue struct {
	Line     int    `json:"line"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"` // low, high
	Message  string `json:"message"`
}

type QualityReport struct {
	Checked int            `json:"checked"`
	Flagged int            `json:"flagged"`
	ByRule  map[string]int `json:"by_rule"`
	Issues  []QualityIssue `json:"issues"`
}

// Audit runs rules over every row. Issues are reported, never fatal.
func Audit(dataset *ml.Dataset, rules ...QualityRule) QualityReport {
	if len(rules) == 0 {
		rules = DefaultQualityRules(dataset.FeatureNames)
	}
	report := QualityReport{Checked: dataset.Len(), ByRule: make(map[string]int)}
	for i, row := range dataset.X {
		flagged := false
		for _, rule := range rules {
			severity, err := rule.Check(row, dataset.Y[i])
			if err == nil {
				continue
			}
			flagged = true
			report.ByRule[rule.Name()]++
			report.Issues = append(report.Issues, QualityIssue{
				Line:     i + 2,
				Rule:     rule.Name(),
				Severity: severity,
				Message:  err.Error(),
			})
		}
		if flagged {
			report.Flagged++
		}
	}
	return report
}

func DefaultQualityRules(features []string) []QualityRule {
	return []QualityRule{
		NewRangeRule(features, map[string][2]float64{
			"N":           {0, math.Inf(1)},
			"P":           {0, math.Inf(1)},
			"K":           {0, math.Inf(1)},
			"temperature": {-30, 60},
			"humidity":    {0, 100},
			"ph":          {0, 14},
			"rainfall":    {0, math.Inf(1)},
		}),
		NewDuplicateRule(),
	}
}

// RangeRule flags values outside physically plausible bounds.
type RangeRule struct {
	features []string
	bounds   map[string][2]float64
}

func NewRangeRule(features []string, bounds map[string][2]float64) *RangeRule {
	return &RangeRule{features: features, bounds: bounds}
}

func (r *RangeRule) Name() string {
	return "range"
}

func (r *RangeRule) Check(features []float64, _ string) (string, error) {
	var bad []string
	for i, name := range r.features {
		b, ok := r.bounds[name]
		if !ok || i >= len(features) {
			continue
		}
		if v := features[i]; v < b[0] || v > b[1] {
			bad = append(bad, fmt.Sprintf("%s=%s", name, strconv.FormatFloat(v, 'g', -1, 64)))
		}
	}
	if len(bad) == 0 {
		return "", nil
	}
	return "high", fmt.Errorf("out of range: %s", strings.Join(bad, ", "))
}

// DuplicateRule flags repeated feature vectors. A repeat with a different label
// is a conflict and ranks higher than a plain duplicate.
type DuplicateRule struct {
	seen map[string]string
}

func NewDuplicateRule() *DuplicateRule {
	return &DuplicateRule{seen: make(map[string]string)}
}

func (r *DuplicateRule) Name() string {
	return "duplicate"
}

func (r *DuplicateRule) Check(features []float64, label string) (string, error) {
	parts := make([]string, len(features))
	for i, v := range features {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	key := strings.Join(parts, ",")

	prev, exists := r.seen[key]
	if !exists {
		r.seen[key] = label
		return "", nil
	}
	if prev != label {
		return "high", fmt.Errorf("same features labelled %s and %s", prev, label)
	}
	return "low", fmt.Errorf("duplicate %s row", label)
}
