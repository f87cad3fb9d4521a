package ml

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

type ClassMetrics struct {
	Class     string  `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

type ClassificationReport struct {
	Accuracy    float64        `json:"accuracy"`
	Classes     []ClassMetrics `json:"classes"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Support     int            `json:"support"`
}

func Accuracy(actual, predicted []string) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return 0
	}
	var correct int
	for i := range actual {
		if actual[i] == predicted[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(actual))
}

// NewClassificationReport covers every label seen in either slice. Undefined
// ratios (no predictions or no support) count as 0.
func NewClassificationReport(actual, predicted []string) (*ClassificationReport, error) {
	if len(actual) == 0 {
		return nil, errors.New("no samples to evaluate")
	}
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf("%d actual labels, %d predictions", len(actual), len(predicted))
	}

	truePositive := make(map[string]int)
	predictedCount := make(map[string]int)
	support := make(map[string]int)
	for i := range actual {
		support[actual[i]]++
		predictedCount[predicted[i]]++
		if actual[i] == predicted[i] {
			truePositive[actual[i]]++
		}
	}

	labels := make([]string, 0, len(support))
	seen := make(map[string]bool)
	for _, set := range []map[string]int{support, predictedCount} {
		for label := range set {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	sort.Strings(labels)

	report := &ClassificationReport{
		Accuracy:    Accuracy(actual, predicted),
		Support:     len(actual),
		MacroAvg:    ClassMetrics{Class: "macro avg", Support: len(actual)},
		WeightedAvg: ClassMetrics{Class: "weighted avg", Support: len(actual)},
	}
	for _, label := range labels {
		m := ClassMetrics{Class: label, Support: support[label]}
		if predictedCount[label] > 0 {
			m.Precision = float64(truePositive[label]) / float64(predictedCount[label])
		}
		if support[label] > 0 {
			m.Recall = float64(truePositive[label]) / float64(support[label])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Classes = append(report.Classes, m)

		n := float64(len(labels))
		report.MacroAvg.Precision += m.Precision / n
		report.MacroAvg.Recall += m.Recall / n
		report.MacroAvg.F1 += m.F1 / n

		w := float64(m.Support) / float64(len(actual))
		report.WeightedAvg.Precision += m.Precision * w
		report.WeightedAvg.Recall += m.Recall * w
		report.WeightedAvg.F1 += m.F1 * w
	}
	return report, nil
}

func Evaluate(model Classifier, test *Dataset) (*ClassificationReport, []string, error) {
	predicted := make([]string, test.Len())
	for i, row := range test.X {
		label, err := model.Predict(row)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		predicted[i] = label
	}
	report, err := NewClassificationReport(test.Y, predicted)
	if err != nil {
		return nil, nil, err
	}
	return report, predicted, nil
}

func (r *ClassificationReport) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tprecision\trecall\tf1-score\tsupport\t")
	for _, m := range r.Classes {
		writeMetricsRow(tw, m)
	}
	fmt.Fprintln(tw, "\t\t\t\t\t")
	fmt.Fprintf(tw, "accuracy\t\t\t%.2f\t%d\t\n", r.Accuracy, r.Support)
	writeMetricsRow(tw, r.MacroAvg)
	writeMetricsRow(tw, r.WeightedAvg)
	return tw.Flush()
}

func writeMetricsRow(w io.Writer, m ClassMetrics) {
	fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%d\t\n", m.Class, m.Precision, m.Recall, m.F1, m.Support)
}

func WriteFeatureImportances(w io.Writer, importances []FeatureImportance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "feature\timportance")
	for _, fi := range importances {
		fmt.Fprintf(tw, "%s\t%.6f\n", fi.Feature, fi.Importance)
	}
	return tw.Flush()
}
