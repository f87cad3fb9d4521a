package ml

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

const ModelTypeRandomForest = "random_forest"

type ForestParams struct {
	Trees       int   `json:"n_estimators" yaml:"trees"`
	MaxDepth    int   `json:"max_depth" yaml:"max_depth"`
	Seed        int64 `json:"seed" yaml:"seed"`
	MaxFeatures int   `json:"max_features" yaml:"max_features"`
	Workers     int   `json:"-" yaml:"workers"`
}

func DefaultForestParams() ForestParams {
	return ForestParams{
		Trees:    100,
		MaxDepth: 10,
		Seed:     42,
	}
}

type RandomForest struct {
	Type        string          `json:"type"`
	Params      ForestParams    `json:"params"`
	Features    []string        `json:"feature_names"`
	Labels      []string        `json:"classes"`
	Trees       []*DecisionTree `json:"trees"`
	Importances []float64       `json:"feature_importances"`
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

func NewRandomForest(params ForestParams) *RandomForest {
	defaults := DefaultForestParams()
	if params.Trees <= 0 {
		params.Trees = defaults.Trees
	}
	if params.MaxDepth <= 0 {
		params.MaxDepth = defaults.MaxDepth
	}
	return &RandomForest{Type: ModelTypeRandomForest, Params: params}
}

// Fit trains Params.Trees bootstrapped trees. Per-tree seeds are drawn from
// Params.Seed before any tree is built, so the fitted forest does not depend on
// how many workers run.
func (rf *RandomForest) Fit(ctx context.Context, dataset *Dataset) error {
	if err := dataset.Validate(); err != nil {
		return err
	}

	classes := dataset.Classes()
	classIdx := make(map[string]int, len(classes))
	for i, class := range classes {
		classIdx[class] = i
	}
	labels := make([]int, dataset.Len())
	for i, label := range dataset.Y {
		labels[i] = classIdx[label]
	}

	numFeatures := len(dataset.FeatureNames)
	maxFeatures := rf.Params.MaxFeatures
	if maxFeatures <= 0 || maxFeatures > numFeatures {
		maxFeatures = max(1, int(math.Sqrt(float64(numFeatures))))
	}
	treeParams := TreeParams{MaxDepth: rf.Params.MaxDepth, MaxFeatures: maxFeatures, MinSamplesSplit: 2}

	master := rand.New(rand.NewSource(rf.Params.Seed))
	seeds := make([]int64, rf.Params.Trees)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	workers := rf.Params.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	trees := make([]*DecisionTree, rf.Params.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rnd := rand.New(rand.NewSource(seeds[i]))
			x, y := bootstrap(dataset.X, labels, rnd)
			tree := &DecisionTree{}
			if err := tree.Train(x, y, len(classes), treeParams, rnd); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	importances := make([]float64, numFeatures)
	for _, tree := range trees {
		for i, v := range tree.FeatureImportances() {
			importances[i] += v
		}
	}
	var total float64
	for _, v := range importances {
		total += v
	}
	if total > 0 {
		for i := range importances {
			importances[i] /= total
		}
	}

	rf.Type = ModelTypeRandomForest
	rf.Features = append([]string(nil), dataset.FeatureNames...)
	rf.Labels = classes
	rf.Trees = trees
	rf.Importances = importances
	return nil
}

// Predict returns the class with the most tree votes. Ties go to the larger summed
// leaf probability, then to the class that sorts first.
func (rf *RandomForest) Predict(features []float64) (string, error) {
	votes, proba, err := rf.vote(features)
	if err != nil {
		return "", err
	}
	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] || (votes[c] == votes[best] && proba[c] > proba[best]) {
			best = c
		}
	}
	return rf.Labels[best], nil
}

func (rf *RandomForest) PredictProba(features []float64) (map[string]float64, error) {
	_, proba, err := rf.vote(features)
	if err != nil {
		return nil, err
	}
	result := make(map[string]float64, len(proba))
	for c, p := range proba {
		result[rf.Labels[c]] = p / float64(len(rf.Trees))
	}
	return result, nil
}

func (rf *RandomForest) Classes() []string {
	return append([]string(nil), rf.Labels...)
}

func (rf *RandomForest) FeatureNames() []string {
	return append([]string(nil), rf.Features...)
}

// FeatureImportances returns mean decrease in impurity per feature, largest first.
func (rf *RandomForest) FeatureImportances() []FeatureImportance {
	result := make([]FeatureImportance, len(rf.Features))
	for i, name := range rf.Features {
		var importance float64
		if i < len(rf.Importances) {
			importance = rf.Importances[i]
		}
		result[i] = FeatureImportance{Feature: name, Importance: importance}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Importance > result[j].Importance
	})
	return result
}

func (rf *RandomForest) validate() error {
	if len(rf.Trees) == 0 {
		return errors.New("model not trained")
	}
	if len(rf.Labels) == 0 {
		return errors.New("model has no classes")
	}
	for i, tree := range rf.Trees {
		if tree == nil || len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", i)
		}
		if tree.NumFeatures != len(rf.Features) {
			return fmt.Errorf("tree %d expects %d features, model has %d", i, tree.NumFeatures, len(rf.Features))
		}
		if tree.NumClasses != len(rf.Labels) {
			return fmt.Errorf("tree %d expects %d classes, model has %d", i, tree.NumClasses, len(rf.Labels))
		}
		for j, node := range tree.Nodes {
			if node.IsLeaf {
				if node.ClassLabel < 0 || node.ClassLabel >= len(rf.Labels) {
					return fmt.Errorf("tree %d node %d: class out of range", i, j)
				}
				if len(node.Distribution) != len(rf.Labels) {
					return fmt.Errorf("tree %d node %d: distribution has %d classes, model has %d", i, j, len(node.Distribution), len(rf.Labels))
				}
				for _, p := range node.Distribution {
					if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
						return fmt.Errorf("tree %d node %d: invalid class probability %v", i, j, p)
					}
				}
				continue
			}
			if node.FeatureIdx < 0 || node.FeatureIdx >= len(rf.Features) {
				return fmt.Errorf("tree %d node %d: feature index out of range", i, j)
			}
			if math.IsNaN(node.Threshold) || math.IsInf(node.Threshold, 0) {
				return fmt.Errorf("tree %d node %d: non-finite threshold", i, j)
			}
			if node.LeftChild <= j || node.RightChild <= j || node.LeftChild >= len(tree.Nodes) || node.RightChild >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: invalid children", i, j)
			}
		}
	}
	return nil
}

func (rf *RandomForest) vote(features []float64) ([]int, []float64, error) {
	if len(rf.Trees) == 0 {
		return nil, nil, errors.New("model not trained")
	}
	if len(features) != len(rf.Features) {
		return nil, nil, fmt.Errorf("expected %d features, got %d", len(rf.Features), len(features))
	}
	votes := make([]int, len(rf.Labels))
	proba := make([]float64, len(rf.Labels))
	for _, tree := range rf.Trees {
		label, dist, err := tree.Predict(features)
		if err != nil {
			return nil, nil, err
		}
		votes[label]++
		for c, p := range dist {
			proba[c] += p
		}
	}
	return votes, proba, nil
}

func bootstrap(features [][]float64, labels []int, rnd *rand.Rand) ([][]float64, []int) {
	n := len(features)
	x := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		idx := rnd.Intn(n)
		x[i] = features[idx]
		y[i] = labels[idx]
	}
	return x, y
}
