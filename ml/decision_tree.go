package ml

import (
	"errors"
	"math/rand"
	"sort"
)

type DecisionTree struct {
	Nodes       []TreeNode `json:"nodes"`
	NumFeatures int        `json:"num_features"`
	NumClasses  int        `json:"num_classes"`

	importances []float64
}

type TreeNode struct {
	FeatureIdx   int       `json:"feature_idx"`
	Threshold    float64   `json:"threshold"`
	LeftChild    int       `json:"left_child"`
	RightChild   int       `json:"right_child"`
	ClassLabel   int       `json:"class_label"`
	IsLeaf       bool      `json:"is_leaf"`
	Distribution []float64 `json:"distribution,omitempty"`
}

type TreeParams struct {
	MaxDepth        int
	MaxFeatures     int
	MinSamplesSplit int
}

type treeBuilder struct {
	features    [][]float64
	labels      []int
	numClasses  int
	params      TreeParams
	rnd         *rand.Rand
	importances []float64
}

type split struct {
	feature   int
	threshold float64
	decrease  float64
}

const minDecrease = 1e-12

// Train fits a CART classifier on labels in [0, numClasses). Candidate features at
// each node are drawn from rnd, so the same rnd state yields the same tree.
func (dt *DecisionTree) Train(features [][]float64, labels []int, numClasses int, params TreeParams, rnd *rand.Rand) error {
	if len(features) == 0 || len(labels) == 0 {
		return errors.New("features or labels empty")
	}
	if len(features) != len(labels) {
		return errors.New("features and labels size mismatch")
	}
	if numClasses < 1 {
		return errors.New("numClasses must be positive")
	}
	for _, label := range labels {
		if label < 0 || label >= numClasses {
			return errors.New("label out of range")
		}
	}
	if params.MaxDepth <= 0 {
		params.MaxDepth = 10
	}
	if params.MinSamplesSplit < 2 {
		params.MinSamplesSplit = 2
	}
	numFeatures := len(features[0])
	if params.MaxFeatures <= 0 || params.MaxFeatures > numFeatures {
		params.MaxFeatures = numFeatures
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}

	b := &treeBuilder{
		features:    features,
		labels:      labels,
		numClasses:  numClasses,
		params:      params,
		rnd:         rnd,
		importances: make([]float64, numFeatures),
	}

	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}

	dt.Nodes = nil
	dt.NumFeatures = numFeatures
	dt.NumClasses = numClasses
	dt.buildNode(b, indices, 0)

	var total float64
	for _, v := range b.importances {
		total += v
	}
	if total > 0 {
		for i := range b.importances {
			b.importances[i] /= total
		}
	}
	dt.importances = b.importances
	return nil
}

func (dt *DecisionTree) Predict(features []float64) (int, []float64, error) {
	if len(dt.Nodes) == 0 {
		return 0, nil, errors.New("model not trained")
	}
	if len(features) != dt.NumFeatures {
		return 0, nil, errors.New("feature count mismatch")
	}
	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, node.Distribution, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, nil, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx <= 0 || idx >= len(dt.Nodes) {
			return 0, nil, errors.New("invalid tree state")
		}
	}
}

// FeatureImportances is only populated on a tree trained in this process.
func (dt *DecisionTree) FeatureImportances() []float64 {
	return dt.importances
}

func (dt *DecisionTree) Depth() int {
	if len(dt.Nodes) == 0 {
		return 0
	}
	var walk func(idx int) int
	walk = func(idx int) int {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return 0
		}
		return 1 + max(walk(node.LeftChild), walk(node.RightChild))
	}
	return walk(0)
}

func (dt *DecisionTree) buildNode(b *treeBuilder, indices []int, depth int) int {
	counts := b.classCounts(indices)
	idx := len(dt.Nodes)
	dt.Nodes = append(dt.Nodes, TreeNode{})

	leaf := TreeNode{
		FeatureIdx:   -1,
		LeftChild:    -1,
		RightChild:   -1,
		ClassLabel:   majorityLabel(counts),
		IsLeaf:       true,
		Distribution: distribution(counts, len(indices)),
	}
	if depth >= b.params.MaxDepth || len(indices) < b.params.MinSamplesSplit || isPure(counts) {
		dt.Nodes[idx] = leaf
		return idx
	}

	best, ok := b.findBestSplit(indices, counts)
	if !ok {
		dt.Nodes[idx] = leaf
		return idx
	}

	left, right := b.partition(indices, best.feature, best.threshold)
	if len(left) == 0 || len(right) == 0 {
		dt.Nodes[idx] = leaf
		return idx
	}
	b.importances[best.feature] += float64(len(indices)) * best.decrease

	leftIdx := dt.buildNode(b, left, depth+1)
	rightIdx := dt.buildNode(b, right, depth+1)
	dt.Nodes[idx] = TreeNode{
		FeatureIdx: best.feature,
		Threshold:  best.threshold,
		LeftChild:  leftIdx,
		RightChild: rightIdx,
		ClassLabel: leaf.ClassLabel,
	}
	return idx
}

// findBestSplit scans at least MaxFeatures non-constant features in random order and
// keeps scanning past that budget until some feature yields an impurity decrease.
func (b *treeBuilder) findBestSplit(indices []int, parentCounts []int) (split, bool) {
	n := len(indices)
	parentGini := gini(parentCounts, n)
	order := b.rnd.Perm(len(b.importances))
	sorted := make([]int, n)
	left := make([]int, b.numClasses)
	right := make([]int, b.numClasses)

	best := split{feature: -1}
	tried := 0
	for _, feature := range order {
		if tried >= b.params.MaxFeatures && best.feature >= 0 {
			break
		}
		copy(sorted, indices)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.features[sorted[i]][feature] < b.features[sorted[j]][feature]
		})
		if b.features[sorted[0]][feature] == b.features[sorted[n-1]][feature] {
			continue
		}
		tried++

		clear(left)
		copy(right, parentCounts)
		for i := 0; i < n-1; i++ {
			label := b.labels[sorted[i]]
			left[label]++
			right[label]--

			value := b.features[sorted[i]][feature]
			next := b.features[sorted[i+1]][feature]
			if value == next {
				continue
			}
			nl := i + 1
			nr := n - nl
			impurity := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(n)
			decrease := parentGini - impurity
			if decrease > minDecrease && (best.feature < 0 || decrease > best.decrease+minDecrease) {
				threshold := value + (next-value)/2
				if threshold >= next {
					threshold = value
				}
				best = split{feature: feature, threshold: threshold, decrease: decrease}
			}
		}
	}
	return best, best.feature >= 0
}

func (b *treeBuilder) partition(indices []int, feature int, threshold float64) ([]int, []int) {
	left := make([]int, 0, len(indices)/2)
	right := make([]int, 0, len(indices)/2)
	for _, i := range indices {
		if b.features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func (b *treeBuilder) classCounts(indices []int) []int {
	counts := make([]int, b.numClasses)
	for _, i := range indices {
		counts[b.labels[i]]++
	}
	return counts
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	impurity := 1.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		prob := float64(count) / float64(n)
		impurity -= prob * prob
	}
	return impurity
}

func distribution(counts []int, n int) []float64 {
	dist := make([]float64, len(counts))
	if n == 0 {
		return dist
	}
	for i, count := range counts {
		dist[i] = float64(count) / float64(n)
	}
	return dist
}

// majorityLabel breaks ties towards the lower class index.
func majorityLabel(counts []int) int {
	best := 0
	for label, count := range counts {
		if count > counts[best] {
			best = label
		}
	}
	return best
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, count := range counts {
		if count > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
