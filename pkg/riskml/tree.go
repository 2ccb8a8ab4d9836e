package riskml

import (
	"sort"
)

// treeNode is one node of a fitted decision tree. Leaves carry the class
// sample counts observed during training; internal nodes split on a single
// feature threshold.
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Counts    []int     `json:"counts,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

// decisionTree is a CART-style classification tree using Gini impurity.
type decisionTree struct {
	Root           *treeNode `json:"root"`
	MaxDepth       int       `json:"max_depth"`
	MinSamplesLeaf int       `json:"min_samples_leaf"`
	NumClasses     int       `json:"num_classes"`
}

func (t *decisionTree) fit(x [][]float64, y []int) {
	indices := make([]int, len(x))
	for i := range indices {
		indices[i] = i
	}
	t.Root = t.build(x, y, indices, 0)
}

func (t *decisionTree) build(x [][]float64, y []int, indices []int, depth int) *treeNode {
	counts := t.classCounts(y, indices)

	if depth >= t.MaxDepth || len(indices) <= 2*t.MinSamplesLeaf || pure(counts) {
		return &treeNode{Leaf: true, Counts: counts}
	}

	feature, threshold, ok := t.bestSplit(x, y, indices)
	if !ok {
		return &treeNode{Leaf: true, Counts: counts}
	}

	var left, right []int
	for _, idx := range indices {
		if x[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) < t.MinSamplesLeaf || len(right) < t.MinSamplesLeaf {
		return &treeNode{Leaf: true, Counts: counts}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.build(x, y, left, depth+1),
		Right:     t.build(x, y, right, depth+1),
	}
}

// bestSplit scans candidate thresholds (midpoints between consecutive
// distinct feature values) for the split with the lowest weighted Gini
// impurity.
func (t *decisionTree) bestSplit(x [][]float64, y []int, indices []int) (int, float64, bool) {
	numFeatures := len(x[indices[0]])
	bestGini := gini(t.classCounts(y, indices))
	var bestFeature int
	var bestThreshold float64
	found := false

	for feature := 0; feature < numFeatures; feature++ {
		values := make([]float64, 0, len(indices))
		for _, idx := range indices {
			values = append(values, x[idx][feature])
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2

			leftCounts := make([]int, t.NumClasses)
			rightCounts := make([]int, t.NumClasses)
			leftTotal, rightTotal := 0, 0
			for _, idx := range indices {
				if x[idx][feature] <= threshold {
					leftCounts[y[idx]]++
					leftTotal++
				} else {
					rightCounts[y[idx]]++
					rightTotal++
				}
			}

			total := float64(leftTotal + rightTotal)
			weighted := float64(leftTotal)/total*gini(leftCounts) +
				float64(rightTotal)/total*gini(rightCounts)
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = feature
				bestThreshold = threshold
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

// predict walks the tree and returns the majority class at the reached
// leaf.
func (t *decisionTree) predict(x []float64) int {
	node := t.Root
	for node != nil && !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	best, bestCount := 0, -1
	for class, count := range node.Counts {
		if count > bestCount {
			best, bestCount = class, count
		}
	}
	return best
}

func (t *decisionTree) classCounts(y []int, indices []int) []int {
	counts := make([]int, t.NumClasses)
	for _, idx := range indices {
		counts[y[idx]]++
	}
	return counts
}

func gini(counts []int) float64 {
	total := 0
	for _, count := range counts {
		total += count
	}
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func pure(counts []int) bool {
	nonZero := 0
	for _, count := range counts {
		if count > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
