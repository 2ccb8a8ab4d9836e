package riskml

import (
	"errors"
	"math/rand"
)

const (
	DefaultNumTrees = 100
	DefaultMaxDepth = 10
)

var ErrNotTrained = errors.New("model not trained")

// Forest is a random forest classifier: an ensemble of bootstrap-sampled
// decision trees whose vote fractions serve as class probabilities.
type Forest struct {
	Trees          []*decisionTree `json:"trees"`
	NumTrees       int             `json:"num_trees"`
	MaxDepth       int             `json:"max_depth"`
	MinSamplesLeaf int             `json:"min_samples_leaf"`
	NumClasses     int             `json:"num_classes"`
	NumFeatures    int             `json:"num_features"`
	Seed           int64           `json:"seed"`
}

// NewForest creates an untrained forest. Non-positive sizes fall back to
// the package defaults. The seed fixes bootstrap sampling so training is
// reproducible.
func NewForest(numTrees, maxDepth int, seed int64) *Forest {
	if numTrees <= 0 {
		numTrees = DefaultNumTrees
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Forest{
		NumTrees:       numTrees,
		MaxDepth:       maxDepth,
		MinSamplesLeaf: 1,
		Seed:           seed,
	}
}

// Train fits the forest on the feature matrix x and class labels y, where
// each label is an index in [0, numClasses).
func (f *Forest) Train(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 {
		return errors.New("empty training data")
	}
	if len(x) != len(y) {
		return errors.New("feature matrix and labels must have the same length")
	}
	if numClasses < 2 {
		return errors.New("need at least two classes")
	}

	f.NumClasses = numClasses
	f.NumFeatures = len(x[0])
	f.Trees = make([]*decisionTree, f.NumTrees)

	rng := rand.New(rand.NewSource(f.Seed))
	for i := range f.Trees {
		bootX, bootY := bootstrap(x, y, rng)
		tree := &decisionTree{
			MaxDepth:       f.MaxDepth,
			MinSamplesLeaf: f.MinSamplesLeaf,
			NumClasses:     numClasses,
		}
		tree.fit(bootX, bootY)
		f.Trees[i] = tree
	}
	return nil
}

// PredictProba returns the class probability distribution for one sample
// as the fraction of trees voting for each class. The returned slice sums
// to 1.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrNotTrained
	}
	if len(x) != f.NumFeatures {
		return nil, errors.New("feature vector has the wrong width")
	}

	votes := make([]float64, f.NumClasses)
	for _, tree := range f.Trees {
		votes[tree.predict(x)]++
	}
	for i := range votes {
		votes[i] /= float64(len(f.Trees))
	}
	return votes, nil
}

// Predict returns the winning class index and the full distribution.
func (f *Forest) Predict(x []float64) (int, []float64, error) {
	probs, err := f.PredictProba(x)
	if err != nil {
		return 0, nil, err
	}
	best := 0
	for class, p := range probs {
		if p > probs[best] {
			best = class
		}
	}
	return best, probs, nil
}

func bootstrap(x [][]float64, y []int, rng *rand.Rand) ([][]float64, []int) {
	n := len(x)
	bootX := make([][]float64, n)
	bootY := make([]int, n)
	for i := 0; i < n; i++ {
		pick := rng.Intn(n)
		bootX[i] = x[pick]
		bootY[i] = y[pick]
	}
	return bootX, bootY
}
