/*
Package forest grows classification trees and random forests over columnar
tables.

Trees can develop the two subtrees of a node concurrently, and forests can
grow their trees concurrently, each on its own bootstrap sample of the
training rows. Both kinds of parallelism are independent and produce the same
models as serial training.
*/
package forest

import (
	"fmt"

	"github.com/dineshmanideep/Parallel-random-forest/metrics"
)

// TrainingError represents an error raised while fitting or using a model.
type TrainingError string

const (
	// ErrNotFitted is returned when predicting with a model that has not
	// been fit.
	ErrNotFitted = TrainingError("model has not been fit")
	// ErrMissingTarget is returned when the target column is not in the
	// training table.
	ErrMissingTarget = TrainingError("target column not found")
	// ErrUnsupportedTarget is returned when the target column is neither
	// categorical nor integer, or holds negative integers.
	ErrUnsupportedTarget = TrainingError("target column must be categorical or hold non-negative integers")
	// ErrEmptyTable is returned when fitting over no rows.
	ErrEmptyTable = TrainingError("cannot fit over an empty set of rows")
	// ErrInvalidForestConfig is returned when fitting a forest without a
	// usable configuration.
	ErrInvalidForestConfig = TrainingError("forest configuration missing or invalid")
	// ErrNotNumeric is returned when searching a threshold split on a
	// categorical column.
	ErrNotNumeric = TrainingError("column is not numeric")
)

func (te TrainingError) Error() string {
	return string(te)
}

// Unbounded is the MaxDepth of trees that grow until other conditions stop them.
const Unbounded = -1

/*
Hyperparameters bound the growth of a tree. A node becomes a leaf when its
depth reaches MaxDepth, unless it is Unbounded, or when it holds
MinExamplesPerLeaf rows or fewer.
*/
type Hyperparameters struct {
	MaxDepth           int
	MinExamplesPerLeaf int
}

// DefaultHyperparameters returns unbounded depth and one example per leaf.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{MaxDepth: Unbounded, MinExamplesPerLeaf: 1}
}

// Validate returns an error if the hyperparameters cannot be used.
func (hp Hyperparameters) Validate() error {
	if hp.MaxDepth < Unbounded {
		return fmt.Errorf("max depth must be %d (unbounded) or non-negative, got %d", Unbounded, hp.MaxDepth)
	}
	if hp.MinExamplesPerLeaf < 0 {
		return fmt.Errorf("min examples per leaf must be non-negative, got %d", hp.MinExamplesPerLeaf)
	}
	return nil
}

// Criterion selects the impurity measure used to score splits.
type Criterion int

const (
	// Gini scores splits by Gini impurity reduction.
	Gini Criterion = iota
	// Entropy scores splits by information gain.
	Entropy
)

func (c Criterion) String() string {
	if c == Entropy {
		return "entropy"
	}
	return "gini"
}

// ParseCriterion returns the Criterion with the given name.
func ParseCriterion(s string) (Criterion, error) {
	switch s {
	case "gini":
		return Gini, nil
	case "entropy":
		return Entropy, nil
	}
	return Gini, fmt.Errorf("unknown split criterion %q", s)
}

func (c Criterion) impurity() metrics.Impurity {
	if c == Entropy {
		return metrics.EntropyFromCounts
	}
	return metrics.GiniFromCounts
}

/*
GrowingConfig holds how a tree is grown. When Parallel is set, the subtrees
of a node are developed concurrently if the node is shallower than
MaxParallelDepth and holds at least MinSamplesForParallel rows. Both must be
positive for any concurrency to happen.
*/
type GrowingConfig struct {
	Criterion             Criterion
	Parallel              bool
	MinSamplesForParallel int
	MaxParallelDepth      int
}

// DefaultGrowingConfig returns a serial Gini configuration with parallel
// cutoffs of 100 samples and depth 8.
func DefaultGrowingConfig() GrowingConfig {
	return GrowingConfig{Criterion: Gini, MinSamplesForParallel: 100, MaxParallelDepth: 8}
}

func (gc GrowingConfig) shouldParallelize(depth, samples int) bool {
	return gc.Parallel &&
		gc.MaxParallelDepth > 0 &&
		gc.MinSamplesForParallel > 0 &&
		depth < gc.MaxParallelDepth &&
		samples >= gc.MinSamplesForParallel
}

/*
ForestConfig holds how a forest is grown: the number of trees, the size of
each bootstrap sample relative to the training rows, the base seed for
sampling (tree i uses Seed+i), and whether trees are grown concurrently by
Workers goroutines (GOMAXPROCS if not positive).
*/
type ForestConfig struct {
	NumTrees             int
	BootstrapSampleRatio float64
	Seed                 int64
	Parallel             bool
	Workers              int
}

// DefaultForestConfig returns 100 trees grown in parallel on full size
// samples with seed 42.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{NumTrees: 100, BootstrapSampleRatio: 1.0, Seed: 42, Parallel: true}
}

// Validate returns an error wrapping ErrInvalidForestConfig if the
// configuration cannot be used.
func (fc ForestConfig) Validate() error {
	if fc.NumTrees < 1 {
		return fmt.Errorf("%w: number of trees must be positive, got %d", ErrInvalidForestConfig, fc.NumTrees)
	}
	if fc.BootstrapSampleRatio <= 0 {
		return fmt.Errorf("%w: bootstrap sample ratio must be positive, got %v", ErrInvalidForestConfig, fc.BootstrapSampleRatio)
	}
	return nil
}
