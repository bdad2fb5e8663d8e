package forest

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dineshmanideep/Parallel-random-forest/progress"
	"github.com/dineshmanideep/Parallel-random-forest/queue"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"gonum.org/v1/gonum/floats"
)

/*
Forest is a random forest: an ensemble of decision trees, each fit on its own
bootstrap sample of the training rows, that predicts by majority vote or by
averaging the class probabilities of its trees.
*/
type Forest struct {
	hp     Hyperparameters
	gc     GrowingConfig
	config ForestConfig
	trees  []*tree.Tree
}

/*
NewForest takes the hyperparameters and growing configuration every tree is
fit with and the configuration of the forest itself and returns an unfitted
Forest.
*/
func NewForest(hp Hyperparameters, gc GrowingConfig, config ForestConfig) *Forest {
	return &Forest{hp: hp, gc: gc, config: config}
}

/*
FromTrees takes previously fitted trees and returns a fitted Forest made of
them, or an error if they do not share their target and classes.
*/
func FromTrees(trees []*tree.Tree) (*Forest, error) {
	if len(trees) == 0 {
		return nil, ErrNotFitted
	}
	first := trees[0]
	for i, t := range trees[1:] {
		if t.Target != first.Target || len(t.Classes) != len(first.Classes) {
			return nil, fmt.Errorf("tree %d predicts a different target or classes than tree 0", i+1)
		}
		for c := range t.Classes {
			if t.Classes[c] != first.Classes[c] {
				return nil, fmt.Errorf("tree %d has class %q where tree 0 has %q", i+1, t.Classes[c], first.Classes[c])
			}
		}
	}
	return &Forest{config: ForestConfig{NumTrees: len(trees), Parallel: true}, trees: trees}, nil
}

/*
Fit takes a table, the names of the feature columns and the name of the
target column and fits every tree of the forest on a bootstrap sample of the
rows of the table. Samples are drawn before any tree is grown. Trees are
grown concurrently if the forest configuration says so, independently of
whether each tree develops its nodes concurrently. Every tree reports to the
given sink, which may be nil. On error the forest is left unfitted.
*/
func (f *Forest) Fit(t *table.Table, features []string, target string, sink progress.Sink) error {
	f.trees = nil
	if err := f.config.Validate(); err != nil {
		return err
	}
	data, err := newTrainingData(t, features, target)
	if err != nil {
		return err
	}
	if sink == nil {
		sink = progress.Nop
	}
	samples := bootstrapSamples(f.config.NumTrees, data.rows, f.config.BootstrapSampleRatio, f.config.Seed)
	trees := make([]*tree.Tree, f.config.NumTrees)
	err = f.forEachTree(f.config.NumTrees, func(i int) error {
		dt := NewDecisionTree(f.hp, f.gc)
		tr, err := dt.grow(data, samples[i], sink, i)
		if err != nil {
			return fmt.Errorf("growing tree %d: %w", i, err)
		}
		trees[i] = tr
		return nil
	})
	if err != nil {
		return err
	}
	f.trees = trees
	return nil
}

// Trees returns the fitted trees of the forest.
func (f *Forest) Trees() []*tree.Tree {
	return f.trees
}

// Fitted returns whether the forest has been fit.
func (f *Forest) Fitted() bool {
	return len(f.trees) > 0
}

// Classes returns the label of every class index, or nil if not fitted.
func (f *Forest) Classes() []string {
	if len(f.trees) == 0 {
		return nil
	}
	return f.trees[0].Classes
}

/*
Predict takes a table holding the feature columns the forest was fit with
and returns the class of each of its rows voted by most trees, the lowest
class index among ties.
*/
func (f *Forest) Predict(t *table.Table) ([]int, error) {
	if len(f.trees) == 0 {
		return nil, ErrNotFitted
	}
	predictions := make([][]int, len(f.trees))
	err := f.forEachTree(len(f.trees), func(i int) error {
		p, err := f.trees[i].Predict(t)
		predictions[i] = p
		return err
	})
	if err != nil {
		return nil, err
	}
	numClasses := f.trees[0].NumClasses()
	result := make([]int, t.RowCount())
	votes := make([]float64, numClasses)
	for r := range result {
		for c := range votes {
			votes[c] = 0
		}
		for _, p := range predictions {
			votes[p[r]]++
		}
		result[r] = floats.MaxIdx(votes)
	}
	return result, nil
}

/*
PredictProba takes a table holding the feature columns the forest was fit
with and returns, for each of its rows, the mean of the class probability
vectors given by every tree.
*/
func (f *Forest) PredictProba(t *table.Table) ([][]float64, error) {
	if len(f.trees) == 0 {
		return nil, ErrNotFitted
	}
	probas := make([][][]float64, len(f.trees))
	err := f.forEachTree(len(f.trees), func(i int) error {
		p, err := f.trees[i].PredictProba(t)
		probas[i] = p
		return err
	})
	if err != nil {
		return nil, err
	}
	numClasses := f.trees[0].NumClasses()
	result := make([][]float64, t.RowCount())
	for r := range result {
		result[r] = make([]float64, numClasses)
		for _, p := range probas {
			floats.Add(result[r], p[r])
		}
		floats.Scale(1/float64(len(f.trees)), result[r])
	}
	return result, nil
}

/*
forEachTree runs fn for every tree index, concurrently through a queue of
workers if the forest is configured to, and returns the first error.
*/
func (f *Forest) forEachTree(n int, fn func(i int) error) error {
	if !f.config.Parallel || n == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	workers := f.config.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	q := queue.New(context.Background(), workers)
	for i := 0; i < n; i++ {
		i := i
		q.Add(func(context.Context) error {
			return fn(i)
		})
	}
	return q.Wait()
}
