package benchmark

import (
	"context"
	"fmt"
	"time"

	forest "github.com/dineshmanideep/Parallel-random-forest"
	"github.com/dineshmanideep/Parallel-random-forest/metrics"
	"github.com/dineshmanideep/Parallel-random-forest/progress"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"golang.org/x/exp/rand"
)

// Strategy names reported in results.
const (
	Serial         = "serial"
	TreeParallel   = "tree-parallel"
	ForestParallel = "forest-parallel"
)

// Suite names reported in results.
const (
	DecisionTreeSuite = "decision-tree"
	RandomForestSuite = "random-forest"
)

/*
Suite holds the settings the benchmarks run with. Logf, if set, receives a
line per run. Progress, if set, is called with the number of trees of every
forest run and returns the sink the run reports to. Models, if set, receives
the model fitted by every run, named by ModelName.
*/
type Suite struct {
	TreeHyperparameters   forest.Hyperparameters
	ForestHyperparameters forest.Hyperparameters
	Growing               forest.GrowingConfig
	NumTrees              int
	BootstrapSampleRatio  float64
	TestRatio             float64
	Seed                  uint64
	Logf                  func(format string, a ...interface{})
	Progress              func(numTrees int) progress.Sink
	Models                tree.ModelStore
	ModelPrefix           string
}

/*
DefaultSuite returns a suite that grows single trees up to depth 100 with at
least 5 examples per leaf, and forests of 10 trees up to depth 300 with at
least 20 examples per leaf on bootstrap samples of 55% of the training rows.
A fifth of the rows are held out for evaluation.
*/
func DefaultSuite() Suite {
	return Suite{
		TreeHyperparameters:   forest.Hyperparameters{MaxDepth: 100, MinExamplesPerLeaf: 5},
		ForestHyperparameters: forest.Hyperparameters{MaxDepth: 300, MinExamplesPerLeaf: 20},
		Growing:               forest.DefaultGrowingConfig(),
		NumTrees:              10,
		BootstrapSampleRatio:  0.55,
		TestRatio:             0.2,
		Seed:                  42,
	}
}

/*
Result is the outcome of timing one strategy of a suite: the duration of
fitting and predicting, its speedup over the serial run of the same suite
and the accuracy and macro F1 score of the predictions on the held-out rows.
*/
type Result struct {
	Suite    string
	Strategy string
	Samples  int
	Duration time.Duration
	Speedup  float64
	Accuracy float64
	F1       float64
}

type model interface {
	Predict(t *table.Table) ([]int, error)
}

/*
RunDecisionTree takes a table, feature names and a target and times growing
a decision tree on its training split serially and with tree-level
parallelism.
*/
func (s Suite) RunDecisionTree(t *table.Table, features []string, target string) ([]Result, error) {
	train, test, err := table.TrainTestSplit(t, s.TestRatio, s.Seed)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, strategy := range []string{Serial, TreeParallel} {
		gc := s.Growing
		gc.Parallel = strategy == TreeParallel
		dt := forest.NewDecisionTree(s.TreeHyperparameters, gc)
		r, err := s.run(DecisionTreeSuite, strategy, train, test, func() ([]*tree.Tree, model, error) {
			if err := dt.Fit(train, features, target); err != nil {
				return nil, nil, err
			}
			return []*tree.Tree{dt.Model()}, dt, nil
		})
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return withSpeedups(results), nil
}

/*
RunRandomForest takes a table, feature names and a target and times growing
a random forest on its training split serially, with tree-level parallelism
and with forest-level parallelism.
*/
func (s Suite) RunRandomForest(t *table.Table, features []string, target string) ([]Result, error) {
	train, test, err := table.TrainTestSplit(t, s.TestRatio, s.Seed)
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, strategy := range []string{Serial, TreeParallel, ForestParallel} {
		gc := s.Growing
		gc.Parallel = strategy == TreeParallel
		config := forest.DefaultForestConfig()
		config.NumTrees = s.NumTrees
		config.BootstrapSampleRatio = s.BootstrapSampleRatio
		config.Seed = int64(s.Seed)
		config.Parallel = strategy == ForestParallel
		f := forest.NewForest(s.ForestHyperparameters, gc, config)
		var sink progress.Sink
		if s.Progress != nil {
			sink = s.Progress(s.NumTrees)
		}
		r, err := s.run(RandomForestSuite, strategy, train, test, func() ([]*tree.Tree, model, error) {
			if err := f.Fit(train, features, target, sink); err != nil {
				return nil, nil, err
			}
			return f.Trees(), f, nil
		})
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return withSpeedups(results), nil
}

/*
RunSampleSizes repeats RunDecisionTree and RunRandomForest on random subsets
of the table with each of the given row counts. Counts over the row count of
the table are capped to it.
*/
func (s Suite) RunSampleSizes(t *table.Table, features []string, target string, sizes []int) ([]Result, error) {
	perm := rand.New(rand.NewSource(s.Seed)).Perm(t.RowCount())
	var results []Result
	for _, n := range sizes {
		if n > len(perm) {
			n = len(perm)
		}
		if n <= 0 {
			return nil, fmt.Errorf("invalid sample size %d", n)
		}
		subset, err := t.Rows(perm[:n])
		if err != nil {
			return nil, err
		}
		s.logf("Running suites on %d samples...", n)
		dt, err := s.RunDecisionTree(subset, features, target)
		if err != nil {
			return nil, fmt.Errorf("%d samples: %v", n, err)
		}
		rf, err := s.RunRandomForest(subset, features, target)
		if err != nil {
			return nil, fmt.Errorf("%d samples: %v", n, err)
		}
		results = append(results, dt...)
		results = append(results, rf...)
	}
	return results, nil
}

func (s Suite) run(suite, strategy string, train, test *table.Table, fit func() ([]*tree.Tree, model, error)) (Result, error) {
	s.logf("Running %s %s on %d samples...", strategy, suite, train.RowCount())
	start := time.Now()
	trees, m, err := fit()
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %v", strategy, suite, err)
	}
	known, truth, err := knownRows(trees[0], test)
	if err != nil {
		return Result{}, err
	}
	pred, err := m.Predict(known)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: predicting: %v", strategy, suite, err)
	}
	elapsed := time.Since(start)
	r := Result{
		Suite:    suite,
		Strategy: strategy,
		Samples:  train.RowCount() + test.RowCount(),
		Duration: elapsed,
		Speedup:  1.0,
	}
	if len(truth) > 0 {
		if r.Accuracy, err = metrics.Accuracy(truth, pred); err != nil {
			return Result{}, err
		}
		if r.F1, err = metrics.F1(truth, pred); err != nil {
			return Result{}, err
		}
	}
	s.logf("%s %s took %v with accuracy %.4f", strategy, suite, elapsed, r.Accuracy)
	if s.Models != nil {
		name := s.ModelName(r)
		if err := s.Models.Store(context.Background(), name, trees); err != nil {
			return Result{}, fmt.Errorf("keeping model %s: %v", name, err)
		}
	}
	return r, nil
}

// ModelName returns the name the model fitted for a result is kept under.
func (s Suite) ModelName(r Result) string {
	name := fmt.Sprintf("%s/%s/%d", r.Suite, r.Strategy, r.Samples)
	if s.ModelPrefix != "" {
		name = s.ModelPrefix + "/" + name
	}
	return name
}

/*
knownRows returns the rows of test whose class the tree knows, and their
class indices. Rows holding classes the training split lacked cannot be
scored.
*/
func knownRows(tr *tree.Tree, test *table.Table) (*table.Table, []int, error) {
	c, ok := test.Column(tr.Target)
	if !ok {
		return nil, nil, fmt.Errorf("target column %q not found", tr.Target)
	}
	index := make(map[string]int, len(tr.Classes))
	for i, cl := range tr.Classes {
		index[cl] = i
	}
	var rows, truth []int
	for r := 0; r < c.Len(); r++ {
		v, err := c.ValueAt(r)
		if err != nil {
			return nil, nil, err
		}
		if i, ok := index[fmt.Sprint(v)]; ok {
			rows = append(rows, r)
			truth = append(truth, i)
		}
	}
	known, err := test.Rows(rows)
	if err != nil {
		return nil, nil, err
	}
	return known, truth, nil
}

func withSpeedups(results []Result) []Result {
	if len(results) == 0 {
		return results
	}
	serial := results[0].Duration
	for i := range results {
		if results[i].Duration > 0 {
			results[i].Speedup = float64(serial) / float64(results[i].Duration)
		}
	}
	return results
}

func (s Suite) logf(format string, a ...interface{}) {
	if s.Logf != nil {
		s.Logf(format, a...)
	}
}
