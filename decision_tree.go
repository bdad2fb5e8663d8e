package forest

import (
	"fmt"
	"strconv"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/progress"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
)

/*
trainingData holds the read-only view of a table a model is fit over: the
feature columns, the class of every row and the label of every class.
*/
type trainingData struct {
	features   []feature.Feature
	columns    []table.Column
	target     string
	targetKind table.Kind
	labels     []int
	numClasses int
	classes    []string
	rows       int
}

/*
newTrainingData takes a table, the names of the feature columns and the
name of the target column and prepares them for fitting. Categorical targets
have as many classes as distinct values, integer targets as their maximum
value plus one.
*/
func newTrainingData(t *table.Table, featureNames []string, target string) (*trainingData, error) {
	if t.RowCount() == 0 {
		return nil, ErrEmptyTable
	}
	tc, ok := t.Column(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingTarget, target)
	}
	for _, n := range featureNames {
		if n == target {
			return nil, fmt.Errorf("target %q cannot be used as a feature", target)
		}
	}
	features, err := feature.Resolve(t, featureNames)
	if err != nil {
		return nil, err
	}
	columns, err := feature.Columns(t, features)
	if err != nil {
		return nil, err
	}
	data := &trainingData{
		features:   features,
		columns:    columns,
		target:     target,
		targetKind: tc.Kind(),
		rows:       t.RowCount(),
	}
	switch c := tc.(type) {
	case *table.CategoricalColumn:
		data.labels = c.Codes()
		data.classes = c.Categories()
		data.numClasses = c.DistinctCount()
	case *table.IntColumn:
		data.labels = c.Ints()
		maxLabel := 0
		for row, v := range data.labels {
			if v < 0 {
				return nil, fmt.Errorf("%w: %q has %d at row %d", ErrUnsupportedTarget, target, v, row)
			}
			if v > maxLabel {
				maxLabel = v
			}
		}
		data.numClasses = maxLabel + 1
		data.classes = make([]string, data.numClasses)
		for i := range data.classes {
			data.classes[i] = strconv.Itoa(i)
		}
	default:
		return nil, fmt.Errorf("%w: %q is %v", ErrUnsupportedTarget, target, tc.Kind())
	}
	return data, nil
}

/*
DecisionTree is a classification tree that can be fit over a table and then
used to predict the class of rows of other tables with the same features.
*/
type DecisionTree struct {
	hp    Hyperparameters
	gc    GrowingConfig
	model *tree.Tree
}

/*
NewDecisionTree takes the hyperparameters and the growing configuration to
fit with and returns an unfitted DecisionTree.
*/
func NewDecisionTree(hp Hyperparameters, gc GrowingConfig) *DecisionTree {
	return &DecisionTree{hp: hp, gc: gc}
}

type fitOptions struct {
	rows      []int
	sink      progress.Sink
	treeIndex int
}

// FitOption customizes a call to Fit.
type FitOption func(*fitOptions)

/*
WithIndices makes Fit use only the rows of the table with the given indices.
Indices may repeat, as they do in bootstrap samples.
*/
func WithIndices(rows []int) FitOption {
	return func(o *fitOptions) {
		o.rows = rows
	}
}

// WithProgress makes Fit report to the given sink as the tree with the
// given index.
func WithProgress(sink progress.Sink, treeIndex int) FitOption {
	return func(o *fitOptions) {
		o.sink = sink
		o.treeIndex = treeIndex
	}
}

/*
Fit takes a table, the names of the feature columns to split on, in the
order they are tried, and the name of the target column, and grows the tree
over the rows of the table. On error the tree is left unfitted.
*/
func (dt *DecisionTree) Fit(t *table.Table, features []string, target string, opts ...FitOption) error {
	dt.model = nil
	data, err := newTrainingData(t, features, target)
	if err != nil {
		return err
	}
	o := &fitOptions{sink: progress.Nop}
	for _, opt := range opts {
		opt(o)
	}
	model, err := dt.grow(data, o.rows, o.sink, o.treeIndex)
	if err != nil {
		return err
	}
	dt.model = model
	return nil
}

func (dt *DecisionTree) grow(data *trainingData, rows []int, sink progress.Sink, treeIndex int) (*tree.Tree, error) {
	if err := dt.hp.Validate(); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = make([]int, data.rows)
		for i := range rows {
			rows[i] = i
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	for _, r := range rows {
		if r < 0 || r >= data.rows {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", table.ErrOutOfRange, r, data.rows)
		}
	}
	if sink == nil {
		sink = progress.Nop
	}
	sink.TreeStarted(treeIndex, progress.EstimateTotalNodes(dt.hp.MaxDepth, dt.hp.MinExamplesPerLeaf, len(rows)))
	root, err := newPot(data, dt.hp, dt.gc, sink, treeIndex).develop(rows, 0)
	if err != nil {
		return nil, err
	}
	sink.TreeCompleted(treeIndex)
	return &tree.Tree{
		Root:       root,
		Features:   data.features,
		Target:     data.target,
		TargetKind: data.targetKind,
		Classes:    data.classes,
	}, nil
}

// Fitted returns whether the tree has been fit.
func (dt *DecisionTree) Fitted() bool {
	return dt.model != nil
}

// Model returns the fitted tree, or nil if the tree has not been fit.
func (dt *DecisionTree) Model() *tree.Tree {
	return dt.model
}

/*
Predict takes a table holding the feature columns the tree was fit with and
returns the predicted class index of each of its rows, or ErrNotFitted.
*/
func (dt *DecisionTree) Predict(t *table.Table) ([]int, error) {
	if dt.model == nil {
		return nil, ErrNotFitted
	}
	return dt.model.Predict(t)
}

/*
PredictProba takes a table holding the feature columns the tree was fit with
and returns the class probability vector of each of its rows, or
ErrNotFitted.
*/
func (dt *DecisionTree) PredictProba(t *table.Table) ([][]float64, error) {
	if dt.model == nil {
		return nil, ErrNotFitted
	}
	return dt.model.PredictProba(t)
}
