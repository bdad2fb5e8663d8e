/*
Package tree provides the fitted decision tree model: its nodes, the
predictions held by its leaves and the means to walk it to classify rows of
a table.
*/
package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/table"
)

/*
Tree represents a fitted classification tree. Besides its root node it keeps
the ordered features and the target column it was fit with, the kind of the
target and the label of every class index, so that it can classify rows of
tables other than the one it was trained on.
*/
type Tree struct {
	Root       *Node
	Features   []feature.Feature
	Target     string
	TargetKind table.Kind
	Classes    []string
}

// NumClasses returns the number of classes the tree distinguishes.
func (t *Tree) NumClasses() int {
	return len(t.Classes)
}

/*
PredictRow takes the columns for the features of the tree, in the same
order, and a row, and returns the prediction of the leaf the row reaches.
ErrCannotPredictFromSample is returned if the row is routed to an absent
subtree.
*/
func (t *Tree) PredictRow(columns []table.Column, row int) (*Prediction, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("nil tree cannot predict samples")
	}
	n := t.Root
	for !n.IsLeaf() {
		col, err := t.columnFor(columns, n.Criterion.Feature)
		if err != nil {
			return nil, err
		}
		ok, err := n.Criterion.SatisfiedBy(col, row)
		if err != nil {
			return nil, fmt.Errorf("predicting row %d: %w", row, err)
		}
		if ok {
			n = n.Left
		} else {
			n = n.Right
		}
		if n == nil {
			return nil, ErrCannotPredictFromSample
		}
	}
	if n.Prediction == nil {
		return nil, ErrCannotPredictFromSample
	}
	return n.Prediction, nil
}

func (t *Tree) columnFor(columns []table.Column, name string) (table.Column, error) {
	for i, f := range t.Features {
		if f.Name == name && i < len(columns) {
			return columns[i], nil
		}
	}
	return nil, fmt.Errorf("feature %q not known by the tree", name)
}

/*
Predict takes a table holding at least the feature columns of the tree and
returns the predicted class index for each of its rows.
*/
func (t *Tree) Predict(tb *table.Table) ([]int, error) {
	columns, err := feature.Columns(tb, t.Features)
	if err != nil {
		return nil, err
	}
	result := make([]int, tb.RowCount())
	for r := range result {
		p, err := t.PredictRow(columns, r)
		if err != nil {
			return nil, err
		}
		result[r] = p.Class
	}
	return result, nil
}

/*
PredictProba takes a table holding at least the feature columns of the tree
and returns the class probability vector for each of its rows.
*/
func (t *Tree) PredictProba(tb *table.Table) ([][]float64, error) {
	columns, err := feature.Columns(tb, t.Features)
	if err != nil {
		return nil, err
	}
	result := make([][]float64, tb.RowCount())
	for r := range result {
		p, err := t.PredictRow(columns, r)
		if err != nil {
			return nil, err
		}
		result[r] = append([]float64(nil), p.Probabilities...)
	}
	return result, nil
}

/*
EncodeTarget takes a table holding the target column of the tree and returns
the class index of every row. An error is returned if a row holds a class the
tree does not know.
*/
func (t *Tree) EncodeTarget(tb *table.Table) ([]int, error) {
	c, ok := tb.Column(t.Target)
	if !ok {
		return nil, fmt.Errorf("target column %q not found", t.Target)
	}
	index := make(map[string]int, len(t.Classes))
	for i, cl := range t.Classes {
		index[cl] = i
	}
	labels := make([]int, c.Len())
	for r := range labels {
		v, err := c.ValueAt(r)
		if err != nil {
			return nil, err
		}
		i, ok := index[fmt.Sprint(v)]
		if !ok {
			return nil, fmt.Errorf("row %d: unknown class %v for target %q", r, v, t.Target)
		}
		labels[r] = i
	}
	return labels, nil
}

// ClassLabel returns the label of the class with the given index.
func (t *Tree) ClassLabel(class int) string {
	if class < 0 || class >= len(t.Classes) {
		return strconv.Itoa(class)
	}
	return t.Classes[class]
}

/*
Traverse takes a bottomup boolean and an error-returning function that takes
a node and its depth, and goes through the tree running the function with
every node. The function is called with a parent node before its children if
bottomup is false, and after them if bottomup is true. If the function
returns an error the traversing is aborted and the error is returned.
*/
func (t *Tree) Traverse(bottomup bool, f func(n *Node, depth int) error) error {
	if t.Root == nil {
		return nil
	}
	return traverse(t.Root, 0, bottomup, f)
}

func traverse(n *Node, depth int, bottomup bool, f func(*Node, int) error) error {
	if !bottomup {
		if err := f(n, depth); err != nil {
			return err
		}
	}
	for _, sn := range []*Node{n.Left, n.Right} {
		if sn == nil {
			continue
		}
		if err := traverse(sn, depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	var count int
	t.Traverse(false, func(*Node, int) error {
		count++
		return nil
	})
	return count
}

// Depth returns the depth of the deepest node in the tree, 0 for a lone root.
func (t *Tree) Depth() int {
	var max int
	t.Traverse(false, func(_ *Node, d int) error {
		if d > max {
			max = d
		}
		return nil
	})
	return max
}

func (t *Tree) String() string {
	if t.Root == nil {
		return "[empty tree]\n"
	}
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n *Node) string {
	if n.IsLeaf() {
		if n.Prediction == nil {
			return "{ no prediction }\n"
		}
		return fmt.Sprintf("{ %s: %s }\n{ %v }\n", t.Target, t.ClassLabel(n.Prediction.Class), n.Prediction)
	}
	result := fmt.Sprintf("{ %v }\n|\n", n.Criterion)
	subtrees := []*Node{n.Left, n.Right}
	for i, st := range subtrees {
		var lines []string
		if st == nil {
			lines = []string{"[none]"}
		} else {
			lines = strings.Split(t.subtreeString(st), "\n")
		}
		for j, line := range lines {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == len(subtrees)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
