package feature

import (
	"fmt"

	"github.com/dineshmanideep/Parallel-random-forest/table"
)

// CriterionKind tells how a Criterion compares the values of its feature.
type CriterionKind int

const (
	// Threshold criteria are satisfied by numeric values lower than or
	// equal to a threshold.
	Threshold CriterionKind = iota
	// Equals criteria are satisfied by categorical values equal to a given
	// category.
	Equals
)

/*
Criterion represents a binary constraint on a feature. Rows that satisfy it
are sent to the left subtree of a node, the rest to its right subtree.
*/
type Criterion struct {
	Feature   string
	Kind      CriterionKind
	Threshold float64
	Value     string
}

/*
NewThresholdCriterion returns a Criterion satisfied by values of the given
numeric feature lower than or equal to the given threshold.
*/
func NewThresholdCriterion(feature string, threshold float64) *Criterion {
	return &Criterion{Feature: feature, Kind: Threshold, Threshold: threshold}
}

/*
NewEqualsCriterion returns a Criterion satisfied by values of the given
categorical feature equal to the given value.
*/
func NewEqualsCriterion(feature string, value string) *Criterion {
	return &Criterion{Feature: feature, Kind: Equals, Value: value}
}

/*
SatisfiedBy takes the column for the feature of the criterion and a row and
returns whether the value at the row satisfies the criterion. An error is
returned if the column is not of a kind the criterion can be applied to or
the row is out of range.
*/
func (c *Criterion) SatisfiedBy(col table.Column, row int) (bool, error) {
	if row < 0 || row >= col.Len() {
		return false, table.ErrOutOfRange
	}
	switch c.Kind {
	case Threshold:
		nc, ok := col.(table.NumericColumn)
		if !ok {
			return false, fmt.Errorf("threshold criterion on %v column %q", col.Kind(), col.Name())
		}
		return nc.Float64At(row) <= c.Threshold, nil
	case Equals:
		cc, ok := col.(*table.CategoricalColumn)
		if !ok {
			return false, fmt.Errorf("equality criterion on %v column %q", col.Kind(), col.Name())
		}
		return cc.Strings()[row] == c.Value, nil
	}
	return false, fmt.Errorf("unknown criterion kind %d", c.Kind)
}

/*
Partition takes the column for the feature of the criterion and a list of
rows and returns the rows satisfying the criterion and the rows that do not,
both in their original order.
*/
func (c *Criterion) Partition(col table.Column, rows []int) (left, right []int, err error) {
	left = make([]int, 0, len(rows))
	right = make([]int, 0, len(rows))
	switch c.Kind {
	case Threshold:
		nc, ok := col.(table.NumericColumn)
		if !ok {
			return nil, nil, fmt.Errorf("threshold criterion on %v column %q", col.Kind(), col.Name())
		}
		for _, r := range rows {
			if nc.Float64At(r) <= c.Threshold {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
	case Equals:
		cc, ok := col.(*table.CategoricalColumn)
		if !ok {
			return nil, nil, fmt.Errorf("equality criterion on %v column %q", col.Kind(), col.Name())
		}
		values := cc.Strings()
		for _, r := range rows {
			if values[r] == c.Value {
				left = append(left, r)
			} else {
				right = append(right, r)
			}
		}
	default:
		return nil, nil, fmt.Errorf("unknown criterion kind %d", c.Kind)
	}
	return left, right, nil
}

func (c *Criterion) String() string {
	if c.Kind == Equals {
		return fmt.Sprintf("%s is %s", c.Feature, c.Value)
	}
	return fmt.Sprintf("%s <= %f", c.Feature, c.Threshold)
}
