package forest

import (
	"fmt"
	"math"
	"sort"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/metrics"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/emirpasic/gods/maps/treemap"
)

/*
Partition represents the best binary split of a set of rows found on a
feature, and the impurity reduction it achieves to predict the target.
*/
type Partition struct {
	Criterion *feature.Criterion
	Gain      float64
	feature   int
}

/*
splitSearch holds what is shared by every split search on a tree: the class
of every row of the table and the impurity measure.
*/
type splitSearch struct {
	labels     []int
	numClasses int
	impurity   metrics.Impurity
}

/*
bestPartition searches every feature, in order, for its best split of the
given rows and returns the one with the highest gain, the first one found
among ties. It returns nil if no feature has a candidate split.
*/
func (ss *splitSearch) bestPartition(features []feature.Feature, columns []table.Column, rows []int, parentCounts []int) (*Partition, error) {
	var best *Partition
	bestGain := math.Inf(-1)
	for i, f := range features {
		var gain float64
		var criterion *feature.Criterion
		switch columns[i].Kind() {
		case table.Categorical:
			var value string
			var err error
			gain, value, err = ss.categoricalSplit(columns[i], rows, parentCounts)
			if err != nil {
				return nil, err
			}
			criterion = feature.NewEqualsCriterion(f.Name, value)
		case table.Int, table.Float:
			var threshold float64
			var err error
			gain, threshold, err = ss.numericSplit(columns[i], rows, parentCounts)
			if err != nil {
				return nil, err
			}
			criterion = feature.NewThresholdCriterion(f.Name, threshold)
		default:
			return nil, fmt.Errorf("feature %q: unsupported column kind %v", f.Name, columns[i].Kind())
		}
		if gain > bestGain {
			bestGain = gain
			best = &Partition{criterion, gain, i}
		}
	}
	if math.IsInf(bestGain, -1) {
		return nil, nil
	}
	return best, nil
}

type valueLabel struct {
	value float64
	label int
}

/*
numericSplit takes a numeric column, a set of rows and their class counts
and returns the best gain achieved by splitting the rows with a threshold,
and the threshold. Candidate thresholds are the midpoints between distinct
consecutive values, rows with values lower than or equal to it go left.
The lowest threshold wins among ties. The gain is -Inf if all rows share the
same value.
*/
func (ss *splitSearch) numericSplit(col table.Column, rows []int, parentCounts []int) (float64, float64, error) {
	nc, ok := col.(table.NumericColumn)
	if !ok {
		return 0, 0, fmt.Errorf("searching threshold on column %q: %w", col.Name(), ErrNotNumeric)
	}
	pairs := make([]valueLabel, len(rows))
	for i, r := range rows {
		pairs[i] = valueLabel{nc.Float64At(r), ss.labels[r]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})
	left := make([]int, ss.numClasses)
	right := append([]int(nil), parentCounts...)
	bestGain := math.Inf(-1)
	var bestThreshold float64
	for i := 0; i < len(pairs)-1; i++ {
		left[pairs[i].label]++
		right[pairs[i].label]--
		if pairs[i].value == pairs[i+1].value {
			continue
		}
		gain := metrics.GainFromCounts(ss.impurity, parentCounts, left, right)
		if gain > bestGain {
			bestGain = gain
			bestThreshold = midpoint(pairs[i].value, pairs[i+1].value)
		}
	}
	return bestGain, bestThreshold, nil
}

// midpoint returns the threshold between a and b, never rounding up to b.
func midpoint(a, b float64) float64 {
	m := (a + b) / 2.0
	if m >= b {
		return a
	}
	return m
}

/*
categoricalSplit takes a categorical column, a set of rows and their class
counts and returns the best gain achieved by splitting the rows holding one
value from the rest, and the value. Values are tried in lexicographic order
and the first one wins among ties. Values held by every row are skipped. The
gain is -Inf if there are fewer than two distinct values.
*/
func (ss *splitSearch) categoricalSplit(col table.Column, rows []int, parentCounts []int) (float64, string, error) {
	cc, ok := col.(*table.CategoricalColumn)
	if !ok {
		return 0, "", fmt.Errorf("searching category on %v column %q", col.Kind(), col.Name())
	}
	values := cc.Strings()
	valueCounts := treemap.NewWithStringComparator()
	for _, r := range rows {
		var counts []int
		if c, found := valueCounts.Get(values[r]); found {
			counts = c.([]int)
		} else {
			counts = make([]int, ss.numClasses)
			valueCounts.Put(values[r], counts)
		}
		counts[ss.labels[r]]++
	}
	bestGain := math.Inf(-1)
	var bestValue string
	right := make([]int, ss.numClasses)
	it := valueCounts.Iterator()
	for it.Next() {
		left := it.Value().([]int)
		var nLeft int
		for c := range left {
			right[c] = parentCounts[c] - left[c]
			nLeft += left[c]
		}
		if nLeft == 0 || nLeft == len(rows) {
			continue
		}
		gain := metrics.GainFromCounts(ss.impurity, parentCounts, left, right)
		if gain > bestGain {
			bestGain = gain
			bestValue = it.Key().(string)
		}
	}
	return bestGain, bestValue, nil
}
