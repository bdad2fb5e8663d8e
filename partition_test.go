package forest

import (
	"errors"
	"math"
	"testing"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/metrics"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	cv "github.com/smartystreets/goconvey/convey"
)

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestNumericSplit(t *testing.T) {
	cv.Convey("Given a numeric column", t, func() {
		cv.Convey("the threshold is the midpoint between distinct values", func() {
			ss := &splitSearch{[]int{1, 0, 1, 0}, 2, metrics.GiniFromCounts}
			col := table.NewIntColumn("x", []int{2, 1, 2, 1})
			gain, threshold, err := ss.numericSplit(col, allRows(4), []int{2, 2})
			cv.So(err, cv.ShouldBeNil)
			cv.So(threshold, cv.ShouldEqual, 1.5)
			cv.So(gain, cv.ShouldAlmostEqual, 0.5)
		})
		cv.Convey("the lowest threshold wins among ties", func() {
			ss := &splitSearch{[]int{0, 1, 0}, 2, metrics.GiniFromCounts}
			col := table.NewFloatColumn("x", []float64{1, 2, 3})
			_, threshold, err := ss.numericSplit(col, allRows(3), []int{2, 1})
			cv.So(err, cv.ShouldBeNil)
			cv.So(threshold, cv.ShouldEqual, 1.5)
		})
		cv.Convey("gains match the label based gain of the same split", func() {
			labels := []int{0, 1, 2, 1, 0, 2, 2}
			values := []float64{3.5, 1, 2, 2, 7, 5, 1}
			ss := &splitSearch{labels, 3, metrics.EntropyFromCounts}
			gain, threshold, err := ss.numericSplit(table.NewFloatColumn("x", values), allRows(7), metrics.ClassCounts(labels, 3))
			cv.So(err, cv.ShouldBeNil)
			var left, right []int
			for i, v := range values {
				if v <= threshold {
					left = append(left, labels[i])
				} else {
					right = append(right, labels[i])
				}
			}
			cv.So(gain, cv.ShouldEqual, metrics.EntropyGain(labels, left, right, 3))
		})
		cv.Convey("the threshold between adjacent doubles separates them", func() {
			a := math.Nextafter(1, 2)
			b := math.Nextafter(a, 2)
			ss := &splitSearch{[]int{0, 0, 1, 1}, 2, metrics.GiniFromCounts}
			col := table.NewFloatColumn("x", []float64{a, a, b, b})
			_, threshold, err := ss.numericSplit(col, allRows(4), []int{2, 2})
			cv.So(err, cv.ShouldBeNil)
			cv.So(threshold, cv.ShouldBeGreaterThanOrEqualTo, a)
			cv.So(threshold, cv.ShouldBeLessThan, b)
			left, right, err := feature.NewThresholdCriterion("x", threshold).Partition(col, allRows(4))
			cv.So(err, cv.ShouldBeNil)
			cv.So(left, cv.ShouldResemble, []int{0, 1})
			cv.So(right, cv.ShouldResemble, []int{2, 3})
		})
		cv.Convey("a constant column has no candidate", func() {
			ss := &splitSearch{[]int{0, 1}, 2, metrics.GiniFromCounts}
			gain, _, err := ss.numericSplit(table.NewIntColumn("x", []int{4, 4}), allRows(2), []int{1, 1})
			cv.So(err, cv.ShouldBeNil)
			cv.So(math.IsInf(gain, -1), cv.ShouldBeTrue)
		})
		cv.Convey("a categorical column is rejected", func() {
			ss := &splitSearch{[]int{0}, 1, metrics.GiniFromCounts}
			_, _, err := ss.numericSplit(table.NewCategoricalColumn("x", []string{"a"}), allRows(1), []int{1})
			cv.So(errors.Is(err, ErrNotNumeric), cv.ShouldBeTrue)
		})
	})
}

func TestCategoricalSplit(t *testing.T) {
	cv.Convey("Given a categorical column", t, func() {
		cv.Convey("the value that isolates a class is chosen", func() {
			ss := &splitSearch{[]int{0, 1, 1, 2}, 3, metrics.GiniFromCounts}
			col := table.NewCategoricalColumn("island", []string{"Torgersen", "Dream", "Dream", "Biscoe"})
			gain, value, err := ss.categoricalSplit(col, allRows(4), []int{1, 2, 1})
			cv.So(err, cv.ShouldBeNil)
			cv.So(value, cv.ShouldEqual, "Dream")
			cv.So(gain, cv.ShouldAlmostEqual, metrics.GiniGain([]int{0, 1, 1, 2}, []int{1, 1}, []int{0, 2}, 3))
		})
		cv.Convey("values are tried in lexicographic order", func() {
			ss := &splitSearch{[]int{0, 1}, 2, metrics.GiniFromCounts}
			col := table.NewCategoricalColumn("c", []string{"b", "a"})
			_, value, err := ss.categoricalSplit(col, allRows(2), []int{1, 1})
			cv.So(err, cv.ShouldBeNil)
			cv.So(value, cv.ShouldEqual, "a")
		})
		cv.Convey("a single value has no candidate", func() {
			ss := &splitSearch{[]int{0, 1}, 2, metrics.GiniFromCounts}
			gain, _, err := ss.categoricalSplit(table.NewCategoricalColumn("c", []string{"a", "a"}), allRows(2), []int{1, 1})
			cv.So(err, cv.ShouldBeNil)
			cv.So(math.IsInf(gain, -1), cv.ShouldBeTrue)
		})
	})
}

func TestBestPartition(t *testing.T) {
	cv.Convey("Given two features separating the classes equally well", t, func() {
		ss := &splitSearch{[]int{0, 0, 1, 1}, 2, metrics.GiniFromCounts}
		features := []feature.Feature{{Name: "a", Kind: table.Int}, {Name: "b", Kind: table.Categorical}}
		columns := []table.Column{
			table.NewIntColumn("a", []int{1, 1, 2, 2}),
			table.NewCategoricalColumn("b", []string{"x", "x", "y", "y"}),
		}
		cv.Convey("the first feature wins", func() {
			p, err := ss.bestPartition(features, columns, allRows(4), []int{2, 2})
			cv.So(err, cv.ShouldBeNil)
			cv.So(p.Criterion, cv.ShouldResemble, feature.NewThresholdCriterion("a", 1.5))
			cv.So(p.Gain, cv.ShouldAlmostEqual, 0.5)
		})
		cv.Convey("without candidates no partition is returned", func() {
			p, err := ss.bestPartition(features[:1], []table.Column{table.NewIntColumn("a", []int{1, 1, 1, 1})}, allRows(4), []int{2, 2})
			cv.So(err, cv.ShouldBeNil)
			cv.So(p, cv.ShouldBeNil)
		})
	})
}
