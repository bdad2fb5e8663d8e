package feature

import (
	"testing"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	cv "github.com/smartystreets/goconvey/convey"
)

func penguins(t *testing.T) *table.Table {
	tb, err := table.New(
		table.NewFloatColumn("bill_length_mm", []float64{39.1, 46.5, 50.0, 38.6}),
		table.NewIntColumn("body_mass_g", []int{3750, 4500, 5700, 3800}),
		table.NewCategoricalColumn("island", []string{"Torgersen", "Dream", "Biscoe", "Torgersen"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestResolve(t *testing.T) {
	cv.Convey("Given a table", t, func() {
		tb := penguins(t)
		cv.Convey("Resolve keeps the requested order and kinds", func() {
			fs, err := Resolve(tb, []string{"island", "bill_length_mm"})
			cv.So(err, cv.ShouldBeNil)
			cv.So(fs, cv.ShouldResemble, []Feature{{"island", table.Categorical}, {"bill_length_mm", table.Float}})
		})
		cv.Convey("Resolve fails on missing columns", func() {
			_, err := Resolve(tb, []string{"flipper_length_mm"})
			cv.So(err, cv.ShouldNotBeNil)
		})
		cv.Convey("Columns accepts Int columns for Float features", func() {
			cols, err := Columns(tb, []Feature{{"body_mass_g", table.Float}})
			cv.So(err, cv.ShouldBeNil)
			cv.So(cols[0].Name(), cv.ShouldEqual, "body_mass_g")
		})
		cv.Convey("Columns rejects kind mismatches", func() {
			_, err := Columns(tb, []Feature{{"island", table.Float}})
			cv.So(err, cv.ShouldNotBeNil)
		})
	})
}

func TestCriterion(t *testing.T) {
	cv.Convey("Given a table", t, func() {
		tb := penguins(t)
		bill, _ := tb.Column("bill_length_mm")
		mass, _ := tb.Column("body_mass_g")
		island, _ := tb.Column("island")
		cv.Convey("a threshold criterion is satisfied by values up to the threshold", func() {
			c := NewThresholdCriterion("bill_length_mm", 46.5)
			ok, err := c.SatisfiedBy(bill, 1)
			cv.So(err, cv.ShouldBeNil)
			cv.So(ok, cv.ShouldBeTrue)
			ok, _ = c.SatisfiedBy(bill, 2)
			cv.So(ok, cv.ShouldBeFalse)
			cv.So(c.String(), cv.ShouldEqual, "bill_length_mm <= 46.500000")
		})
		cv.Convey("a threshold criterion works on int columns", func() {
			left, right, err := NewThresholdCriterion("body_mass_g", 4000).Partition(mass, []int{0, 1, 2, 3})
			cv.So(err, cv.ShouldBeNil)
			cv.So(left, cv.ShouldResemble, []int{0, 3})
			cv.So(right, cv.ShouldResemble, []int{1, 2})
		})
		cv.Convey("an equality criterion splits one category from the rest", func() {
			c := NewEqualsCriterion("island", "Torgersen")
			left, right, err := c.Partition(island, []int{3, 2, 1, 0})
			cv.So(err, cv.ShouldBeNil)
			cv.So(left, cv.ShouldResemble, []int{3, 0})
			cv.So(right, cv.ShouldResemble, []int{2, 1})
			cv.So(c.String(), cv.ShouldEqual, "island is Torgersen")
		})
		cv.Convey("criteria fail on columns of the wrong kind", func() {
			_, err := NewThresholdCriterion("island", 1).SatisfiedBy(island, 0)
			cv.So(err, cv.ShouldNotBeNil)
			_, _, err = NewEqualsCriterion("bill_length_mm", "x").Partition(bill, []int{0})
			cv.So(err, cv.ShouldNotBeNil)
		})
		cv.Convey("criteria fail on rows out of range", func() {
			_, err := NewThresholdCriterion("bill_length_mm", 1).SatisfiedBy(bill, 4)
			cv.So(err, cv.ShouldEqual, table.ErrOutOfRange)
		})
	})
}
