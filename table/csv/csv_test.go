package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	cv "github.com/smartystreets/goconvey/convey"
)

const penguins = `species,island,bill_length_mm,body_mass_g
Adelie,Torgersen,39.1,3750
Adelie,Torgersen,,3800
Gentoo,Biscoe,46.1
Chinstrap, Dream ,46.5,
`

func TestReadTable(t *testing.T) {
	cv.Convey("Given a CSV document", t, func() {
		tb, err := ReadTable(strings.NewReader(penguins))
		cv.So(err, cv.ShouldBeNil)
		cv.Convey("rows of the wrong width are skipped", func() {
			cv.So(tb.RowCount(), cv.ShouldEqual, 3)
		})
		cv.Convey("column kinds are inferred", func() {
			cv.So(tb.ColumnNames(), cv.ShouldResemble, []string{"species", "island", "bill_length_mm", "body_mass_g"})
			c, _ := tb.Column("island")
			cv.So(c.Kind(), cv.ShouldEqual, table.Categorical)
			cv.So(c.(*table.CategoricalColumn).Strings(), cv.ShouldResemble, []string{"Torgersen", "Torgersen", "Dream"})
			c, _ = tb.Column("bill_length_mm")
			cv.So(c.(*table.FloatColumn).Floats(), cv.ShouldResemble, []float64{39.1, 0, 46.5})
			c, _ = tb.Column("body_mass_g")
			cv.So(c.(*table.IntColumn).Ints(), cv.ShouldResemble, []int{3750, 3800, 0})
		})
	})
	cv.Convey("An empty document has no header", t, func() {
		_, err := ReadTable(strings.NewReader(""))
		cv.So(err, cv.ShouldNotBeNil)
	})
}

func TestWriteTable(t *testing.T) {
	cv.Convey("Given a table", t, func() {
		tb, _ := table.New(
			table.NewCategoricalColumn("species", []string{"Adelie", "Gentoo"}),
			table.NewFloatColumn("bill_length_mm", []float64{39.1, 46.25}),
			table.NewIntColumn("body_mass_g", []int{3750, 5000}),
		)
		buf := &bytes.Buffer{}
		cv.So(WriteTable(buf, tb), cv.ShouldBeNil)
		cv.Convey("reading it back gives the same table", func() {
			back, err := ReadTable(buf)
			cv.So(err, cv.ShouldBeNil)
			cv.So(back.ColumnNames(), cv.ShouldResemble, tb.ColumnNames())
			c, _ := back.Column("bill_length_mm")
			cv.So(c.(*table.FloatColumn).Floats(), cv.ShouldResemble, []float64{39.1, 46.25})
			c, _ = back.Column("body_mass_g")
			cv.So(c.(*table.IntColumn).Ints(), cv.ShouldResemble, []int{3750, 5000})
		})
	})
	cv.Convey("Given a table with a categorical column between numeric ones", t, func() {
		islands := []string{"Torgersen", "Biscoe", "Dream", "Biscoe"}
		tb, _ := table.New(
			table.NewFloatColumn("bill_length_mm", []float64{39.1, 46.25, 46.5, 50}),
			table.NewCategoricalColumn("island", islands),
			table.NewIntColumn("body_mass_g", []int{3750, 5000, 3500, 5200}),
			table.NewCategoricalColumn("species", []string{"Adelie", "Gentoo", "Chinstrap", "Gentoo"}),
		)
		buf := &bytes.Buffer{}
		cv.So(WriteTable(buf, tb), cv.ShouldBeNil)
		back, err := ReadTable(buf)
		cv.So(err, cv.ShouldBeNil)
		cv.Convey("every categorical value is read back", func() {
			c, _ := back.Column("island")
			cv.So(c.Kind(), cv.ShouldEqual, table.Categorical)
			cv.So(c.(*table.CategoricalColumn).Strings(), cv.ShouldResemble, islands)
			c, _ = back.Column("species")
			cv.So(c.(*table.CategoricalColumn).Strings(), cv.ShouldResemble, []string{"Adelie", "Gentoo", "Chinstrap", "Gentoo"})
			c, _ = back.Column("body_mass_g")
			cv.So(c.(*table.IntColumn).Ints(), cv.ShouldResemble, []int{3750, 5000, 3500, 5200})
		})
	})
}
