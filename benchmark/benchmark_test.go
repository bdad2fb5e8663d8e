package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree/badgerstore"
	treejson "github.com/dineshmanideep/Parallel-random-forest/tree/json"
	cv "github.com/smartystreets/goconvey/convey"
)

func separableTable(n int) *table.Table {
	x := make([]float64, n)
	island := make([]string, n)
	species := make([]string, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i % 50)
		island[i] = []string{"Biscoe", "Dream", "Torgersen"}[i%3]
		if x[i] < 25 {
			species[i] = "Adelie"
		} else {
			species[i] = "Gentoo"
		}
	}
	t, err := table.New(
		table.NewFloatColumn("x", x),
		table.NewCategoricalColumn("island", island),
		table.NewCategoricalColumn("species", species),
	)
	if err != nil {
		panic(err)
	}
	return t
}

func smallSuite() Suite {
	s := DefaultSuite()
	s.NumTrees = 3
	s.Growing.MinSamplesForParallel = 10
	return s
}

func TestDatasets(t *testing.T) {
	cv.Convey("Presets", t, func() {
		cv.Convey("live under the given directory", func() {
			d, ok := Preset("data", "dry_bean")
			cv.So(ok, cv.ShouldBeTrue)
			cv.So(d.Path, cv.ShouldEqual, filepath.Join("data", "Dry_Bean_Dataset.csv"))
			cv.So(d.SubsampleRatio, cv.ShouldEqual, 0.25)
			cv.So(d.Features, cv.ShouldHaveLength, 16)
		})
		cv.Convey("include the penguins with a categorical target", func() {
			d, ok := Preset("", "palmer_penguins")
			cv.So(ok, cv.ShouldBeTrue)
			cv.So(d.Target, cv.ShouldEqual, "species")
		})
		cv.Convey("do not include unknown names", func() {
			_, ok := Preset("", "iris")
			cv.So(ok, cv.ShouldBeFalse)
		})
	})
	cv.Convey("LoadDatasets", t, func() {
		cv.Convey("reads datasets from YAML", func() {
			ds, err := LoadDatasets([]byte(`datasets:
  - name: tiny
    path: tiny.csv
    target: y
    features: [a, b]
    subsample: 0.5
`))
			cv.So(err, cv.ShouldBeNil)
			cv.So(ds, cv.ShouldResemble, []Dataset{{Name: "tiny", Path: "tiny.csv", Target: "y", Features: []string{"a", "b"}, SubsampleRatio: 0.5}})
		})
		cv.Convey("rejects datasets without features", func() {
			_, err := LoadDatasets([]byte("datasets:\n  - {name: tiny, path: tiny.csv, target: y}\n"))
			cv.So(err, cv.ShouldNotBeNil)
		})
		cv.Convey("rejects an empty list", func() {
			_, err := LoadDatasets([]byte("datasets: []\n"))
			cv.So(err, cv.ShouldNotBeNil)
		})
	})
	cv.Convey("Loading a dataset subsamples it", t, func() {
		dir, err := ioutil.TempDir("", "benchmark")
		cv.So(err, cv.ShouldBeNil)
		defer os.RemoveAll(dir)
		var b strings.Builder
		b.WriteString("a,island,unused,y\n")
		for i := 0; i < 40; i++ {
			fmt.Fprintf(&b, "%d,%s,%d,%d\n", i, []string{"Biscoe", "Dream"}[i%2], i*i, i%2)
		}
		path := filepath.Join(dir, "tiny.csv")
		cv.So(ioutil.WriteFile(path, []byte(b.String()), 0644), cv.ShouldBeNil)
		d := Dataset{Name: "tiny", Path: path, Target: "y", Features: []string{"island", "a"}, SubsampleRatio: 0.25}
		tb, err := d.Load(1)
		cv.So(err, cv.ShouldBeNil)
		cv.So(tb.RowCount(), cv.ShouldEqual, 10)
		cv.So(tb.ColumnNames(), cv.ShouldResemble, []string{"island", "a", "y"})
		d.Features = []string{"weight"}
		_, err = d.Load(1)
		cv.So(err, cv.ShouldNotBeNil)
	})
}

func TestSuites(t *testing.T) {
	cv.Convey("Given a separable table", t, func() {
		tb := separableTable(300)
		features := []string{"x", "island"}
		s := smallSuite()
		cv.Convey("the decision tree suite runs serial and tree-parallel", func() {
			results, err := s.RunDecisionTree(tb, features, "species")
			cv.So(err, cv.ShouldBeNil)
			cv.So(results, cv.ShouldHaveLength, 2)
			cv.So(results[0].Strategy, cv.ShouldEqual, Serial)
			cv.So(results[0].Speedup, cv.ShouldEqual, 1.0)
			cv.So(results[1].Strategy, cv.ShouldEqual, TreeParallel)
			for _, r := range results {
				cv.So(r.Suite, cv.ShouldEqual, DecisionTreeSuite)
				cv.So(r.Samples, cv.ShouldEqual, 300)
				cv.So(r.Accuracy, cv.ShouldEqual, 1.0)
			}
		})
		cv.Convey("the random forest suite runs every strategy with the same accuracy", func() {
			results, err := s.RunRandomForest(tb, features, "species")
			cv.So(err, cv.ShouldBeNil)
			cv.So(results, cv.ShouldHaveLength, 3)
			cv.So(results[2].Strategy, cv.ShouldEqual, ForestParallel)
			cv.So(results[1].Accuracy, cv.ShouldEqual, results[0].Accuracy)
			cv.So(results[2].Accuracy, cv.ShouldEqual, results[0].Accuracy)
			cv.So(results[2].F1, cv.ShouldEqual, results[0].F1)
		})
		cv.Convey("sample sizes are capped to the table", func() {
			results, err := s.RunSampleSizes(tb, features, "species", []int{100, 1000})
			cv.So(err, cv.ShouldBeNil)
			cv.So(results, cv.ShouldHaveLength, 10)
			cv.So(results[0].Samples, cv.ShouldEqual, 100)
			cv.So(results[9].Samples, cv.ShouldEqual, 300)
		})
		cv.Convey("fitted models are kept when a model store is given", func() {
			models, err := badgerstore.Open("", "benchmark", treejson.NewModelEncodeDecoder())
			cv.So(err, cv.ShouldBeNil)
			defer models.Close(context.Background())
			s.Models = models
			s.ModelPrefix = "separable"
			results, err := s.RunRandomForest(tb, features, "species")
			cv.So(err, cv.ShouldBeNil)
			cv.So(s.ModelName(results[2]), cv.ShouldEqual, "separable/random-forest/forest-parallel/300")
			for _, r := range results {
				trees, err := s.Models.Get(context.Background(), s.ModelName(r))
				cv.So(err, cv.ShouldBeNil)
				cv.So(trees, cv.ShouldHaveLength, s.NumTrees)
			}
		})
		cv.Convey("a bad target fails the suite", func() {
			_, err := s.RunDecisionTree(tb, features, "weight")
			cv.So(err, cv.ShouldNotBeNil)
		})
	})
}

func TestReport(t *testing.T) {
	results := []Result{
		{Suite: RandomForestSuite, Strategy: Serial, Samples: 100, Duration: 200 * time.Millisecond, Speedup: 1, Accuracy: 0.9, F1: 0.85},
		{Suite: RandomForestSuite, Strategy: ForestParallel, Samples: 100, Duration: 50 * time.Millisecond, Speedup: 4, Accuracy: 0.9, F1: 0.85},
	}
	cv.Convey("WriteTable writes a row per result", t, func() {
		var b bytes.Buffer
		cv.So(WriteTable(&b, results), cv.ShouldBeNil)
		lines := strings.Split(strings.TrimSpace(b.String()), "\n")
		cv.So(lines, cv.ShouldHaveLength, 3)
		cv.So(lines[0], cv.ShouldStartWith, "SUITE")
		cv.So(lines[2], cv.ShouldContainSubstring, "forest-parallel")
		cv.So(lines[2], cv.ShouldContainSubstring, "50.00")
		cv.So(lines[2], cv.ShouldContainSubstring, "4.00x")
	})
	cv.Convey("Charts are written as images", t, func() {
		dir, err := ioutil.TempDir("", "benchmark")
		cv.So(err, cv.ShouldBeNil)
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "times.png")
		cv.So(PlotTimes(results, "Training time", path), cv.ShouldBeNil)
		info, err := os.Stat(path)
		cv.So(err, cv.ShouldBeNil)
		cv.So(info.Size(), cv.ShouldBeGreaterThan, 0)
		cv.So(PlotSpeedups(results, "Speedup", filepath.Join(dir, "speedups.svg")), cv.ShouldBeNil)
		cv.So(PlotTimes(nil, "Training time", path), cv.ShouldNotBeNil)
	})
}
