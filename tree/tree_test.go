package tree

import (
	"strings"
	"testing"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	cv "github.com/smartystreets/goconvey/convey"
)

func mustPrediction(counts ...int) *Prediction {
	p, err := NewPrediction(counts)
	if err != nil {
		panic(err)
	}
	return p
}

// island is Torgersen -> Adelie, else flipper <= 205 -> Chinstrap, else Gentoo
func handTree() *Tree {
	return &Tree{
		Root: &Node{
			Criterion: feature.NewEqualsCriterion("island", "Torgersen"),
			Left:      NewLeaf(mustPrediction(5, 0, 0)),
			Right: &Node{
				Criterion: feature.NewThresholdCriterion("flipper_length_mm", 205),
				Left:      NewLeaf(mustPrediction(1, 3, 0)),
				Right:     NewLeaf(mustPrediction(0, 0, 4)),
			},
		},
		Features: []feature.Feature{
			{Name: "island", Kind: table.Categorical},
			{Name: "flipper_length_mm", Kind: table.Int},
		},
		Target:     "species",
		TargetKind: table.Categorical,
		Classes:    []string{"Adelie", "Chinstrap", "Gentoo"},
	}
}

func handTable(t *testing.T) *table.Table {
	tb, err := table.New(
		table.NewIntColumn("flipper_length_mm", []int{181, 195, 230, 210}),
		table.NewCategoricalColumn("island", []string{"Torgersen", "Dream", "Biscoe", "Dream"}),
		table.NewCategoricalColumn("species", []string{"Adelie", "Chinstrap", "Gentoo", "Gentoo"}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestNewPrediction(t *testing.T) {
	cv.Convey("Given a class count vector", t, func() {
		p, err := NewPrediction([]int{1, 3, 3, 1})
		cv.So(err, cv.ShouldBeNil)
		cv.Convey("probabilities are the relative counts and sum to one", func() {
			cv.So(p.Probabilities, cv.ShouldResemble, []float64{0.125, 0.375, 0.375, 0.125})
			cv.So(p.Weight, cv.ShouldEqual, 8)
		})
		cv.Convey("ties resolve to the lowest class", func() {
			cv.So(p.Class, cv.ShouldEqual, 1)
		})
		cv.So(p.ProbabilityOf(7), cv.ShouldEqual, 0.0)
	})
	cv.Convey("Empty counts cannot make a prediction", t, func() {
		_, err := NewPrediction([]int{0, 0})
		cv.So(err, cv.ShouldEqual, ErrCannotPredictFromEmptySet)
	})
}

func TestPredict(t *testing.T) {
	cv.Convey("Given a tree and a table", t, func() {
		tr := handTree()
		tb := handTable(t)
		cv.Convey("Predict walks every row down to its leaf", func() {
			classes, err := tr.Predict(tb)
			cv.So(err, cv.ShouldBeNil)
			cv.So(classes, cv.ShouldResemble, []int{0, 1, 2, 2})
		})
		cv.Convey("PredictProba returns the leaf distributions", func() {
			probs, err := tr.PredictProba(tb)
			cv.So(err, cv.ShouldBeNil)
			cv.So(probs[1], cv.ShouldResemble, []float64{0.25, 0.75, 0})
		})
		cv.Convey("EncodeTarget maps labels to class indices", func() {
			labels, err := tr.EncodeTarget(tb)
			cv.So(err, cv.ShouldBeNil)
			cv.So(labels, cv.ShouldResemble, []int{0, 1, 2, 2})
		})
		cv.Convey("an absent subtree cannot predict", func() {
			tr.Root.Right.Right = nil
			_, err := tr.Predict(tb)
			cv.So(err, cv.ShouldEqual, ErrCannotPredictFromSample)
		})
		cv.Convey("a table without the features fails", func() {
			other, _ := table.New(table.NewIntColumn("x", []int{1}))
			_, err := tr.Predict(other)
			cv.So(err, cv.ShouldNotBeNil)
		})
	})
}

func TestTraverse(t *testing.T) {
	cv.Convey("Given a tree", t, func() {
		tr := handTree()
		cv.So(tr.NodeCount(), cv.ShouldEqual, 5)
		cv.So(tr.Depth(), cv.ShouldEqual, 2)
		cv.Convey("bottom up traversal visits children first", func() {
			var leaves int
			var rootLast bool
			tr.Traverse(true, func(n *Node, d int) error {
				if n.IsLeaf() {
					leaves++
				}
				rootLast = n == tr.Root
				return nil
			})
			cv.So(leaves, cv.ShouldEqual, 3)
			cv.So(rootLast, cv.ShouldBeTrue)
		})
		cv.Convey("String renders criteria and leaves", func() {
			s := tr.String()
			cv.So(s, cv.ShouldContainSubstring, "island is Torgersen")
			cv.So(s, cv.ShouldContainSubstring, "flipper_length_mm <= 205.000000")
			cv.So(strings.Count(s, "species:"), cv.ShouldEqual, 3)
		})
	})
}
