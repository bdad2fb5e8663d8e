package badgerstore

import (
	"context"
	"testing"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"github.com/dineshmanideep/Parallel-random-forest/tree/json"
	cv "github.com/smartystreets/goconvey/convey"
)

func TestBadgerStore(t *testing.T) {
	cv.Convey("Given an in-memory badger model store", t, func() {
		ctx := context.Background()
		bs, err := Open("", "models", json.NewModelEncodeDecoder())
		cv.So(err, cv.ShouldBeNil)
		defer bs.Close(ctx)
		leaf := &tree.Tree{
			Root:       tree.NewLeaf(&tree.Prediction{Class: 1, Probabilities: []float64{0.25, 0.75}, Weight: 4}),
			Features:   []feature.Feature{{Name: "island", Kind: table.Categorical}},
			Target:     "species",
			TargetKind: table.Categorical,
			Classes:    []string{"Adelie", "Gentoo"},
		}
		cv.Convey("stored models can be read back", func() {
			cv.So(bs.Store(ctx, "m", []*tree.Tree{leaf, leaf}), cv.ShouldBeNil)
			trees, err := bs.Get(ctx, "m")
			cv.So(err, cv.ShouldBeNil)
			cv.So(trees, cv.ShouldHaveLength, 2)
			cv.So(trees[0], cv.ShouldResemble, leaf)
		})
		cv.Convey("missing models read as nil", func() {
			trees, err := bs.Get(ctx, "missing")
			cv.So(err, cv.ShouldBeNil)
			cv.So(trees, cv.ShouldBeNil)
		})
		cv.Convey("deleted models are gone", func() {
			cv.So(bs.Store(ctx, "d", []*tree.Tree{leaf}), cv.ShouldBeNil)
			cv.So(bs.Delete(ctx, "d"), cv.ShouldBeNil)
			trees, err := bs.Get(ctx, "d")
			cv.So(err, cv.ShouldBeNil)
			cv.So(trees, cv.ShouldBeNil)
		})
	})
}
