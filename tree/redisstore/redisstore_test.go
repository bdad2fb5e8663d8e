package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"github.com/dineshmanideep/Parallel-random-forest/tree/json"
	cv "github.com/smartystreets/goconvey/convey"
	"gopkg.in/redis.v5"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	cv.Convey("Given a redis model store", t, func() {
		ctx := context.Background()
		rs := New(redis.NewClient(&redis.Options{Addr: addr}), "forest-test", json.NewModelEncodeDecoder())
		defer rs.Close(ctx)
		stump := &tree.Tree{
			Root: &tree.Node{
				Criterion: feature.NewThresholdCriterion("x", 1.5),
				Left:      tree.NewLeaf(&tree.Prediction{Class: 0, Probabilities: []float64{1, 0}, Weight: 2}),
				Right:     tree.NewLeaf(&tree.Prediction{Class: 1, Probabilities: []float64{0, 1}, Weight: 2}),
			},
			Features:   []feature.Feature{{Name: "x", Kind: table.Int}},
			Target:     "y",
			TargetKind: table.Int,
			Classes:    []string{"0", "1"},
		}
		cv.So(rs.Store(ctx, "stump", []*tree.Tree{stump}), cv.ShouldBeNil)
		trees, err := rs.Get(ctx, "stump")
		cv.So(err, cv.ShouldBeNil)
		cv.So(trees, cv.ShouldHaveLength, 1)
		cv.So(trees[0], cv.ShouldResemble, stump)
		cv.So(rs.Delete(ctx, "stump"), cv.ShouldBeNil)
		trees, err = rs.Get(ctx, "stump")
		cv.So(err, cv.ShouldBeNil)
		cv.So(trees, cv.ShouldBeNil)
	})
}
