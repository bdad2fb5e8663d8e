package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	cv "github.com/smartystreets/goconvey/convey"
)

func TestEstimateTotalNodes(t *testing.T) {
	cv.Convey("With unbounded depth the estimate doubles the expected leaves", t, func() {
		cv.So(EstimateTotalNodes(-1, 5, 1000), cv.ShouldEqual, 400)
		cv.So(EstimateTotalNodes(-1, 0, 100), cv.ShouldEqual, 200)
	})
	cv.Convey("With bounded depth the estimate pads a complete tree", t, func() {
		cv.So(EstimateTotalNodes(3, 1, 1000), cv.ShouldEqual, 22)
	})
	cv.Convey("Deep bounds are estimated as the deepest supported tree", t, func() {
		capped := EstimateTotalNodes(maxEstimatedDepth, 20, 1000)
		cv.So(capped, cv.ShouldBeGreaterThan, 1<<30)
		cv.So(EstimateTotalNodes(300, 20, 1000), cv.ShouldEqual, capped)
		cv.So(EstimateTotalNodes(62, 20, 1000), cv.ShouldEqual, capped)
	})
	cv.Convey("The estimate is never lower than 10", t, func() {
		cv.So(EstimateTotalNodes(0, 1, 1000), cv.ShouldEqual, 10)
		cv.So(EstimateTotalNodes(-1, 50, 10), cv.ShouldEqual, 10)
	})
}

func TestBar(t *testing.T) {
	cv.Convey("Given a bar for two trees", t, func() {
		buf := &bytes.Buffer{}
		b := NewBar(buf, 2)
		cv.Convey("concurrent reports are all counted", func() {
			var wg sync.WaitGroup
			for tr := 0; tr < 2; tr++ {
				wg.Add(1)
				go func(tr int) {
					defer wg.Done()
					b.TreeStarted(tr, 100)
					for i := 0; i < 50; i++ {
						b.NodeCreated(tr)
					}
				}(tr)
			}
			wg.Wait()
			cv.So(b.Percent(), cv.ShouldEqual, 50)
			b.TreeCompleted(0)
			b.TreeCompleted(1)
			cv.So(b.Percent(), cv.ShouldEqual, 100)
			b.Finish()
			cv.So(buf.String(), cv.ShouldContainSubstring, "100% (2/2 trees, 100 nodes)")
			cv.So(strings.Contains(buf.String(), "["+strings.Repeat("=", BarWidth)+"]"), cv.ShouldBeTrue)
		})
	})
}

func TestMetrics(t *testing.T) {
	cv.Convey("Given a metrics sink", t, func() {
		reg := prometheus.NewRegistry()
		m, err := NewMetrics(reg)
		cv.So(err, cv.ShouldBeNil)
		s := Multi(m, Nop)
		s.TreeStarted(0, 10)
		s.TreeStarted(1, 12)
		s.NodeCreated(0)
		s.NodeCreated(0)
		s.NodeCreated(1)
		s.TreeCompleted(0)
		cv.So(testutil.ToFloat64(m.nodes.WithLabelValues("0")), cv.ShouldEqual, 2)
		cv.So(testutil.ToFloat64(m.nodes.WithLabelValues("1")), cv.ShouldEqual, 1)
		cv.So(testutil.ToFloat64(m.trees), cv.ShouldEqual, 1)
		cv.So(testutil.ToFloat64(m.estimatedNodes), cv.ShouldEqual, 22)
		cv.Convey("registering twice on the same registry fails", func() {
			_, err := NewMetrics(reg)
			cv.So(err, cv.ShouldNotBeNil)
		})
	})
}
