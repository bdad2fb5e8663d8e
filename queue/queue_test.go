package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	cv "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	cv.Convey("Given a queue with 3 workers", t, func() {
		q := New(context.Background(), 3)
		cv.Convey("every added task runs", func() {
			var count int64
			results := make([]int, 20)
			for i := 0; i < 20; i++ {
				i := i
				q.Add(func(ctx context.Context) error {
					atomic.AddInt64(&count, 1)
					results[i] = i * i
					return nil
				})
			}
			cv.So(q.Wait(), cv.ShouldBeNil)
			cv.So(atomic.LoadInt64(&count), cv.ShouldEqual, 20)
			cv.So(results[7], cv.ShouldEqual, 49)
		})
		cv.Convey("no more than 3 tasks run at the same time", func() {
			var running, max int64
			for i := 0; i < 30; i++ {
				q.Add(func(ctx context.Context) error {
					n := atomic.AddInt64(&running, 1)
					for {
						m := atomic.LoadInt64(&max)
						if n <= m || atomic.CompareAndSwapInt64(&max, m, n) {
							break
						}
					}
					atomic.AddInt64(&running, -1)
					return nil
				})
			}
			cv.So(q.Wait(), cv.ShouldBeNil)
			cv.So(atomic.LoadInt64(&max), cv.ShouldBeLessThanOrEqualTo, 3)
		})
		cv.Convey("the error of a failing task is returned", func() {
			boom := errors.New("boom")
			for i := 0; i < 10; i++ {
				i := i
				q.Add(func(ctx context.Context) error {
					if i == 4 {
						return boom
					}
					return nil
				})
			}
			cv.So(q.Wait(), cv.ShouldEqual, boom)
		})
		cv.Convey("an empty queue waits for nothing", func() {
			cv.So(q.Wait(), cv.ShouldBeNil)
		})
	})
	cv.Convey("A queue whose context is cancelled reports it", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		q := New(ctx, 1)
		cancel()
		q.Add(func(ctx context.Context) error { return nil })
		cv.So(q.Wait(), cv.ShouldEqual, context.Canceled)
	})
}
