package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// BarWidth is the number of characters of the bar drawn by Bar.
const BarWidth = 50

/*
Bar is a Sink that draws a console progress bar for the training of a number
of trees. Counters are updated atomically and drawing is serialized, so trees
and nodes may report concurrently.
*/
type Bar struct {
	w              io.Writer
	totalTrees     int
	completedTrees int64
	nodes          int64
	estimatedNodes int64
	lock           sync.Mutex
	lastDrawn      int
}

// NewBar returns a Bar drawing onto w the progress of training totalTrees trees.
func NewBar(w io.Writer, totalTrees int) *Bar {
	return &Bar{w: w, totalTrees: totalTrees, lastDrawn: -1}
}

func (b *Bar) TreeStarted(tree int, estimatedNodes int) {
	atomic.AddInt64(&b.estimatedNodes, int64(estimatedNodes))
	b.draw(false)
}

func (b *Bar) NodeCreated(tree int) {
	atomic.AddInt64(&b.nodes, 1)
	b.draw(false)
}

func (b *Bar) TreeCompleted(tree int) {
	atomic.AddInt64(&b.completedTrees, 1)
	b.draw(true)
}

// Finish draws the bar as complete and ends its line.
func (b *Bar) Finish() {
	b.lock.Lock()
	defer b.lock.Unlock()
	fmt.Fprintf(b.w, "\r[%s] 100%% (%d/%d trees, %d nodes)\n", strings.Repeat("=", BarWidth), atomic.LoadInt64(&b.completedTrees), b.totalTrees, atomic.LoadInt64(&b.nodes))
}

// Percent returns the estimated completion percentage, from 0 to 100.
func (b *Bar) Percent() int {
	completed := atomic.LoadInt64(&b.completedTrees)
	if b.totalTrees > 0 && int(completed) >= b.totalTrees {
		return 100
	}
	treeShare := 0.0
	if b.totalTrees > 0 {
		treeShare = float64(completed) / float64(b.totalTrees)
	}
	nodeShare := 0.0
	if est := atomic.LoadInt64(&b.estimatedNodes); est > 0 {
		nodeShare = float64(atomic.LoadInt64(&b.nodes)) / float64(est)
	}
	share := treeShare
	if nodeShare > share {
		share = nodeShare
	}
	if share > 0.99 {
		share = 0.99
	}
	return int(share * 100)
}

func (b *Bar) draw(force bool) {
	percent := b.Percent()
	b.lock.Lock()
	defer b.lock.Unlock()
	if !force && percent == b.lastDrawn {
		return
	}
	b.lastDrawn = percent
	filled := percent * BarWidth / 100
	fmt.Fprintf(b.w, "\r[%s%s] %3d%% (%d/%d trees)", strings.Repeat("=", filled), strings.Repeat(" ", BarWidth-filled), percent, atomic.LoadInt64(&b.completedTrees), b.totalTrees)
}
