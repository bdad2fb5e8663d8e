/*
Package progress provides the sinks trees and forests report their training
progress to. Reporting never affects the outcome of a training.
*/
package progress

import "math"

/*
Sink receives training events. Trees of a forest, and the nodes of a tree
grown in parallel, report concurrently, so implementations must be safe for
concurrent use.
*/
type Sink interface {
	// TreeStarted is called when the tree with the given index starts
	// growing, with an estimate of the number of nodes it will have.
	TreeStarted(tree int, estimatedNodes int)
	// NodeCreated is called for every node created in the given tree.
	NodeCreated(tree int)
	// TreeCompleted is called when the tree with the given index is done.
	TreeCompleted(tree int)
}

type nop struct{}

// Nop is a Sink that discards every event.
var Nop Sink = nop{}

func (nop) TreeStarted(int, int) {}
func (nop) NodeCreated(int)      {}
func (nop) TreeCompleted(int)    {}

// maxEstimatedDepth bounds the depth used by EstimateTotalNodes.
const maxEstimatedDepth = 30

/*
EstimateTotalNodes returns a rough estimate of the number of nodes of a tree
grown over the given number of samples, meant only for display purposes.
With an unbounded maxDepth (negative) it is twice the number of leaves
expected if every leaf held minLeaf samples. Otherwise it is one and a half
times the size of a complete binary tree of that depth. It is never lower
than 10. Depths over maxEstimatedDepth are estimated as that depth.
*/
func EstimateTotalNodes(maxDepth, minLeaf, samples int) int {
	var estimate int
	if maxDepth < 0 {
		leaves := samples / maxInt(1, minLeaf)
		estimate = 2 * maxInt(1, leaves)
	} else {
		depth := maxDepth
		if depth > maxEstimatedDepth {
			depth = maxEstimatedDepth
		}
		estimate = int(1.5 * (math.Pow(2, float64(depth+1)) - 1))
	}
	return maxInt(10, estimate)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
