package tree

import (
	"github.com/dineshmanideep/Parallel-random-forest/feature"
)

/*
Node is a node of the tree. A node with a nil Criterion is a leaf, and its
Prediction gives the class distribution of the training rows that reached
it. Internal nodes own up to two children.
*/
type Node struct {
	// The constraint evaluated on samples reaching this node. Samples
	// satisfying it continue on the Left subtree, the rest on the Right one.
	Criterion *feature.Criterion
	// Subtree for samples satisfying the criterion. It may be nil if no
	// training row satisfied it.
	Left *Node
	// Subtree for samples not satisfying the criterion. It may be nil if
	// every training row satisfied it.
	Right *Node
	// The prediction for samples reaching this node, set on leaves.
	Prediction *Prediction
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Criterion == nil
}

// NewLeaf returns a leaf node with the given prediction.
func NewLeaf(p *Prediction) *Node {
	return &Node{Prediction: p}
}
