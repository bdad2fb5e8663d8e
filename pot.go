package forest

import (
	"sync"

	"github.com/dineshmanideep/Parallel-random-forest/metrics"
	"github.com/dineshmanideep/Parallel-random-forest/progress"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
)

/*
pot represents the context in which a tree is grown: the training data, the
hyperparameters and growing configuration, and the sink to report created
nodes to. Nothing in a pot is modified while growing, so the subtrees of a
node can be developed concurrently.
*/
type pot struct {
	*trainingData
	splitSearch
	hp        Hyperparameters
	gc        GrowingConfig
	sink      progress.Sink
	treeIndex int
}

func newPot(data *trainingData, hp Hyperparameters, gc GrowingConfig, sink progress.Sink, treeIndex int) *pot {
	if sink == nil {
		sink = progress.Nop
	}
	return &pot{
		trainingData: data,
		splitSearch:  splitSearch{data.labels, data.numClasses, gc.Criterion.impurity()},
		hp:           hp,
		gc:           gc,
		sink:         sink,
		treeIndex:    treeIndex,
	}
}

/*
develop grows the subtree for the given rows, at the given depth, and
returns its root. The rows become a leaf if they are pure, the depth limit
is reached, there are too few of them or no split reduces their impurity
and sends rows to both sides.
Otherwise they are split on the best partition and each side is developed,
concurrently if the growing configuration allows it.
*/
func (p *pot) develop(rows []int, depth int) (*tree.Node, error) {
	p.sink.NodeCreated(p.treeIndex)
	counts := metrics.ClassCounts(p.labelsOf(rows), p.splitSearch.numClasses)
	if p.stopsAt(rows, counts, depth) {
		return leaf(counts)
	}
	partition, err := p.bestPartition(p.features, p.columns, rows, counts)
	if err != nil {
		return nil, err
	}
	if partition == nil || partition.Gain <= 0 {
		return leaf(counts)
	}
	left, right, err := partition.Criterion.Partition(p.columns[partition.feature], rows)
	if err != nil {
		return nil, err
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf(counts)
	}
	n := &tree.Node{Criterion: partition.Criterion}
	if !p.gc.shouldParallelize(depth, len(rows)) {
		if n.Left, err = p.develop(left, depth+1); err != nil {
			return nil, err
		}
		if n.Right, err = p.develop(right, depth+1); err != nil {
			return nil, err
		}
		return n, nil
	}
	var wg sync.WaitGroup
	var leftErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		n.Left, leftErr = p.develop(left, depth+1)
	}()
	n.Right, err = p.develop(right, depth+1)
	wg.Wait()
	if leftErr != nil {
		return nil, leftErr
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (p *pot) stopsAt(rows []int, counts []int, depth int) bool {
	if len(rows) <= 1 || len(rows) <= p.hp.MinExamplesPerLeaf {
		return true
	}
	if p.hp.MaxDepth != Unbounded && depth >= p.hp.MaxDepth {
		return true
	}
	return pure(counts)
}

func (p *pot) labelsOf(rows []int) []int {
	labels := make([]int, len(rows))
	for i, r := range rows {
		labels[i] = p.splitSearch.labels[r]
	}
	return labels
}

func pure(counts []int) bool {
	var nonEmpty int
	for _, c := range counts {
		if c > 0 {
			nonEmpty++
		}
	}
	return nonEmpty <= 1
}

func leaf(counts []int) (*tree.Node, error) {
	p, err := tree.NewPrediction(counts)
	if err != nil {
		return nil, err
	}
	return tree.NewLeaf(p), nil
}
