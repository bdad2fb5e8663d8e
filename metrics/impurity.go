/*
Package metrics provides the impurity and gain measures used to choose
splits while growing trees, and the evaluation measures used to score their
predictions.
*/
package metrics

import "math"

// Impurity computes the impurity of a class count vector.
type Impurity func(counts []int) float64

/*
ClassCounts takes a slice of class labels and the number of classes and
returns a slice with the number of occurrences of each class. Labels outside
[0, numClasses) are ignored.
*/
func ClassCounts(labels []int, numClasses int) []int {
	counts := make([]int, numClasses)
	for _, l := range labels {
		if l >= 0 && l < numClasses {
			counts[l]++
		}
	}
	return counts
}

/*
GiniImpurity returns 1 - sum(p_c^2) over the class distribution of the given
labels, or 0 for an empty slice.
*/
func GiniImpurity(labels []int, numClasses int) float64 {
	return GiniFromCounts(ClassCounts(labels, numClasses))
}

/*
ShannonEntropy returns -sum(p_c*log2(p_c)) over the class distribution of
the given labels, or 0 for an empty slice.
*/
func ShannonEntropy(labels []int, numClasses int) float64 {
	return EntropyFromCounts(ClassCounts(labels, numClasses))
}

// GiniFromCounts is GiniImpurity over a class count vector.
func GiniFromCounts(counts []int) float64 {
	total := sum(counts)
	if total == 0 {
		return 0.0
	}
	result := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		result -= p * p
	}
	return result
}

// EntropyFromCounts is ShannonEntropy over a class count vector.
func EntropyFromCounts(counts []int) float64 {
	total := sum(counts)
	if total == 0 {
		return 0.0
	}
	var result float64
	for _, c := range counts {
		if c > 0 {
			p := float64(c) / float64(total)
			result -= p * math.Log2(p)
		}
	}
	return result
}

/*
GiniGain returns the Gini impurity of parent minus the weighted Gini impurity
of left and right, where weights are the sizes of each side relative to the
parent. It returns 0 for an empty parent.
*/
func GiniGain(parent, left, right []int, numClasses int) float64 {
	return GainFromCounts(GiniFromCounts, ClassCounts(parent, numClasses), ClassCounts(left, numClasses), ClassCounts(right, numClasses))
}

// EntropyGain is GiniGain measured with ShannonEntropy.
func EntropyGain(parent, left, right []int, numClasses int) float64 {
	return GainFromCounts(EntropyFromCounts, ClassCounts(parent, numClasses), ClassCounts(left, numClasses), ClassCounts(right, numClasses))
}

/*
GainFromCounts returns the reduction in impurity obtained by splitting the
parent counts into the left and right counts.
*/
func GainFromCounts(impurity Impurity, parent, left, right []int) float64 {
	n := sum(parent)
	if n == 0 {
		return 0.0
	}
	wl := float64(sum(left)) / float64(n)
	wr := float64(sum(right)) / float64(n)
	return impurity(parent) - (wl*impurity(left) + wr*impurity(right))
}

func sum(counts []int) int {
	var total int
	for _, c := range counts {
		total += c
	}
	return total
}
