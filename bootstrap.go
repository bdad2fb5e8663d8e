package forest

import (
	"golang.org/x/exp/rand"
)

/*
bootstrapSample returns int(rows*ratio) row indices, at least one, drawn
uniformly with replacement from [0, rows) by a generator seeded with seed.
*/
func bootstrapSample(rows int, ratio float64, seed int64) []int {
	n := int(float64(rows) * ratio)
	if n < 1 {
		n = 1
	}
	rnd := rand.New(rand.NewSource(uint64(seed)))
	sample := make([]int, n)
	for i := range sample {
		sample[i] = rnd.Intn(rows)
	}
	return sample
}

/*
bootstrapSamples returns one bootstrap sample per tree, tree i drawing with
seed+i, so that samples do not depend on the order trees are grown in.
*/
func bootstrapSamples(trees, rows int, ratio float64, seed int64) [][]int {
	samples := make([][]int, trees)
	for i := range samples {
		samples[i] = bootstrapSample(rows, ratio, seed+int64(i))
	}
	return samples
}
