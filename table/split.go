package table

import (
	"fmt"

	"golang.org/x/exp/rand"
)

/*
TrainTestSplit takes a table, the ratio of its rows to hold out for testing
and a seed, and returns a training and a testing table. Rows are shuffled with
a generator seeded with the given seed, so the same seed always produces the
same split. The testing table gets int(rows*testRatio) rows.
*/
func TrainTestSplit(t *Table, testRatio float64, seed uint64) (*Table, *Table, error) {
	if testRatio < 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in [0, 1), got %v", testRatio)
	}
	rnd := rand.New(rand.NewSource(seed))
	perm := rnd.Perm(t.RowCount())
	nTest := int(float64(t.RowCount()) * testRatio)
	test, err := t.Rows(perm[:nTest])
	if err != nil {
		return nil, nil, err
	}
	train, err := t.Rows(perm[nTest:])
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}

/*
Subsample returns a table with int(rows*ratio) rows of t chosen at random
without replacement, using a generator seeded with the given seed. A ratio
of 1 or more returns t itself.
*/
func Subsample(t *Table, ratio float64, seed uint64) (*Table, error) {
	if ratio >= 1 {
		return t, nil
	}
	rnd := rand.New(rand.NewSource(seed))
	perm := rnd.Perm(t.RowCount())
	return t.Rows(perm[:int(float64(t.RowCount())*ratio)])
}
