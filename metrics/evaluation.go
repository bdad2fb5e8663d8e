package metrics

import "fmt"

/*
Accuracy returns the fraction of predictions equal to the expected labels or
an error if both slices differ in length or are empty.
*/
func Accuracy(truth, pred []int) (float64, error) {
	if err := checkLengths(truth, pred); err != nil {
		return 0.0, err
	}
	var hits int
	for i := range truth {
		if truth[i] == pred[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(truth)), nil
}

/*
Precision returns the macro-averaged precision of the predictions: the mean
over classes of tp/(tp+fp), counting only classes predicted at least once.
Classes range over 0..max(truth); predictions of other classes count
only as misses.
*/
func Precision(truth, pred []int) (float64, error) {
	cm, err := confusion(truth, pred)
	if err != nil {
		return 0.0, err
	}
	return macro(cm, func(c classStats) int { return c.tp + c.fp }), nil
}

/*
Recall returns the macro-averaged recall of the predictions: the mean over
classes of tp/(tp+fn), counting only classes present in truth.
*/
func Recall(truth, pred []int) (float64, error) {
	cm, err := confusion(truth, pred)
	if err != nil {
		return 0.0, err
	}
	return macro(cm, func(c classStats) int { return c.tp + c.fn }), nil
}

// F1 returns the harmonic mean of Precision and Recall, or 0 if both are 0.
func F1(truth, pred []int) (float64, error) {
	p, err := Precision(truth, pred)
	if err != nil {
		return 0.0, err
	}
	r, err := Recall(truth, pred)
	if err != nil {
		return 0.0, err
	}
	if p+r == 0 {
		return 0.0, nil
	}
	return 2 * p * r / (p + r), nil
}

type classStats struct {
	tp, fp, fn int
}

func confusion(truth, pred []int) ([]classStats, error) {
	if err := checkLengths(truth, pred); err != nil {
		return nil, err
	}
	numClasses := 0
	for i := range truth {
		if truth[i] < 0 || pred[i] < 0 {
			return nil, fmt.Errorf("negative class label at position %d", i)
		}
		if truth[i]+1 > numClasses {
			numClasses = truth[i] + 1
		}
	}
	stats := make([]classStats, numClasses)
	for i := range truth {
		if truth[i] == pred[i] {
			stats[truth[i]].tp++
			continue
		}
		stats[truth[i]].fn++
		if pred[i] < numClasses {
			stats[pred[i]].fp++
		}
	}
	return stats, nil
}

func macro(stats []classStats, denominator func(classStats) int) float64 {
	var total float64
	var n int
	for _, s := range stats {
		d := denominator(s)
		if d > 0 {
			total += float64(s.tp) / float64(d)
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	return total / float64(n)
}

func checkLengths(truth, pred []int) error {
	if len(truth) != len(pred) {
		return fmt.Errorf("label count mismatch: %d expected labels, %d predictions", len(truth), len(pred))
	}
	if len(truth) == 0 {
		return fmt.Errorf("no labels to evaluate")
	}
	return nil
}
