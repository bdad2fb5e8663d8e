package tree

import (
	"fmt"
	"strings"
)

/*
Prediction represents a prediction made by a decision Tree: the probability
of each class and the predicted class, which is the most probable one.
*/
type Prediction struct {
	Class         int
	Probabilities []float64
	Weight        int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when the prediction cannot be made because the tree itself cannot make
a prediction for that kind of sample, as opposed to cases where values
for a feature cannot be obtained for example.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrCannotPredictFromEmptySet is the error returned when trying to build a prediction
based on an empty set of rows.
*/
const ErrCannotPredictFromEmptySet = PredictionError("cannot make prediction for empty set")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes a class count vector and returns the prediction for it:
probabilities are the counts divided by their sum, and the predicted class
is the one with the highest count, the lowest index among ties. An error is
returned if all counts are zero.
*/
func NewPrediction(counts []int) (*Prediction, error) {
	var weight int
	for _, c := range counts {
		weight += c
	}
	if weight == 0 {
		return nil, ErrCannotPredictFromEmptySet
	}
	probs := make([]float64, len(counts))
	class := 0
	for i, c := range counts {
		probs[i] = float64(c) / float64(weight)
		if c > counts[class] {
			class = i
		}
	}
	return &Prediction{Class: class, Probabilities: probs, Weight: weight}, nil
}

/*
ProbabilityOf takes a class index and returns its probability according to
the prediction.
*/
func (p *Prediction) ProbabilityOf(class int) float64 {
	if class < 0 || class >= len(p.Probabilities) {
		return 0.0
	}
	return p.Probabilities[class]
}

func (p *Prediction) String() string {
	probs := make([]string, len(p.Probabilities))
	for i, v := range p.Probabilities {
		probs[i] = fmt.Sprintf("%d:%.3f", i, v)
	}
	return fmt.Sprintf("class %d [%s] (%d samples)", p.Class, strings.Join(probs, " "), p.Weight)
}
