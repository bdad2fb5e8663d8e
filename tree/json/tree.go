/*
Package json provides the serialization of fitted trees and forests as JSON
documents.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dineshmanideep/Parallel-random-forest/feature"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
)

type jsonFeature struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type jsonCriterion struct {
	Feature   string   `json:"f"`
	Operator  string   `json:"op"`
	Threshold *float64 `json:"t,omitempty"`
	Value     *string  `json:"v,omitempty"`
}

type jsonPrediction struct {
	Class         int       `json:"class"`
	Probabilities []float64 `json:"probs"`
	Weight        int       `json:"w"`
}

type jsonNode struct {
	ID         int             `json:"id"`
	Criterion  *jsonCriterion  `json:"c,omitempty"`
	Left       *int            `json:"l,omitempty"`
	Right      *int            `json:"r,omitempty"`
	Prediction *jsonPrediction `json:"p,omitempty"`
}

type jsonTree struct {
	Target     string             `json:"target"`
	TargetKind string             `json:"targetKind"`
	Classes    []string           `json:"classes"`
	Features   []jsonFeature      `json:"features"`
	RootID     int                `json:"rootID"`
	Nodes      []*json.RawMessage `json:"nodes"`
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and serializes
the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "target": the name of the column the tree predicts
  - "targetKind": the kind of that column
  - "classes": the label of each class index
  - "features": the ordered features the tree was fit with
  - "rootID": the ID of the node at the root of the tree
  - "nodes": an array with every node of the tree in preorder. Internal nodes
    carry a criterion "c" and the IDs of their "l" and "r" subtrees, leaves
    carry a prediction "p".

An error is returned if the tree cannot be serialized or written onto the
io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	if t.Root == nil {
		return fmt.Errorf("cannot serialize a tree without root")
	}
	ids := make(map[*tree.Node]int)
	t.Traverse(false, func(n *tree.Node, _ int) error {
		ids[n] = len(ids)
		return nil
	})
	err := marshalJSONTreeHeader(t, ids[t.Root], w)
	if err != nil {
		return err
	}
	var i int
	err = t.Traverse(false, func(n *tree.Node, _ int) error {
		err := writeNode(i, n, ids, w)
		i++
		return err
	})
	if err != nil {
		return err
	}
	return marshalJSONTreeFooter(w)
}

/*
ReadJSONTree takes an io.Reader and unmarshals a tree serialized by
WriteJSONTree from its contents. An error is returned if the JSON cannot be
read or does not describe a valid tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, err
	}
	return decodeTree(jt)
}

func decodeTree(jt *jsonTree) (*tree.Tree, error) {
	if jt.Target == "" {
		return nil, fmt.Errorf("no target defined")
	}
	targetKind, err := parseKind(jt.TargetKind)
	if err != nil {
		return nil, err
	}
	t := &tree.Tree{Target: jt.Target, TargetKind: targetKind, Classes: jt.Classes}
	for _, jf := range jt.Features {
		k, err := parseKind(jf.Kind)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %v", jf.Name, err)
		}
		t.Features = append(t.Features, feature.Feature{Name: jf.Name, Kind: k})
	}
	jnodes := make(map[int]*jsonNode, len(jt.Nodes))
	for _, raw := range jt.Nodes {
		jn := &jsonNode{}
		err = json.Unmarshal(*raw, jn)
		if err != nil {
			return nil, err
		}
		if _, ok := jnodes[jn.ID]; ok {
			return nil, fmt.Errorf("node %d defined twice", jn.ID)
		}
		jnodes[jn.ID] = jn
	}
	if _, ok := jnodes[jt.RootID]; !ok {
		return nil, fmt.Errorf("root node %d not found", jt.RootID)
	}
	visited := make(map[int]bool, len(jnodes))
	t.Root, err = buildNode(jt.RootID, jnodes, visited)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildNode(id int, jnodes map[int]*jsonNode, visited map[int]bool) (*tree.Node, error) {
	jn, ok := jnodes[id]
	if !ok {
		return nil, fmt.Errorf("node %d not found", id)
	}
	if visited[id] {
		return nil, fmt.Errorf("node %d referenced twice", id)
	}
	visited[id] = true
	n := &tree.Node{}
	if jn.Prediction != nil {
		n.Prediction = &tree.Prediction{Class: jn.Prediction.Class, Probabilities: jn.Prediction.Probabilities, Weight: jn.Prediction.Weight}
	}
	if jn.Criterion == nil {
		if n.Prediction == nil {
			return nil, fmt.Errorf("leaf node %d has no prediction", id)
		}
		return n, nil
	}
	c, err := decodeCriterion(jn.Criterion)
	if err != nil {
		return nil, fmt.Errorf("node %d: %v", id, err)
	}
	n.Criterion = c
	if jn.Left != nil {
		if n.Left, err = buildNode(*jn.Left, jnodes, visited); err != nil {
			return nil, err
		}
	}
	if jn.Right != nil {
		if n.Right, err = buildNode(*jn.Right, jnodes, visited); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func marshalJSONTreeHeader(t *tree.Tree, rootID int, w io.Writer) error {
	features := make([]jsonFeature, len(t.Features))
	for i, f := range t.Features {
		features[i] = jsonFeature{f.Name, f.Kind.String()}
	}
	jTarget, err := json.Marshal(t.Target)
	if err != nil {
		return err
	}
	jClasses, err := json.Marshal(t.Classes)
	if err != nil {
		return err
	}
	jFeatures, err := json.Marshal(features)
	if err != nil {
		return err
	}
	header := fmt.Sprintf(`{"target":%s,"targetKind":%q,"classes":%s,"features":%s,"rootID":%d,"nodes":[`, jTarget, t.TargetKind.String(), jClasses, jFeatures, rootID)
	_, err = w.Write([]byte(header))
	return err
}

func writeNode(i int, n *tree.Node, ids map[*tree.Node]int, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn := &jsonNode{ID: ids[n]}
	if n.Prediction != nil {
		jn.Prediction = &jsonPrediction{n.Prediction.Class, n.Prediction.Probabilities, n.Prediction.Weight}
	}
	if n.Criterion != nil {
		jn.Criterion = encodeCriterion(n.Criterion)
		if n.Left != nil {
			l := ids[n.Left]
			jn.Left = &l
		}
		if n.Right != nil {
			r := ids[n.Right]
			jn.Right = &r
		}
	}
	data, err := json.Marshal(jn)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func marshalJSONTreeFooter(w io.Writer) error {
	_, err := w.Write([]byte(`]}`))
	return err
}

func encodeCriterion(c *feature.Criterion) *jsonCriterion {
	jc := &jsonCriterion{Feature: c.Feature}
	switch c.Kind {
	case feature.Equals:
		v := c.Value
		jc.Operator = "is"
		jc.Value = &v
	default:
		th := c.Threshold
		jc.Operator = "<="
		jc.Threshold = &th
	}
	return jc
}

func decodeCriterion(jc *jsonCriterion) (*feature.Criterion, error) {
	switch jc.Operator {
	case "is":
		if jc.Value == nil {
			return nil, fmt.Errorf("criterion on %q has no value", jc.Feature)
		}
		return feature.NewEqualsCriterion(jc.Feature, *jc.Value), nil
	case "<=":
		if jc.Threshold == nil {
			return nil, fmt.Errorf("criterion on %q has no threshold", jc.Feature)
		}
		return feature.NewThresholdCriterion(jc.Feature, *jc.Threshold), nil
	}
	return nil, fmt.Errorf("unknown criterion operator %q", jc.Operator)
}

func parseKind(s string) (table.Kind, error) {
	for _, k := range []table.Kind{table.Int, table.Float, table.Categorical} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown column kind %q", s)
}
