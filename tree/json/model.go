package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dineshmanideep/Parallel-random-forest/tree"
)

/*
WriteJSONModel takes the trees of a model and an io.Writer and serializes
them onto it as a JSON object with a single "trees" field holding an array of
trees serialized as with WriteJSONTree.
*/
func WriteJSONModel(trees []*tree.Tree, w io.Writer) error {
	if len(trees) == 0 {
		return fmt.Errorf("cannot serialize a model without trees")
	}
	_, err := w.Write([]byte(`{"trees":[`))
	if err != nil {
		return err
	}
	for i, t := range trees {
		if i != 0 {
			if _, err = w.Write([]byte(",")); err != nil {
				return err
			}
		}
		if err = WriteJSONTree(t, w); err != nil {
			return fmt.Errorf("serializing tree %d: %v", i, err)
		}
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONModel takes an io.Reader and returns the trees of the model
serialized on it. Both documents written by WriteJSONModel and single trees
written by WriteJSONTree are accepted.
*/
func ReadJSONModel(r io.Reader) ([]*tree.Tree, error) {
	doc := &struct {
		Trees []*jsonTree `json:"trees"`
		jsonTree
	}{}
	err := json.NewDecoder(r).Decode(doc)
	if err != nil {
		return nil, err
	}
	if doc.Trees == nil {
		t, err := decodeTree(&doc.jsonTree)
		if err != nil {
			return nil, err
		}
		return []*tree.Tree{t}, nil
	}
	trees := make([]*tree.Tree, len(doc.Trees))
	for i, jt := range doc.Trees {
		trees[i], err = decodeTree(jt)
		if err != nil {
			return nil, fmt.Errorf("decoding tree %d: %v", i, err)
		}
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("model has no trees")
	}
	return trees, nil
}

type modelEncodeDecoder struct{}

// NewModelEncodeDecoder returns a tree.ModelEncodeDecoder that uses the
// JSON format of WriteJSONModel.
func NewModelEncodeDecoder() tree.ModelEncodeDecoder {
	return modelEncodeDecoder{}
}

func (modelEncodeDecoder) Encode(trees []*tree.Tree) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := WriteJSONModel(trees, buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (modelEncodeDecoder) Decode(data []byte) ([]*tree.Tree, error) {
	return ReadJSONModel(bytes.NewReader(data))
}
