package tree

import (
	"context"
)

/*
ModelEncodeDecoder is an interface for objects that allow encoding models,
a list of one or more trees, into slices of bytes and decoding them back.
*/
type ModelEncodeDecoder interface {
	// Encode receives the trees of a model and returns a slice of bytes
	// with the model encoded or an error if the encoding could not be
	// performed for some reason.
	Encode([]*Tree) ([]byte, error)
	// Decode receives a slice of bytes and returns the trees of the model
	// decoded from it or an error if the decoding could not be performed.
	Decode([]byte) ([]*Tree, error)
}

/*
ModelStore is an interface to manage a store where fitted models, a single
tree or the trees of a forest, can be saved under a name, retrieved and
deleted.

All its methods take a context that may allow cancelling the operation (thus
forcing the return of an error) if the implementation allows it.
*/
type ModelStore interface {
	// Store takes a name and the trees of a model and saves them in the
	// store under that name, replacing any model previously saved with it.
	Store(ctx context.Context, name string, trees []*Tree) error
	// Get takes a name and returns the trees of the model saved under it
	// (or nil if it cannot be found) or an error if the store cannot be
	// queried.
	Get(ctx context.Context, name string) ([]*Tree, error)
	// Delete takes a name and removes the model saved under it.
	Delete(ctx context.Context, name string) error
	// Close frees any resources in use by the store.
	Close(ctx context.Context) error
}
