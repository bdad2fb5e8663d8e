/*
Package badgerstore provides an implementation of tree.ModelStore that
keeps encoded models in an embedded Badger key-value database.
*/
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
)

type badgerStore struct {
	db      *badger.DB
	prefix  string
	mencdec tree.ModelEncodeDecoder
}

/*
Open takes the path to a Badger database directory, an empty path meaning an
in-memory database, a key prefix and the encoding to use for models, and
returns a tree.ModelStore over it.
*/
func Open(path, prefix string, mencdec tree.ModelEncodeDecoder) (tree.ModelStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database at %q: %v", path, err)
	}
	return &badgerStore{db, prefix, mencdec}, nil
}

func (bs *badgerStore) Store(ctx context.Context, name string, trees []*tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := bs.mencdec.Encode(trees)
	if err != nil {
		return fmt.Errorf("storing model %q: encoding model: %v", name, err)
	}
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bs.keyFor(name), data)
	})
	if err != nil {
		return fmt.Errorf("storing model %q in badger: %v", name, err)
	}
	return nil
}

func (bs *badgerStore) Get(ctx context.Context, name string) ([]*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bs.keyFor(name))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: %v", name, err)
	}
	trees, err := bs.mencdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: decoding: %v", name, err)
	}
	return trees, nil
}

func (bs *badgerStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(bs.keyFor(name))
	})
	if err != nil {
		return fmt.Errorf("deleting model %q from badger: %v", name, err)
	}
	return nil
}

func (bs *badgerStore) Close(ctx context.Context) error {
	return bs.db.Close()
}

func (bs *badgerStore) keyFor(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", bs.prefix, name))
}
