/*
Package redisstore provides an implementation of tree.ModelStore that
keeps encoded models in a Redis database.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"gopkg.in/redis.v5"
)

type redisStore struct {
	rc      *redis.Client
	prefix  string
	mencdec tree.ModelEncodeDecoder
}

// New builds a tree.ModelStore backed by a redis DB
func New(rc *redis.Client, prefix string, mencdec tree.ModelEncodeDecoder) tree.ModelStore {
	return &redisStore{rc, prefix, mencdec}
}

func (rs *redisStore) Store(ctx context.Context, name string, trees []*tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(name)
	data, err := rs.mencdec.Encode(trees)
	if err != nil {
		return fmt.Errorf("storing model %q: encoding model: %v", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing model %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Get(ctx context.Context, name string) ([]*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: %v", name, err)
	}
	trees, err := rs.mencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving model %q: decoding: %v", name, err)
	}
	return trees, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(name)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
