package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"github.com/dineshmanideep/Parallel-random-forest/tree/badgerstore"
	treejson "github.com/dineshmanideep/Parallel-random-forest/tree/json"
	"github.com/dineshmanideep/Parallel-random-forest/tree/redisstore"
	"github.com/spf13/cobra"
	"gopkg.in/redis.v5"
)

const modelKeyPrefix = "forest:model"

// storeConfig holds the flags that select a model store and the model name in it.
type storeConfig struct {
	redisAddr  string
	badgerPath string
	modelName  string
}

func (sc *storeConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&(sc.redisAddr), "redis", "", "address (host:port) of a Redis server keeping models")
	cmd.PersistentFlags().StringVar(&(sc.badgerPath), "badger", "", "path to a Badger database directory keeping models")
	cmd.PersistentFlags().StringVar(&(sc.modelName), "model-name", "", "name of the model in the model store")
}

func (sc *storeConfig) validate() error {
	if sc.redisAddr != "" && sc.badgerPath != "" {
		return fmt.Errorf("cannot set both redis and badger flags at the same time")
	}
	if sc.enabled() && sc.modelName == "" {
		return fmt.Errorf("required model-name flag was not set for the model store")
	}
	return nil
}

func (sc *storeConfig) enabled() bool {
	return sc.redisAddr != "" || sc.badgerPath != ""
}

// open returns the model store selected by the flags, or nil if none is.
func (sc *storeConfig) open(l logger) (tree.ModelStore, error) {
	switch {
	case sc.redisAddr != "":
		l.Logf("Connecting to Redis at %s to keep models...", sc.redisAddr)
		rc := redis.NewClient(&redis.Options{Addr: sc.redisAddr})
		if _, err := rc.Ping().Result(); err != nil {
			rc.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %v", sc.redisAddr, err)
		}
		return redisstore.New(rc, modelKeyPrefix, treejson.NewModelEncodeDecoder()), nil
	case sc.badgerPath != "":
		l.Logf("Opening Badger database at %s to keep models...", sc.badgerPath)
		return badgerstore.Open(sc.badgerPath, modelKeyPrefix, treejson.NewModelEncodeDecoder())
	}
	return nil, nil
}

func (sc *storeConfig) store(ctx context.Context, l logger, trees []*tree.Tree) error {
	ms, err := sc.open(l)
	if err != nil || ms == nil {
		return err
	}
	defer ms.Close(ctx)
	l.Logf("Storing model %s...", sc.modelName)
	return ms.Store(ctx, sc.modelName, trees)
}

func (sc *storeConfig) load(ctx context.Context, l logger) ([]*tree.Tree, error) {
	ms, err := sc.open(l)
	if err != nil {
		return nil, err
	}
	defer ms.Close(ctx)
	l.Logf("Retrieving model %s...", sc.modelName)
	trees, err := ms.Get(ctx, sc.modelName)
	if err != nil {
		return nil, err
	}
	if trees == nil {
		return nil, fmt.Errorf("model %s not found", sc.modelName)
	}
	return trees, nil
}

// modelSource reads a model from a JSON file or from a model store.
type modelSource struct {
	storeConfig
	modelInput string
}

func (ms *modelSource) addFlags(cmd *cobra.Command) {
	ms.storeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(ms.modelInput), "model", "t", "", "path to a file from which the model will be read and parsed as JSON")
}

func (ms *modelSource) validate() error {
	if err := ms.storeConfig.validate(); err != nil {
		return err
	}
	if ms.modelInput == "" && !ms.enabled() {
		return fmt.Errorf("required model flag was not set and no model store was given")
	}
	if ms.modelInput != "" && ms.enabled() {
		return fmt.Errorf("cannot read the model from both a file and a model store")
	}
	return nil
}

func (ms *modelSource) load(ctx context.Context, l logger) ([]*tree.Tree, error) {
	if ms.enabled() {
		return ms.storeConfig.load(ctx, l)
	}
	l.Logf("Reading model from %s...", ms.modelInput)
	f, err := os.Open(ms.modelInput)
	if err != nil {
		return nil, fmt.Errorf("reading model in JSON from %s: %v", ms.modelInput, err)
	}
	defer f.Close()
	trees, err := treejson.ReadJSONModel(f)
	if err != nil {
		err = fmt.Errorf("parsing model in JSON from %s: %v", ms.modelInput, err)
	}
	return trees, err
}

func outputModel(outputPath string, trees []*tree.Tree) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if len(trees) == 1 {
		return treejson.WriteJSONTree(trees[0], w)
	}
	return treejson.WriteJSONModel(trees, w)
}
