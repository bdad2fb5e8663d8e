package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	forest "github.com/dineshmanideep/Parallel-random-forest"
	"github.com/dineshmanideep/Parallel-random-forest/progress"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/tree"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	metadataConfig
	storeConfig
	output                string
	criterion             string
	maxDepth              int
	minExamplesPerLeaf    int
	parallel              bool
	minSamplesForParallel int
	maxParallelDepth      int
	trees                 int
	bootstrapSampleRatio  float64
	seed                  int64
	forestParallel        bool
	workers               int
	showProgress          bool
	metricsAddr           string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree or a forest from a set of data",
		Long:  `Grow a decision tree, or a random forest if a number of trees is given, from a set of data to predict a certain column.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			target, features, err := config.resolve(config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			trainingTable, err := config.readTable(ctx, config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			criterion, err := forest.ParseCriterion(config.criterion)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			sink, finish, err := config.progressSink()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			hp := forest.Hyperparameters{MaxDepth: config.maxDepth, MinExamplesPerLeaf: config.minExamplesPerLeaf}
			gc := forest.GrowingConfig{
				Criterion:             criterion,
				Parallel:              config.parallel,
				MinSamplesForParallel: config.minSamplesForParallel,
				MaxParallelDepth:      config.maxParallelDepth,
			}
			config.Logf("Growing %s from a table with %d samples and %d features to predict %s ...", config.modelDescription(), trainingTable.RowCount(), len(features), target)
			trees, err := config.grow(trainingTable, features, target, hp, gc, sink)
			finish()
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the model: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
			if len(trees) == 1 {
				config.Logf("%v", trees[0])
			}
			err = outputModel(config.output, trees)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
			err = config.store(ctx, config.logger, trees)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	config.inputConfig.addFlags(cmd, "grow the model")
	config.metadataConfig.addFlags(cmd)
	config.storeConfig.addFlags(cmd)
	defaults, growing, forestDefaults := forest.DefaultHyperparameters(), forest.DefaultGrowingConfig(), forest.DefaultForestConfig()
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated model will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.criterion), "criterion", growing.Criterion.String(), "impurity criterion to split by: gini or entropy")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", defaults.MaxDepth, "maximum depth of the trees (-1: unbounded)")
	cmd.PersistentFlags().IntVar(&(config.minExamplesPerLeaf), "min-leaf", defaults.MinExamplesPerLeaf, "nodes with this many samples or less become leaves")
	cmd.PersistentFlags().BoolVar(&(config.parallel), "parallel", growing.Parallel, "develop the subtrees of every tree concurrently")
	cmd.PersistentFlags().IntVar(&(config.minSamplesForParallel), "min-samples-parallel", growing.MinSamplesForParallel, "minimum samples of a node to develop its subtrees concurrently")
	cmd.PersistentFlags().IntVar(&(config.maxParallelDepth), "max-parallel-depth", growing.MaxParallelDepth, "depth from which subtrees are no longer developed concurrently")
	cmd.PersistentFlags().IntVarP(&(config.trees), "trees", "n", 0, "number of trees of a random forest to grow (defaults to 0: grow a single tree on all samples)")
	cmd.PersistentFlags().Float64Var(&(config.bootstrapSampleRatio), "bootstrap-ratio", forestDefaults.BootstrapSampleRatio, "size of the bootstrap sample of every tree relative to the number of samples")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", forestDefaults.Seed, "seed of the bootstrap sample of the first tree, the next ones using consecutive seeds")
	cmd.PersistentFlags().BoolVar(&(config.forestParallel), "forest-parallel", forestDefaults.Parallel, "grow the trees of the forest concurrently")
	cmd.PersistentFlags().IntVar(&(config.workers), "workers", 0, "number of trees of the forest grown at a time (defaults to 0: GOMAXPROCS)")
	cmd.PersistentFlags().BoolVar(&(config.showProgress), "progress", false, "draw a progress bar on STDERR")
	cmd.PersistentFlags().StringVar(&(config.metricsAddr), "metrics-addr", "", "address to serve Prometheus training metrics on while growing (e.g. :9090)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.trees < 0 {
		return fmt.Errorf("trees must be 0 or positive, got %d", gcc.trees)
	}
	return gcc.storeConfig.validate()
}

func (gcc *growCmdConfig) modelDescription() string {
	if gcc.trees > 0 {
		return fmt.Sprintf("a forest of %d trees", gcc.trees)
	}
	return "a tree"
}

func (gcc *growCmdConfig) grow(t *table.Table, features []string, target string, hp forest.Hyperparameters, gc forest.GrowingConfig, sink progress.Sink) ([]*tree.Tree, error) {
	if gcc.trees == 0 {
		dt := forest.NewDecisionTree(hp, gc)
		err := dt.Fit(t, features, target, forest.WithProgress(sink, 0))
		if err != nil {
			return nil, err
		}
		return []*tree.Tree{dt.Model()}, nil
	}
	f := forest.NewForest(hp, gc, forest.ForestConfig{
		NumTrees:             gcc.trees,
		BootstrapSampleRatio: gcc.bootstrapSampleRatio,
		Seed:                 gcc.seed,
		Parallel:             gcc.forestParallel,
		Workers:              gcc.workers,
	})
	err := f.Fit(t, features, target, sink)
	if err != nil {
		return nil, err
	}
	return f.Trees(), nil
}

/*
progressSink returns the sink the model reports its progress to, as chosen by
the progress and metrics-addr flags, and a function to call once the model is
grown.
*/
func (gcc *growCmdConfig) progressSink() (progress.Sink, func(), error) {
	var sinks []progress.Sink
	var finishers []func()
	if gcc.showProgress {
		total := gcc.trees
		if total == 0 {
			total = 1
		}
		bar := progress.NewBar(os.Stderr, total)
		sinks = append(sinks, bar)
		finishers = append(finishers, bar.Finish)
	}
	if gcc.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m, err := progress.NewMetrics(reg)
		if err != nil {
			return nil, nil, err
		}
		server := &http.Server{Addr: gcc.metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				gcc.Logf("serving metrics on %s: %v", gcc.metricsAddr, err)
			}
		}()
		gcc.Logf("Serving training metrics on %s...", gcc.metricsAddr)
		sinks = append(sinks, m)
		finishers = append(finishers, func() { server.Close() })
	}
	finish := func() {
		for _, f := range finishers {
			f()
		}
	}
	return progress.Multi(sinks...), finish, nil
}
