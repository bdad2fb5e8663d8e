package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/dineshmanideep/Parallel-random-forest/benchmark"
	"github.com/dineshmanideep/Parallel-random-forest/progress"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/spf13/cobra"
)

type benchmarkCmdConfig struct {
	*rootCmdConfig
	storeConfig
	datasetsDir   string
	datasetsInput string
	datasetNames  []string
	trees         int
	sampleSizes   []int
	plotDir       string
	showProgress  bool
	seed          uint64
	bar           *progress.Bar
}

func benchmarkCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &benchmarkCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark the parallelism strategies",
		Long:  `Time growing decision trees and random forests serially, with tree-level parallelism and with forest-level parallelism on a number of datasets`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.redisAddr != "" && config.badgerPath != "" {
				fmt.Fprintln(os.Stderr, "cannot set both redis and badger flags at the same time")
				os.Exit(1)
			}
			datasets, err := config.datasets()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			suite := config.suite()
			models, err := config.open(config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if models != nil {
				defer models.Close(context.Background())
				suite.Models = models
			}
			for _, d := range datasets {
				t, err := d.Load(config.seed)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				config.Logf("Benchmarking on %s with %d samples...", d.Name, t.RowCount())
				suite.ModelPrefix = path.Join(config.modelName, d.Name)
				var results []benchmark.Result
				if len(config.sampleSizes) > 0 {
					results, err = suite.RunSampleSizes(t, d.Features, d.Target, config.sampleSizes)
				} else {
					results, err = config.runSuites(suite, d, t)
				}
				config.finishBar()
				if err != nil {
					fmt.Fprintf(os.Stderr, "benchmarking on %s: %v\n", d.Name, err)
					os.Exit(3)
				}
				fmt.Printf("\n%s\n", d.Name)
				if err := benchmark.WriteTable(os.Stdout, results); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				if err := config.plot(d.Name, results); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(5)
				}
			}
		},
	}
	config.storeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.datasetsDir), "datasets-dir", "d", "dataset", "directory holding the CSV files of the built-in datasets")
	cmd.PersistentFlags().StringVar(&(config.datasetsInput), "datasets", "", "path to a YML file describing the datasets to benchmark on instead of the built-in ones")
	cmd.PersistentFlags().StringSliceVar(&(config.datasetNames), "only", nil, "comma-separated names of the datasets to benchmark on (defaults to all)")
	cmd.PersistentFlags().IntVarP(&(config.trees), "trees", "n", benchmark.DefaultSuite().NumTrees, "number of trees of the forests")
	cmd.PersistentFlags().IntSliceVar(&(config.sampleSizes), "sample-sizes", nil, "comma-separated sample counts to repeat the benchmarks with")
	cmd.PersistentFlags().StringVar(&(config.plotDir), "plot-dir", "", "directory to write charts of the results to (defaults to no charts)")
	cmd.PersistentFlags().BoolVar(&(config.showProgress), "progress", false, "draw a progress bar on STDERR for every forest")
	cmd.PersistentFlags().Uint64Var(&(config.seed), "seed", benchmark.DefaultSuite().Seed, "seed for subsampling, splitting and bootstrap sampling")
	return cmd
}

func (bcc *benchmarkCmdConfig) datasets() ([]benchmark.Dataset, error) {
	var all []benchmark.Dataset
	if bcc.datasetsInput != "" {
		bcc.Logf("Reading datasets from %s...", bcc.datasetsInput)
		var err error
		all, err = benchmark.LoadDatasetsFromFile(bcc.datasetsInput)
		if err != nil {
			return nil, err
		}
	} else {
		all = benchmark.Presets(bcc.datasetsDir)
	}
	if len(bcc.datasetNames) == 0 {
		return all, nil
	}
	var selected []benchmark.Dataset
	for _, name := range bcc.datasetNames {
		found := false
		for _, d := range all {
			if d.Name == name {
				selected = append(selected, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown dataset %s", name)
		}
	}
	return selected, nil
}

func (bcc *benchmarkCmdConfig) suite() benchmark.Suite {
	s := benchmark.DefaultSuite()
	s.NumTrees = bcc.trees
	s.Seed = bcc.seed
	s.Logf = bcc.Logf
	if bcc.showProgress {
		s.Progress = bcc.newBar
	}
	return s
}

func (bcc *benchmarkCmdConfig) runSuites(s benchmark.Suite, d benchmark.Dataset, t *table.Table) ([]benchmark.Result, error) {
	dt, err := s.RunDecisionTree(t, d.Features, d.Target)
	if err != nil {
		return nil, err
	}
	rf, err := s.RunRandomForest(t, d.Features, d.Target)
	if err != nil {
		return nil, err
	}
	return append(dt, rf...), nil
}

func (bcc *benchmarkCmdConfig) newBar(numTrees int) progress.Sink {
	bcc.finishBar()
	bcc.bar = progress.NewBar(os.Stderr, numTrees)
	return bcc.bar
}

func (bcc *benchmarkCmdConfig) finishBar() {
	if bcc.bar != nil {
		bcc.bar.Finish()
		bcc.bar = nil
	}
}

func (bcc *benchmarkCmdConfig) plot(name string, results []benchmark.Result) error {
	if bcc.plotDir == "" {
		return nil
	}
	if err := os.MkdirAll(bcc.plotDir, 0755); err != nil {
		return err
	}
	times := filepath.Join(bcc.plotDir, name+"_times.png")
	bcc.Logf("Writing %s...", times)
	if err := benchmark.PlotTimes(results, name+": training and prediction time", times); err != nil {
		return err
	}
	speedups := filepath.Join(bcc.plotDir, name+"_speedups.png")
	bcc.Logf("Writing %s...", speedups)
	return benchmark.PlotSpeedups(results, name+": speedup over serial", speedups)
}
