package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/table/csv"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*rootCmdConfig
	inputConfig
	trainOutput string
	testOutput  string
	testRatio   float64
	seed        uint64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into a training and a testing set",
		Long:  `Split a set into a training set and a testing set, shuffling its samples with a seed`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			input, err := config.readTable(context.Background(), config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			train, test, err := table.TrainTestSplit(input, config.testRatio, config.seed)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Writing %d training samples to %s...", train.RowCount(), config.trainOutput)
			err = csv.WriteTableToFile(config.trainOutput, train)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Writing %d testing samples to %s...", test.RowCount(), config.testOutput)
			err = csv.WriteTableToFile(config.testOutput, test)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Done")
		},
	}
	config.inputConfig.addFlags(cmd, "split")
	cmd.PersistentFlags().StringVar(&(config.trainOutput), "train-output", "", "path to a CSV file to which the training set will be written (required)")
	cmd.PersistentFlags().StringVar(&(config.testOutput), "test-output", "", "path to a CSV file to which the testing set will be written (required)")
	cmd.PersistentFlags().Float64VarP(&(config.testRatio), "test-ratio", "r", 0.2, "ratio of the samples to hold out in the testing set")
	cmd.PersistentFlags().Uint64Var(&(config.seed), "seed", 42, "seed to shuffle samples with")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.trainOutput == "" {
		return fmt.Errorf("required train-output flag was not set")
	}
	if scc.testOutput == "" {
		return fmt.Errorf("required test-output flag was not set")
	}
	if scc.testRatio < 0 || scc.testRatio >= 1 {
		return fmt.Errorf("test-ratio must be in [0, 1), got %v", scc.testRatio)
	}
	return nil
}
