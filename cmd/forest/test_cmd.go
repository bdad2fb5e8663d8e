package main

import (
	"context"
	"fmt"
	"os"

	forest "github.com/dineshmanideep/Parallel-random-forest"
	"github.com/dineshmanideep/Parallel-random-forest/metrics"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	inputConfig
	modelSource
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a model",
		Long:  `Test the performance of a tree or a forest against a test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			err := config.modelSource.validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			trees, err := config.modelSource.load(ctx, config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			model, err := forest.FromTrees(trees)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			testingTable, err := config.readTable(ctx, config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			truth, err := trees[0].EncodeTarget(testingTable)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Testing model against a table with %d samples...", testingTable.RowCount())
			pred, err := model.Predict(testingTable)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing model: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			report, err := evaluate(truth, pred)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			fmt.Print(report)
		},
	}
	config.inputConfig.addFlags(cmd, "test the model against")
	config.modelSource.addFlags(cmd)
	return cmd
}

func evaluate(truth, pred []int) (string, error) {
	accuracy, err := metrics.Accuracy(truth, pred)
	if err != nil {
		return "", err
	}
	precision, err := metrics.Precision(truth, pred)
	if err != nil {
		return "", err
	}
	recall, err := metrics.Recall(truth, pred)
	if err != nil {
		return "", err
	}
	f1, err := metrics.F1(truth, pred)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("accuracy:  %f\nprecision: %f\nrecall:    %f\nf1:        %f\n", accuracy, precision, recall, f1), nil
}
