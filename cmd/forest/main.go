package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forest",
		Short: "forest is a tool to grow decision trees and random forests",
		Long:  `A tool to grow classification trees and random forests from your data, in parallel, test them, use them to make predictions and benchmark them`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP((*bool)(&config.logger), "verbose", "v", false, "log progress messages to STDERR")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		predictCmd(config),
		splitCmd(config),
		benchmarkCmd(config),
	)
	return rootCmd
}
