package main

import (
	"context"
	"fmt"
	"os"

	forest "github.com/dineshmanideep/Parallel-random-forest"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/table/csv"
	"github.com/spf13/cobra"
)

// PredictionColumn is the name of the column predict adds with the predicted classes.
const PredictionColumn = "prediction"

type predictCmdConfig struct {
	*rootCmdConfig
	inputConfig
	modelSource
	output        string
	probabilities bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of every sample of a set",
		Long:  `Predict with a tree or a forest the class of every sample of a set, writing the set as CSV with a prediction column added`,
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
			input, err := config.readTable(ctx, config.logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Predicting %d samples...", input.RowCount())
			output, err := predictions(model, input, config.probabilities)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting: %v\n", err)
				os.Exit(4)
			}
			err = config.writeOutput(output)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Done")
		},
	}
	config.inputConfig.addFlags(cmd, "predict")
	config.modelSource.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV file to which the samples and their predictions will be written (defaults to STDOUT)")
	cmd.PersistentFlags().BoolVar(&(config.probabilities), "probabilities", false, "add a column with the probability of every class")
	return cmd
}

/*
predictions returns the input table with a column holding the predicted
class label of each row and, if probabilities is set, a probability column
per class named after it.
*/
func predictions(model *forest.Forest, input *table.Table, probabilities bool) (*table.Table, error) {
	pred, err := model.Predict(input)
	if err != nil {
		return nil, err
	}
	classes := model.Classes()
	labels := make([]string, len(pred))
	for i, p := range pred {
		labels[i] = classes[p]
	}
	columns := append(append([]table.Column(nil), input.Columns()...), table.NewCategoricalColumn(PredictionColumn, labels))
	if probabilities {
		proba, err := model.PredictProba(input)
		if err != nil {
			return nil, err
		}
		for c, class := range classes {
			values := make([]float64, len(proba))
			for r := range proba {
				values[r] = proba[r][c]
			}
			columns = append(columns, table.NewFloatColumn(fmt.Sprintf("p(%s)", class), values))
		}
	}
	return table.New(columns...)
}

func (pcc *predictCmdConfig) writeOutput(t *table.Table) error {
	if pcc.output == "" {
		return csv.WriteTable(os.Stdout, t)
	}
	pcc.Logf("Writing predictions to %s...", pcc.output)
	return csv.WriteTableToFile(pcc.output, t)
}
