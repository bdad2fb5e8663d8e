package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dineshmanideep/Parallel-random-forest/feature/yaml"
	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/table/csv"
	"github.com/dineshmanideep/Parallel-random-forest/table/mongotable"
	"github.com/dineshmanideep/Parallel-random-forest/table/sqltable"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

const mongoDBURLPrefix = "mongodb://"

// inputConfig holds the flags that select where a command reads its table from.
type inputConfig struct {
	dataInput  string
	tableName  string
	maxDBConns int
}

func (ic *inputConfig) addFlags(cmd *cobra.Command, purpose string) {
	cmd.PersistentFlags().StringVarP(&(ic.dataInput), "input", "i", "", fmt.Sprintf("path to an input CSV (.csv) or SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB URL with data to %s (defaults to STDIN, interpreted as CSV)", purpose))
	cmd.PersistentFlags().StringVar(&(ic.tableName), "table", sqltable.DefaultTableName, "name of the SQL table or MongoDB collection to read when the input is a database")
	cmd.PersistentFlags().IntVar(&(ic.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func (ic *inputConfig) readTable(ctx context.Context, l logger) (*table.Table, error) {
	switch {
	case ic.dataInput == "":
		l.Logf("Reading data from STDIN...")
		t, err := csv.ReadTable(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading data: %v", err)
		}
		return t, nil
	case sqltable.IsPostgreSQLURL(ic.dataInput):
		l.Logf("Reading table %s from PostgreSQL at %s...", ic.tableName, ic.dataInput)
		return ic.readSQLTable(ctx)
	case strings.HasSuffix(ic.dataInput, ".db"):
		l.Logf("Reading table %s from SQLite3 file %s...", ic.tableName, ic.dataInput)
		return ic.readSQLTable(ctx)
	case strings.HasPrefix(ic.dataInput, mongoDBURLPrefix):
		l.Logf("Reading collection %s from MongoDB at %s...", ic.tableName, ic.dataInput)
		return ic.readMongoTable()
	}
	l.Logf("Reading data from %s...", ic.dataInput)
	t, err := csv.ReadTableFromFile(ic.dataInput)
	if err != nil {
		return nil, fmt.Errorf("reading data from %s: %v", ic.dataInput, err)
	}
	return t, nil
}

func (ic *inputConfig) readSQLTable(ctx context.Context) (*table.Table, error) {
	db, err := sqltable.Open(ic.dataInput, ic.maxDBConns)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.ReadTable(ctx, ic.tableName)
}

func (ic *inputConfig) readMongoTable() (*table.Table, error) {
	session, err := mgo.Dial(ic.dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", ic.dataInput, err)
	}
	defer session.Close()
	return mongotable.ReadTable(session, ic.tableName)
}

// metadataConfig holds the flags that name the target and feature columns.
type metadataConfig struct {
	metadataInput string
	target        string
	features      []string
}

func (mc *metadataConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(mc.metadataInput), "metadata", "m", "", "path to a YML file with the target and the features to use")
	cmd.PersistentFlags().StringVarP(&(mc.target), "target", "c", "", "name of the column to predict (overrides the metadata target)")
	cmd.PersistentFlags().StringSliceVarP(&(mc.features), "features", "f", nil, "comma-separated names of the columns to use as features (overrides the metadata features)")
}

/*
resolve returns the target and features to use, taken from the metadata file
if given and overridden by the target and features flags.
*/
func (mc *metadataConfig) resolve(l logger) (string, []string, error) {
	target, features := mc.target, mc.features
	if mc.metadataInput != "" {
		l.Logf("Reading metadata from %s...", mc.metadataInput)
		md, err := yaml.ReadMetadataFromFile(mc.metadataInput)
		if err != nil {
			return "", nil, err
		}
		if target == "" {
			target = md.Target
		}
		if len(features) == 0 {
			features = md.Features
		}
	}
	if target == "" {
		return "", nil, fmt.Errorf("no target given: set the target flag or a metadata file")
	}
	if len(features) == 0 {
		return "", nil, fmt.Errorf("no features given: set the features flag or a metadata file")
	}
	return target, features, nil
}
