/*
Package csv provides reading and writing of tables as CSV documents.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

/*
ReadTable takes an io.Reader for a CSV stream and returns the table parsed
from it or an error.

The first row of the CSV content is expected to hold the column names. Rows
with a different number of fields than the header are skipped. The kind of
each column is inferred from its values with table.InferColumn.
*/
func ReadTable(reader io.Reader) (*table.Table, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv: no header found")
	}
	header := records[0]
	kept := [][]string{header}
	for _, rec := range records[1:] {
		if len(rec) == len(header) {
			kept = append(kept, rec)
		}
	}
	df := dataframe.LoadRecords(kept,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("loading csv records: %v", df.Err)
	}
	return FromDataFrame(df)
}

/*
ReadTableFromFile takes a filepath string, opens the file and uses ReadTable
to parse it.
*/
func ReadTableFromFile(filepath string) (*table.Table, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening csv file %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		err = fmt.Errorf("parsing csv file %s: %v", filepath, err)
	}
	return t, err
}

/*
FromDataFrame takes a dataframe and returns a table with a column for each
of its series, in order, with kinds inferred from their textual values.
*/
func FromDataFrame(df dataframe.DataFrame) (*table.Table, error) {
	columns := make([]table.Column, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		raw := make([]string, s.Len())
		for i := range raw {
			e := s.Elem(i)
			if e.IsNA() {
				continue
			}
			raw[i] = e.String()
		}
		columns = append(columns, table.InferColumn(strings.TrimSpace(name), raw))
	}
	return table.New(columns...)
}

/*
ToDataFrame takes a table and returns a dataframe with a series for each of
its columns.
*/
func ToDataFrame(t *table.Table) dataframe.DataFrame {
	ss := make([]series.Series, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		switch col := c.(type) {
		case *table.IntColumn:
			ss = append(ss, series.New(col.Ints(), series.Int, col.Name()))
		case *table.FloatColumn:
			ss = append(ss, series.New(col.Floats(), series.Float, col.Name()))
		case *table.CategoricalColumn:
			ss = append(ss, series.New(col.Strings(), series.String, col.Name()))
		}
	}
	return dataframe.New(ss...)
}

/*
WriteTable takes an io.Writer and a table and writes the table onto it as
CSV, with a header row holding the column names.
*/
func WriteTable(w io.Writer, t *table.Table) error {
	df := ToDataFrame(t)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

/*
WriteTableToFile takes a filepath string and a table and writes the table
as CSV onto the file, creating or truncating it.
*/
func WriteTableToFile(filepath string, t *table.Table) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating csv file %s: %v", filepath, err)
	}
	err = WriteTable(f, t)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
