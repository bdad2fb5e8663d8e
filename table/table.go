package table

import (
	"fmt"
	"strconv"
	"strings"
)

/*
Table is an ordered set of named columns that share the same number of rows.
Tables are never modified once built, so they can be read concurrently by any
number of goroutines.
*/
type Table struct {
	columns []Column
	byName  map[string]int
	rows    int
}

/*
New takes a list of columns and returns a Table holding them in the given
order, or an error if two columns share a name or their lengths differ.
*/
func New(columns ...Column) (*Table, error) {
	t := &Table{columns: columns, byName: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, ok := t.byName[c.Name()]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name())
		}
		t.byName[c.Name()] = i
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLengthMismatch, c.Name(), c.Len(), t.rows)
		}
	}
	return t, nil
}

// Column returns the column with the given name and whether it exists.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Columns returns the columns of the table in order.
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnNames returns the names of the columns of the table in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return t.rows
}

/*
Rows takes a list of row indices and returns a new Table with those rows in
the given order. Indices may repeat. Column names, kinds and order are kept.
An error wrapping ErrOutOfRange is returned if any index is not a row of the
table.
*/
func (t *Table) Rows(indices []int) (*Table, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= t.rows {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, idx, t.rows)
		}
	}
	columns := make([]Column, len(t.columns))
	for i, c := range t.columns {
		columns[i] = c.subset(indices)
	}
	return New(columns...)
}

/*
Select returns a new Table with only the columns with the given names, in the
given order, sharing the underlying values with t.
*/
func (t *Table) Select(names ...string) (*Table, error) {
	columns := make([]Column, 0, len(names))
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			return nil, fmt.Errorf("column %q not found", n)
		}
		columns = append(columns, c)
	}
	return New(columns...)
}

/*
InferColumn takes a column name and its raw textual values and returns a
column of the narrowest kind that can hold them: Int if every non-empty value
parses as an integer, Float if every non-empty value parses as a number, and
Categorical otherwise. Values are trimmed of surrounding whitespace. Empty
values become 0 on numeric columns.
*/
func InferColumn(name string, raw []string) Column {
	trimmed := make([]string, len(raw))
	isInt, isFloat := true, true
	for i, r := range raw {
		v := strings.TrimSpace(r)
		trimmed[i] = v
		if v == "" {
			continue
		}
		if isInt {
			if _, err := strconv.Atoi(v); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
	}
	switch {
	case isInt:
		values := make([]int, len(trimmed))
		for i, v := range trimmed {
			values[i], _ = strconv.Atoi(v)
		}
		return NewIntColumn(name, values)
	case isFloat:
		values := make([]float64, len(trimmed))
		for i, v := range trimmed {
			values[i], _ = strconv.ParseFloat(v, 64)
		}
		return NewFloatColumn(name, values)
	}
	return NewCategoricalColumn(name, trimmed)
}
