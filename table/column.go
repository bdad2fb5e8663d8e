/*
Package table provides the columnar in-memory representation that trees
and forests are trained on: a set of named, typed columns sharing the same
row count.
*/
package table

import (
	"sort"
	"sync"
)

// Kind identifies the type of values held by a Column.
type Kind int

const (
	// Int columns hold integer values.
	Int Kind = iota
	// Float columns hold floating point values.
	Float
	// Categorical columns hold string labels.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Categorical:
		return "categorical"
	}
	return "unknown"
}

// Numeric returns whether values of the kind can be compared against a threshold.
func (k Kind) Numeric() bool {
	return k == Int || k == Float
}

// TableError represents an error raised by a table or one of its columns.
type TableError string

const (
	// ErrOutOfRange is returned when a row index exceeds the length of a column.
	ErrOutOfRange = TableError("row index out of range")
	// ErrLengthMismatch is returned when columns of different lengths are
	// put together into a table.
	ErrLengthMismatch = TableError("column lengths do not match")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = TableError("duplicate column name")
)

func (te TableError) Error() string {
	return string(te)
}

/*
Column is a named sequence of values of a single Kind.

ValueAt returns an int, a float64 or a string depending on the kind of the
column, or ErrOutOfRange if the row does not exist.
*/
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	ValueAt(row int) (interface{}, error)
	subset(indices []int) Column
}

// IntColumn is a Column of integers.
type IntColumn struct {
	name   string
	values []int
}

// FloatColumn is a Column of float64 values.
type FloatColumn struct {
	name   string
	values []float64
}

/*
CategoricalColumn is a Column of string labels. It carries a label encoding
mapping every distinct label to a code in 0..DistinctCount()-1 which is built
once, the first time it is needed, assigning codes in lexicographic order of
the labels.
*/
type CategoricalColumn struct {
	name       string
	values     []string
	encodeOnce sync.Once
	categories []string
	codes      []int
}

// NewIntColumn returns an IntColumn with the given name and values.
func NewIntColumn(name string, values []int) *IntColumn {
	return &IntColumn{name, values}
}

// NewFloatColumn returns a FloatColumn with the given name and values.
func NewFloatColumn(name string, values []float64) *FloatColumn {
	return &FloatColumn{name, values}
}

// NewCategoricalColumn returns a CategoricalColumn with the given name and values.
func NewCategoricalColumn(name string, values []string) *CategoricalColumn {
	return &CategoricalColumn{name: name, values: values}
}

func (c *IntColumn) Name() string { return c.name }
func (c *IntColumn) Kind() Kind   { return Int }
func (c *IntColumn) Len() int     { return len(c.values) }

// Ints returns the values of the column. The slice must not be modified.
func (c *IntColumn) Ints() []int { return c.values }

func (c *IntColumn) ValueAt(row int) (interface{}, error) {
	if row < 0 || row >= len(c.values) {
		return nil, ErrOutOfRange
	}
	return c.values[row], nil
}

// Float64At returns the value at the given row converted to float64.
func (c *IntColumn) Float64At(row int) float64 { return float64(c.values[row]) }

func (c *IntColumn) subset(indices []int) Column {
	values := make([]int, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &IntColumn{c.name, values}
}

func (c *FloatColumn) Name() string { return c.name }
func (c *FloatColumn) Kind() Kind   { return Float }
func (c *FloatColumn) Len() int     { return len(c.values) }

// Floats returns the values of the column. The slice must not be modified.
func (c *FloatColumn) Floats() []float64 { return c.values }

func (c *FloatColumn) ValueAt(row int) (interface{}, error) {
	if row < 0 || row >= len(c.values) {
		return nil, ErrOutOfRange
	}
	return c.values[row], nil
}

// Float64At returns the value at the given row.
func (c *FloatColumn) Float64At(row int) float64 { return c.values[row] }

func (c *FloatColumn) subset(indices []int) Column {
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &FloatColumn{c.name, values}
}

func (c *CategoricalColumn) Name() string { return c.name }
func (c *CategoricalColumn) Kind() Kind   { return Categorical }
func (c *CategoricalColumn) Len() int     { return len(c.values) }

// Strings returns the values of the column. The slice must not be modified.
func (c *CategoricalColumn) Strings() []string { return c.values }

func (c *CategoricalColumn) ValueAt(row int) (interface{}, error) {
	if row < 0 || row >= len(c.values) {
		return nil, ErrOutOfRange
	}
	return c.values[row], nil
}

/*
Code returns the label encoding of the value at the given row, building the
encoding first if it had not been built yet.
*/
func (c *CategoricalColumn) Code(row int) (int, error) {
	if row < 0 || row >= len(c.values) {
		return 0, ErrOutOfRange
	}
	c.Encode()
	return c.codes[row], nil
}

// Codes returns the label encoding of every row. The slice must not be modified.
func (c *CategoricalColumn) Codes() []int {
	c.Encode()
	return c.codes
}

// DistinctCount returns the number of distinct labels in the column.
func (c *CategoricalColumn) DistinctCount() int {
	c.Encode()
	return len(c.categories)
}

/*
Categories returns the distinct labels of the column sorted, so that the
label with code i is at position i.
*/
func (c *CategoricalColumn) Categories() []string {
	c.Encode()
	return c.categories
}

/*
Encode builds the label encoding of the column. It is safe to call
concurrently and only the first call does any work.
*/
func (c *CategoricalColumn) Encode() {
	c.encodeOnce.Do(func() {
		seen := make(map[string]int)
		for _, v := range c.values {
			seen[v] = 0
		}
		c.categories = make([]string, 0, len(seen))
		for v := range seen {
			c.categories = append(c.categories, v)
		}
		sort.Strings(c.categories)
		for i, v := range c.categories {
			seen[v] = i
		}
		c.codes = make([]int, len(c.values))
		for i, v := range c.values {
			c.codes[i] = seen[v]
		}
	})
}

func (c *CategoricalColumn) subset(indices []int) Column {
	values := make([]string, len(indices))
	for i, idx := range indices {
		values[i] = c.values[idx]
	}
	return &CategoricalColumn{name: c.name, values: values}
}

// NumericColumn is implemented by columns whose values can be read as float64.
type NumericColumn interface {
	Column
	Float64At(row int) float64
}
