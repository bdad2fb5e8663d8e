/*
Package feature provides references to the columns of a table that trees
are trained on, and the criteria that split rows on them.
*/
package feature

import (
	"fmt"

	"github.com/dineshmanideep/Parallel-random-forest/table"
)

/*
Feature represents an observable property of the rows of a table: the name
of one of its columns and the kind of values it holds.
*/
type Feature struct {
	Name string
	Kind table.Kind
}

/*
New takes a column and returns the Feature that refers to it.
*/
func New(c table.Column) Feature {
	return Feature{c.Name(), c.Kind()}
}

/*
Resolve takes a table and a list of column names and returns the features
for those columns in the given order, or an error if a column is missing
from the table.
*/
func Resolve(t *table.Table, names []string) ([]Feature, error) {
	features := make([]Feature, 0, len(names))
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			return nil, fmt.Errorf("feature %q: column not found", n)
		}
		features = append(features, New(c))
	}
	return features, nil
}

/*
Columns takes a table and a list of features and returns the columns the
features refer to. An error is returned if a column is missing or its kind
does not match the kind of the feature, except for Int and Float which are
interchangeable.
*/
func Columns(t *table.Table, features []Feature) ([]table.Column, error) {
	columns := make([]table.Column, len(features))
	for i, f := range features {
		c, ok := t.Column(f.Name)
		if !ok {
			return nil, fmt.Errorf("feature %q: column not found", f.Name)
		}
		if c.Kind() != f.Kind && !(c.Kind().Numeric() && f.Kind.Numeric()) {
			return nil, fmt.Errorf("feature %q: expected %v column, got %v", f.Name, f.Kind, c.Kind())
		}
		columns[i] = c
	}
	return columns, nil
}

func (f Feature) String() string {
	return fmt.Sprintf("%s (%v)", f.Name, f.Kind)
}
