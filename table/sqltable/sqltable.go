/*
Package sqltable provides reading and writing of tables from and to SQL
databases, SQLite3 files and PostgreSQL servers.
*/
package sqltable

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dineshmanideep/Parallel-random-forest/table"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// DefaultTableName is the name of the SQL table read when none is given.
const DefaultTableName = "samples"

/*
DB is a SQL database tables can be read from and written to.
*/
type DB struct {
	*sql.DB
	driver string
}

/*
IsPostgreSQLURL returns whether the given data source is a PostgreSQL
connection URL.
*/
func IsPostgreSQLURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "postgres://")
}

/*
Open takes a data source, either a PostgreSQL connection URL or the path to
an SQLite3 database file, and a limit to the connections opened at a time (0
for no limit) and returns a DB over it or an error.
*/
func Open(dsn string, maxConns int) (*DB, error) {
	driver := "sqlite3"
	if IsPostgreSQLURL(dsn) {
		driver = "postgres"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %v", driver, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &DB{db, driver}, nil
}

/*
ReadTable takes a context and the name of a SQL table and returns all its
rows as a table. Column kinds are inferred from the values as with
table.InferColumn, NULL values being read as empty values.
*/
func (db *DB) ReadTable(ctx context.Context, name string) (*table.Table, error) {
	qname, err := quote(name)
	if err != nil {
		return nil, err
	}
	return db.ReadQuery(ctx, fmt.Sprintf("SELECT * FROM %s", qname))
}

/*
ReadQuery takes a context, a query and its arguments and returns the rows
it yields as a table.
*/
func (db *DB) ReadQuery(ctx context.Context, query string, args ...interface{}) (*table.Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query %q: %v", query, err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("retrieving columns of query %q: %v", query, err)
	}
	raw := make([][]string, len(names))
	values := make([]sql.NullString, len(names))
	dest := make([]interface{}, len(names))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %v", err)
		}
		for i, v := range values {
			raw[i] = append(raw[i], v.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %v", err)
	}
	columns := make([]table.Column, len(names))
	for i, n := range names {
		columns[i] = table.InferColumn(n, raw[i])
	}
	return table.New(columns...)
}

/*
WriteTable takes a context, a name and a table and creates a SQL table with
that name holding the rows of the table. An error is returned if the SQL
table already exists or the rows cannot be inserted.
*/
func (db *DB) WriteTable(ctx context.Context, name string, t *table.Table) error {
	qname, err := quote(name)
	if err != nil {
		return err
	}
	var createStmtBuf bytes.Buffer
	fmt.Fprintf(&createStmtBuf, "CREATE TABLE %s(", qname)
	qcols := make([]string, len(t.Columns()))
	placeholders := make([]string, len(t.Columns()))
	for i, c := range t.Columns() {
		qcols[i], err = quote(c.Name())
		if err != nil {
			return err
		}
		placeholders[i] = db.placeholder(i + 1)
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		fmt.Fprintf(&createStmtBuf, "%s %s", qcols[i], db.sqlType(c.Kind()))
	}
	createStmtBuf.WriteString(")")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %v", err)
	}
	defer tx.Rollback()
	if _, err = tx.ExecContext(ctx, createStmtBuf.String()); err != nil {
		return fmt.Errorf("creating table %s: %v", qname, err)
	}
	insertStmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s(%s) VALUES (%s)", qname, strings.Join(qcols, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return fmt.Errorf("preparing insert statement: %v", err)
	}
	defer insertStmt.Close()
	args := make([]interface{}, len(t.Columns()))
	for r := 0; r < t.RowCount(); r++ {
		for i, c := range t.Columns() {
			if args[i], err = c.ValueAt(r); err != nil {
				return err
			}
		}
		if _, err = insertStmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d: %v", r, err)
		}
	}
	return tx.Commit()
}

func (db *DB) placeholder(i int) string {
	if db.driver == "postgres" {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func (db *DB) sqlType(k table.Kind) string {
	switch k {
	case table.Int:
		return "INTEGER"
	case table.Float:
		if db.driver == "postgres" {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	}
	return "TEXT"
}

func quote(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as SQL identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
