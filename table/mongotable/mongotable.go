/*
Package mongotable provides reading and writing of tables from and to
MongoDB collections, one document per row.
*/
package mongotable

import (
	"fmt"
	"sort"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const idField = "_id"

/*
ReadTable takes a MongoDB session, the name of a collection on the default
database of the session and the fields to read, and returns a table with a
column per field and a row per document. If no fields are given, the fields
of the first document are read, sorted by name, leaving out the document id.
Missing fields are read as empty values and column kinds are inferred as with
table.InferColumn.
*/
func ReadTable(session *mgo.Session, collection string, fields ...string) (*table.Table, error) {
	c := session.DB("").C(collection)
	var docs []bson.M
	err := c.Find(nil).Sort(idField).All(&docs)
	if err != nil {
		return nil, fmt.Errorf("reading collection %s: %v", collection, err)
	}
	if len(fields) == 0 {
		if len(docs) == 0 {
			return nil, fmt.Errorf("collection %s has no documents to take fields from", collection)
		}
		for f := range docs[0] {
			if f != idField {
				fields = append(fields, f)
			}
		}
		sort.Strings(fields)
	}
	columns := make([]table.Column, len(fields))
	for i, f := range fields {
		raw := make([]string, len(docs))
		for j, d := range docs {
			if v, ok := d[f]; ok && v != nil {
				raw[j] = fmt.Sprint(v)
			}
		}
		columns[i] = table.InferColumn(f, raw)
	}
	return table.New(columns...)
}

/*
WriteTable takes a MongoDB session, the name of a collection on the default
database of the session and a table and inserts a document per row of the
table into the collection.
*/
func WriteTable(session *mgo.Session, collection string, t *table.Table) error {
	c := session.DB("").C(collection)
	docs := make([]interface{}, t.RowCount())
	for r := range docs {
		doc := bson.M{}
		for _, col := range t.Columns() {
			v, err := col.ValueAt(r)
			if err != nil {
				return err
			}
			doc[col.Name()] = v
		}
		docs[r] = doc
	}
	if len(docs) == 0 {
		return nil
	}
	err := c.Insert(docs...)
	if err != nil {
		return fmt.Errorf("inserting into collection %s: %v", collection, err)
	}
	return nil
}
