// Package dataset holds the in-memory transaction table: the CSV loader,
// the detected schema, and the process-wide store every service reads from.
package dataset

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Kind is the type of a column after loading.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
)

// Row is one record of the table. Values are float64 for numeric columns
// and string for text columns; missing values have already been filled
// (0 for numeric, "" for text).
type Row map[string]any

// Float returns the numeric value of a column, or false when the column is
// absent or not numeric.
func (r Row) Float(col string) (float64, bool) {
	f, ok := r[col].(float64)
	return f, ok
}

// Text returns the string value of a column, or false when the column is
// absent or not text.
func (r Row) Text(col string) (string, bool) {
	s, ok := r[col].(string)
	return s, ok
}

// String renders any cell value as a string. Numeric values print without
// a trailing ".0" so that id 1 renders as "1".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Table is the single in-memory dataset. It is built once by the loader and
// never mutated afterwards; all services share it read-only.
type Table struct {
	cols       []string
	kinds      map[string]Kind
	rows       []Row
	schema     Schema
	snapshotID string
	loadedAt   time.Time
}

// NewTable assembles an immutable table from already-cleaned rows and
// detects the schema variant. Column names must be trimmed by the caller.
func NewTable(cols []string, kinds map[string]Kind, rows []Row) *Table {
	return &Table{
		cols:       cols,
		kinds:      kinds,
		rows:       rows,
		schema:     DetectSchema(cols, kinds),
		snapshotID: uuid.New().String(),
		loadedAt:   time.Now().UTC(),
	}
}

// Empty returns a table with no rows and no columns. "Never loaded" and
// "loaded but empty" are indistinguishable through it.
func Empty() *Table {
	return &Table{kinds: map[string]Kind{}}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// IsEmpty reports whether the table holds no rows.
func (t *Table) IsEmpty() bool { return len(t.rows) == 0 }

// Columns returns the column names in file order.
func (t *Table) Columns() []string { return t.cols }

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.kinds[col]
	return ok
}

// Kind returns the loaded type of a column.
func (t *Table) Kind(col string) (Kind, bool) {
	k, ok := t.kinds[col]
	return k, ok
}

// Rows returns the backing row slice. Callers must treat it as read-only.
func (t *Table) Rows() []Row { return t.rows }

// Schema returns the detected schema variant.
func (t *Table) Schema() Schema { return t.schema }

// SnapshotID identifies this load of the dataset.
func (t *Table) SnapshotID() string { return t.snapshotID }

// LoadedAt is when this table was published.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }
