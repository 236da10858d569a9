package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// currencyColumns are loaded as numeric after stripping "$" and thousands
// separators. A cell that still fails to parse becomes missing, not a
// load failure.
var currencyColumns = map[string]bool{
	"amount":         true,
	"oldbalanceOrg":  true,
	"newbalanceOrig": true,
	"oldbalanceDest": true,
	"newbalanceDest": true,
}

// flagColumns are coerced to numeric when present.
var flagColumns = map[string]bool{
	"isFraud":        true,
	"isFlaggedFraud": true,
}

// defaultRelPath is the dataset location relative to the install root or
// the working directory.
const defaultRelPath = "data/transactions.csv"

// Loader reads the transactions CSV and publishes it to the store.
type Loader struct {
	store    *Store
	override string // explicit path, wins over the search order when set
	logger   *zap.Logger
}

// NewLoader creates a loader. An empty override enables the default path
// search order.
func NewLoader(store *Store, override string, logger *zap.Logger) *Loader {
	return &Loader{store: store, override: override, logger: logger}
}

// Load resolves the CSV path, parses it, and publishes the resulting table.
// Every failure is logged and reported as false; the store keeps its
// previous table (the empty one on first load). Load never panics and never
// propagates an error to its caller.
func (l *Loader) Load() bool {
	path, err := l.resolvePath()
	if err != nil {
		l.logger.Error("dataset file not found", zap.Error(err))
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		l.logger.Error("dataset open failed", zap.String("path", path), zap.Error(err))
		return false
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		l.logger.Error("dataset parse failed", zap.String("path", path), zap.Error(err))
		return false
	}

	l.store.Publish(table)
	l.logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns())),
		zap.String("snapshot_id", table.SnapshotID()),
	)
	return true
}

// resolvePath applies the search order: explicit override, then the install
// root (next to the executable), then the working directory. First existing
// path wins.
func (l *Loader) resolvePath() (string, error) {
	var candidates []string
	if l.override != "" {
		candidates = append(candidates, l.override)
	}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), defaultRelPath))
	}
	candidates = append(candidates, defaultRelPath)

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("no dataset file among %v", candidates)
}

// Parse reads a CSV stream into a table: column names are trimmed, currency
// and flag columns are coerced to numeric, remaining columns get their type
// inferred, and missing values are filled per column type (0 for numeric,
// "" for text).
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; short rows read as missing

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]string, len(header))
	for i, name := range header {
		cols[i] = strings.TrimSpace(name)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	kinds := detectKinds(cols, records)

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(cols))
		for i, col := range cols {
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			if kinds[col] == KindNumeric {
				row[col] = parseNumeric(col, cell)
			} else {
				row[col] = cell
			}
		}
		rows = append(rows, row)
	}

	return NewTable(cols, kinds, rows), nil
}

// detectKinds decides the loaded type of each column. Currency and flag
// columns are always numeric; any other column is numeric when every
// non-empty cell parses as a number.
func detectKinds(cols []string, records [][]string) map[string]Kind {
	kinds := make(map[string]Kind, len(cols))
	for i, col := range cols {
		if currencyColumns[col] || flagColumns[col] {
			kinds[col] = KindNumeric
			continue
		}

		kind := KindText
		seen := false
		numeric := true
		for _, rec := range records {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(rec[i], 64); err != nil {
				numeric = false
				break
			}
		}
		if seen && numeric {
			kind = KindNumeric
		}
		kinds[col] = kind
	}
	return kinds
}

// parseNumeric converts one cell to float64. Currency columns get "$" and
// "," stripped first. Anything unparseable is a missing value and fills
// as 0.
func parseNumeric(col, cell string) float64 {
	cell = strings.TrimSpace(cell)
	if currencyColumns[col] {
		cell = strings.ReplaceAll(cell, "$", "")
		cell = strings.ReplaceAll(cell, ",", "")
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return f
}
