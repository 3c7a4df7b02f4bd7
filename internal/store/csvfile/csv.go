// Package csvfile persists application data as small CSV files, one file per
// record type. Readers tolerate files written by older revisions of the app:
// emails get re-normalized and missing trailing columns are backfilled on
// every load. There is no cross-process locking; concurrent writers race
// last-write-wins, which the deployment accepts for a single-host app.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readRows returns the data rows of a CSV file, header stripped. A missing,
// unreadable, or malformed file yields (nil, nil, err): callers degrade to an
// empty data set and at most log the error, they never surface it.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	// First row is the header, required by the on-disk format.
	return rows[1:], nil
}

// writeRowsAtomic overwrites path with header+rows via a temp file and
// rename, so readers never observe a partial file.
func writeRowsAtomic(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// col returns row[i] or "" when the row is too short. Older writers dropped
// trailing columns, so short rows are normal.
func col(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
