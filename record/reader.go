package record

import (
	"database/sql"
	"fmt"
)

// A Reader reads back the tables written by a Recorder.
type Reader interface {
	// ListTables returns the names of all tables in the database.
	ListTables() ([]string, error)

	// ReadAll returns every row of a table as column-name-to-value maps,
	// together with the column order.
	ReadAll(tableName string) (columns []string, rows []map[string]any,
		err error)

	// Close closes the underlying database.
	Close() error
}

type sqliteReader struct {
	*sql.DB
}

// NewReader opens the database file at path for reading.
func NewReader(path string) (Reader, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("record: opening %s: %w", path, err)
	}

	return &sqliteReader{DB: db}, nil
}

// NewReaderWithDB creates a Reader on an already-open database.
func NewReaderWithDB(db *sql.DB) Reader {
	return &sqliteReader{DB: db}
}

func (r *sqliteReader) ListTables() ([]string, error) {
	rows, err := r.Query(
		"SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *sqliteReader) ReadAll(tableName string) (
	[]string, []map[string]any, error,
) {
	rows, err := r.Query("SELECT * FROM " + tableName)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var result []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			// Text columns come back as byte slices.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	return columns, result, rows.Err()
}
