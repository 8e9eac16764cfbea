package sqlite3adapter

import (
	"database/sql"
	"encoding/json"
	"fmt"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	biosql "github.com/pbanos/irforest/pkg/bio/sql"
	"github.com/pbanos/irforest/sample"
)

const sampleTableCreateStmt = `CREATE TABLE IF NOT EXISTS samples (
	suid TEXT PRIMARY KEY,
	y REAL NOT NULL,
	codes TEXT NOT NULL)`

type adapter struct {
	db *sql.DB
}

// New takes a path to an SQLite3 database file and returns an Adapter
// over its samples table. New does not open the file: a file that
// can't be used as an sqlite3 database surfaces as an error from the
// first query.
func New(path string) (biosql.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) EnsureSchema() error {
	if _, err := a.db.Exec(sampleTableCreateStmt); err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) IterateSamples(visit func(*sample.Sample) error) error {
	rows, err := a.db.Query(`SELECT suid, y, codes FROM samples`)
	if err != nil {
		return fmt.Errorf("querying samples: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var suid, codesJSON string
		var y float64
		if err := rows.Scan(&suid, &y, &codesJSON); err != nil {
			return fmt.Errorf("scanning sample row: %v", err)
		}
		codes := make(map[int]float64)
		if err := json.Unmarshal([]byte(codesJSON), &codes); err != nil {
			return fmt.Errorf("decoding codes for sample %q: %v", suid, err)
		}
		if err := visit(&sample.Sample{SUID: suid, Y: y, XCodes: codes}); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}
