/*
Package pgadapter provides an implementation of the Adapter interface
in the sql package that works over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	biosql "github.com/pbanos/irforest/pkg/bio/sql"
	"github.com/pbanos/irforest/sample"
)

const sampleTableCreateStmt = `CREATE TABLE IF NOT EXISTS samples (
	suid TEXT PRIMARY KEY,
	y REAL NOT NULL,
	codes JSONB NOT NULL)`

type adapter struct {
	db *sql.DB
}

// New takes a PostgreSQL database connection URL and returns an
// Adapter over its samples table. New does not connect: an
// unreachable database surfaces as an error from the first query.
func New(url string) (biosql.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) EnsureSchema() error {
	ctx := context.Background()
	createStmt, err := a.db.PrepareContext(ctx, sampleTableCreateStmt)
	if err != nil {
		return fmt.Errorf("preparing samples creation statement: %v", err)
	}
	defer createStmt.Close()
	if _, err := createStmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) IterateSamples(visit func(*sample.Sample) error) error {
	ctx := context.Background()
	rows, err := a.db.QueryContext(ctx, `SELECT suid, y, codes FROM samples`)
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
