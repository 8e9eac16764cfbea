/*
Package sql reads historical samples out of a SQL database through a
driver-specific Adapter, for bulk import into a forest. It targets a
fixed samples(suid, y, codes) table rather than an arbitrary
per-deployment feature schema: this domain's sample shape (suid,
target, feature codes) never varies by deployment, so there is no
schema-mapping layer to carry here.
*/
package sql

import "github.com/pbanos/irforest/sample"

// Adapter is implemented by a driver-specific backend (sqlite3,
// PostgreSQL) capable of ensuring the fixed sample table exists and
// streaming its rows.
type Adapter interface {
	// EnsureSchema creates the samples table if it doesn't already
	// exist.
	EnsureSchema() error

	// IterateSamples calls visit once per row of the samples table,
	// in an unspecified order, stopping and returning the first error
	// either the scan or visit produces.
	IterateSamples(visit func(*sample.Sample) error) error

	// Close releases the underlying database connection.
	Close() error
}
