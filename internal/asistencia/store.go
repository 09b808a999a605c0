package asistencia

import "context"

// Store persists attendance records. Upsert must be atomic: the
// (dni, tipo, fecha) uniqueness and the overwrite-on-conflict are enforced
// at the store, not by a read-then-write pair in the caller.
type Store interface {
	// Upsert inserts the record or, when the (dni, tipo, fecha) triple
	// already exists, overwrites hora on the existing row. The returned
	// record carries the surviving row's ID.
	Upsert(ctx context.Context, rec Record) (Record, error)
	// List returns all records joined with person names, newest first.
	// An empty fecha means no date filter.
	List(ctx context.Context, fecha string) ([]Record, error)
	// ListByDNI returns one person's records, optionally bounded by an
	// inclusive date range (both bounds set, or both empty), newest first.
	ListByDNI(ctx context.Context, dni, fechaInicio, fechaFin string) ([]Record, error)
	// Report returns one row per person with at least one record on the
	// date, ordered by apellido then nombre.
	Report(ctx context.Context, fecha string) ([]ReportRow, error)
}
