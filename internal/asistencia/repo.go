package asistencia

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo over an open connection pool.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes a record in a single statement. ON CONFLICT keeps the
// existing row's id and overwrites hora, so concurrent registrations for
// the same triple cannot produce duplicates.
func (r *Repository) Upsert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO asistencias (id, dni, tipo, fecha, hora)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (dni, tipo, fecha) DO UPDATE SET hora = EXCLUDED.hora
		RETURNING id, dni, tipo, fecha::text, hora::text
	`, rec.ID, rec.DNI, rec.Tipo, rec.Fecha, rec.Hora)
	var out Record
	if err := row.Scan(&out.ID, &out.DNI, &out.Tipo, &out.Fecha, &out.Hora); err != nil {
		return Record{}, err
	}
	return out, nil
}

// List returns records joined with person names, optionally filtered to
// one date, ordered fecha desc then hora desc.
func (r *Repository) List(ctx context.Context, fecha string) ([]Record, error) {
	query := `
		SELECT a.id, a.dni, a.tipo, a.hora::text, a.fecha::text, p.nombre, p.apellido
		FROM asistencias a
		JOIN personal p ON a.dni = p.dni
	`
	args := []any{}
	if fecha != "" {
		query += " WHERE a.fecha = $1"
		args = append(args, fecha)
	}
	query += " ORDER BY a.fecha DESC, a.hora DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.DNI, &rec.Tipo, &rec.Hora, &rec.Fecha, &rec.Nombre, &rec.Apellido); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// ListByDNI returns one person's history, optionally bounded by an
// inclusive date range.
func (r *Repository) ListByDNI(ctx context.Context, dni, fechaInicio, fechaFin string) ([]Record, error) {
	query := `
		SELECT a.id, a.dni, a.tipo, a.hora::text, a.fecha::text
		FROM asistencias a
		WHERE a.dni = $1
	`
	args := []any{dni}
	if fechaInicio != "" && fechaFin != "" {
		query += " AND a.fecha BETWEEN $2 AND $3"
		args = append(args, fechaInicio, fechaFin)
	}
	query += " ORDER BY a.fecha DESC, a.hora DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.DNI, &rec.Tipo, &rec.Hora, &rec.Fecha); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Report pivots entrada/salida into one row per person for the date. The
// inner join means only people with at least one record appear; missing
// halves coalesce to the absent marker.
func (r *Repository) Report(ctx context.Context, fecha string) ([]ReportRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.dni,
			p.nombre,
			p.apellido,
			COALESCE(MAX(CASE WHEN a.tipo = 'entrada' THEN a.hora::text END), '-') AS hora_entrada,
			COALESCE(MAX(CASE WHEN a.tipo = 'salida' THEN a.hora::text END), '-') AS hora_salida
		FROM personal p
		JOIN asistencias a ON a.dni = p.dni AND a.fecha = $1
		GROUP BY p.dni, p.nombre, p.apellido
		ORDER BY p.apellido, p.nombre
	`, fecha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []ReportRow
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.DNI, &row.Nombre, &row.Apellido, &row.HoraEntrada, &row.HoraSalida); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}
