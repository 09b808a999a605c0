package personal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Repository is the Postgres-backed roster store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo over an open connection pool.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns the whole roster ordered by apellido, nombre.
func (r *Repository) List(ctx context.Context) ([]Person, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT dni, nombre, apellido
		FROM personal
		ORDER BY apellido, nombre
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personas []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.DNI, &p.Nombre, &p.Apellido); err != nil {
			return nil, err
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

// Get returns one person by DNI, or nil when absent.
func (r *Repository) Get(ctx context.Context, dni string) (*Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT dni, nombre, apellido FROM personal WHERE dni = $1
	`, dni)
	var p Person
	if err := row.Scan(&p.DNI, &p.Nombre, &p.Apellido); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new person. A unique violation on the DNI primary key
// maps to ErrDuplicado.
func (r *Repository) Create(ctx context.Context, p Person) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO personal (dni, nombre, apellido)
		VALUES ($1, $2, $3)
	`, p.DNI, p.Nombre, p.Apellido)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicado
	}
	return err
}

// Update rewrites the name fields of an existing person; the DNI itself is
// never touched. Returns nil when the DNI is absent.
func (r *Repository) Update(ctx context.Context, p Person) (*Person, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE personal SET nombre = $1, apellido = $2
		WHERE dni = $3
		RETURNING dni, nombre, apellido
	`, p.Nombre, p.Apellido, p.DNI)
	var out Person
	if err := row.Scan(&out.DNI, &out.Nombre, &out.Apellido); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes a person and returns the removed row, or nil when absent.
// Attendance history keeps its rows; there is no cascade.
func (r *Repository) Delete(ctx context.Context, dni string) (*Person, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM personal WHERE dni = $1
		RETURNING dni, nombre, apellido
	`, dni)
	var p Person
	if err := row.Scan(&p.DNI, &p.Nombre, &p.Apellido); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
