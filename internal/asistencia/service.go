package asistencia

import (
	"context"
	"fmt"

	"asistencia/internal/clock"
	"asistencia/internal/personal"
)

// Service applies the attendance rules: person must exist, tipo is a
// closed enum, fecha/hora come from the Peru clock, and writes go through
// the store's atomic upsert.
type Service struct {
	store    Store
	personas personal.Store
}

// NewService creates a ledger service over an attendance store and the
// roster it validates against.
func NewService(store Store, personas personal.Store) *Service {
	return &Service{store: store, personas: personas}
}

// Registrar records (or overwrites) the entrada/salida for today and
// returns the resulting record, names filled in, plus a confirmation
// message for the client.
func (s *Service) Registrar(ctx context.Context, dni, tipo string) (Record, string, error) {
	if err := personal.ValidarDNI(dni); err != nil {
		return Record{}, "", err
	}
	if err := ValidarTipo(tipo); err != nil {
		return Record{}, "", err
	}

	p, err := s.personas.Get(ctx, dni)
	if err != nil {
		return Record{}, "", err
	}
	if p == nil {
		return Record{}, "", ErrDNINoEncontrado
	}

	fecha, hora := clock.Ahora()
	rec, err := s.store.Upsert(ctx, Record{DNI: dni, Tipo: tipo, Fecha: fecha, Hora: hora})
	if err != nil {
		return Record{}, "", err
	}
	rec.Nombre, rec.Apellido = p.Nombre, p.Apellido

	accion := "Entrada"
	if tipo == TipoSalida {
		accion = "Salida"
	}
	msg := fmt.Sprintf("%s registrada para %s %s a las %s", accion, p.Nombre, p.Apellido, rec.Hora)
	return rec, msg, nil
}

// Listar returns all records joined with names, optionally filtered to
// one date.
func (s *Service) Listar(ctx context.Context, fecha string) ([]Record, error) {
	if fecha != "" {
		if err := ValidarFecha(fecha); err != nil {
			return nil, err
		}
	}
	return s.store.List(ctx, fecha)
}

// ListarPorDNI returns one person's history. The range filter applies
// only when both bounds are present, matching the HTTP contract.
func (s *Service) ListarPorDNI(ctx context.Context, dni, fechaInicio, fechaFin string) ([]Record, error) {
	if err := personal.ValidarDNI(dni); err != nil {
		return nil, err
	}
	if fechaInicio != "" && fechaFin != "" {
		if err := ValidarFecha(fechaInicio); err != nil {
			return nil, err
		}
		if err := ValidarFecha(fechaFin); err != nil {
			return nil, err
		}
	} else {
		fechaInicio, fechaFin = "", ""
	}
	return s.store.ListByDNI(ctx, dni, fechaInicio, fechaFin)
}

// Reporte returns the per-person entrada/salida projection for one date.
// Only people with at least one record that day appear: the report is
// driven by attendance existence, not roster membership.
func (s *Service) Reporte(ctx context.Context, fecha string) ([]ReportRow, error) {
	if err := ValidarFecha(fecha); err != nil {
		return nil, err
	}
	return s.store.Report(ctx, fecha)
}
