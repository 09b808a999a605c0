package asistencia

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"asistencia/internal/personal"
)

type tripleKey struct {
	dni, tipo, fecha string
}

// Memory is an in-memory Store used by tests. It joins against a roster
// store the same way the SQL queries join against the personal table.
type Memory struct {
	mu        sync.RWMutex
	registros map[tripleKey]Record
	personas  personal.Store
}

// NewMemory creates an empty in-memory ledger over the given roster.
func NewMemory(personas personal.Store) *Memory {
	return &Memory{registros: make(map[tripleKey]Record), personas: personas}
}

func (m *Memory) Upsert(ctx context.Context, rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tripleKey{rec.DNI, rec.Tipo, rec.Fecha}
	if existing, ok := m.registros[key]; ok {
		existing.Hora = rec.Hora
		m.registros[key] = existing
		return existing, nil
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.Nombre, rec.Apellido = "", ""
	m.registros[key] = rec
	return rec, nil
}

func (m *Memory) List(ctx context.Context, fecha string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []Record
	for _, rec := range m.registros {
		if fecha != "" && rec.Fecha != fecha {
			continue
		}
		p, err := m.personas.Get(ctx, rec.DNI)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue // inner join: unresolvable DNIs drop out
		}
		rec.Nombre, rec.Apellido = p.Nombre, p.Apellido
		res = append(res, rec)
	}
	sortNewestFirst(res)
	return res, nil
}

func (m *Memory) ListByDNI(ctx context.Context, dni, fechaInicio, fechaFin string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var res []Record
	for _, rec := range m.registros {
		if rec.DNI != dni {
			continue
		}
		if fechaInicio != "" && fechaFin != "" && (rec.Fecha < fechaInicio || rec.Fecha > fechaFin) {
			continue
		}
		res = append(res, rec)
	}
	sortNewestFirst(res)
	return res, nil
}

func (m *Memory) Report(ctx context.Context, fecha string) ([]ReportRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byDNI := make(map[string]*ReportRow)
	for _, rec := range m.registros {
		if rec.Fecha != fecha {
			continue
		}
		p, err := m.personas.Get(ctx, rec.DNI)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		row, ok := byDNI[rec.DNI]
		if !ok {
			row = &ReportRow{
				DNI:         rec.DNI,
				Nombre:      p.Nombre,
				Apellido:    p.Apellido,
				HoraEntrada: Ausente,
				HoraSalida:  Ausente,
			}
			byDNI[rec.DNI] = row
		}
		switch rec.Tipo {
		case TipoEntrada:
			row.HoraEntrada = rec.Hora
		case TipoSalida:
			row.HoraSalida = rec.Hora
		}
	}

	res := make([]ReportRow, 0, len(byDNI))
	for _, row := range byDNI {
		res = append(res, *row)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Apellido != res[j].Apellido {
			return res[i].Apellido < res[j].Apellido
		}
		return res[i].Nombre < res[j].Nombre
	})
	return res, nil
}

func sortNewestFirst(recs []Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Fecha != recs[j].Fecha {
			return recs[i].Fecha > recs[j].Fecha
		}
		return recs[i].Hora > recs[j].Hora
	})
}
