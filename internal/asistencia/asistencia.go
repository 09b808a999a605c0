// Package asistencia records entry/exit attendance events per person per
// calendar day and answers the roster and report queries over them.
package asistencia

import (
	"errors"
	"time"

	"asistencia/internal/personal"
)

// Record kinds. The enumeration is closed: nothing else is accepted.
const (
	TipoEntrada = "entrada"
	TipoSalida  = "salida"
)

var (
	ErrDNINoEncontrado = errors.New("DNI no encontrado en el sistema")
	ErrTipoInvalido    = errors.New(`Tipo debe ser "entrada" o "salida"`)
)

// Record is one attendance event. At most one record exists per
// (dni, tipo, fecha); a second write overwrites hora on the existing row.
type Record struct {
	ID       string `json:"id"`
	DNI      string `json:"dni"`
	Tipo     string `json:"tipo"`
	Hora     string `json:"hora"`
	Fecha    string `json:"fecha"`
	Nombre   string `json:"nombre,omitempty"`
	Apellido string `json:"apellido,omitempty"`
}

// ReportRow is one line of the daily report. Missing halves of the
// entrada/salida pair show as "-".
type ReportRow struct {
	DNI         string `json:"dni"`
	Nombre      string `json:"nombre"`
	Apellido    string `json:"apellido"`
	HoraEntrada string `json:"hora_entrada"`
	HoraSalida  string `json:"hora_salida"`
}

// Ausente marks the missing half of an entrada/salida pair in reports.
const Ausente = "-"

// ValidarTipo checks the closed tipo enumeration.
func ValidarTipo(tipo string) error {
	if tipo != TipoEntrada && tipo != TipoSalida {
		return ErrTipoInvalido
	}
	return nil
}

// ValidarFecha checks a YYYY-MM-DD date parameter for format and calendar
// validity.
func ValidarFecha(fecha string) *personal.ValidationError {
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return personal.NewValidationError("fecha", "Fecha debe estar en formato YYYY-MM-DD", fecha)
	}
	return nil
}
