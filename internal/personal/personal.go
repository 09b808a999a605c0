// Package personal manages the roster of employees identified by their
// 8-digit national ID (DNI).
package personal

import (
	"errors"
	"regexp"
)

// Person is one roster entry. The DNI is immutable once created.
type Person struct {
	DNI      string `json:"dni"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

var (
	ErrNoEncontrado = errors.New("Personal no encontrado")
	ErrDuplicado    = errors.New("Ya existe un personal con ese DNI")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
	Valor   string `json:"valor"`
}

// ValidationError aggregates field-level validation failures.
type ValidationError struct {
	Detalles []FieldError
}

func (e *ValidationError) Error() string { return "Datos inválidos" }

// NewValidationError builds a single-field validation error.
func NewValidationError(campo, mensaje, valor string) *ValidationError {
	return &ValidationError{Detalles: []FieldError{{Campo: campo, Mensaje: mensaje, Valor: valor}}}
}

var (
	dniRe    = regexp.MustCompile(`^\d{8}$`)
	nombreRe = regexp.MustCompile(`^[a-záéíóúñA-ZÁÉÍÓÚÑ\s]+$`)
)

// ValidarDNI checks the 8-digit national ID format.
func ValidarDNI(dni string) *ValidationError {
	if !dniRe.MatchString(dni) {
		return NewValidationError("dni", "DNI debe tener exactamente 8 dígitos", dni)
	}
	return nil
}

func validarNombre(campo, valor, etiqueta string) []FieldError {
	var errs []FieldError
	// Length in runes: accented letters count as one character.
	if n := len([]rune(valor)); n < 2 || n > 100 {
		errs = append(errs, FieldError{campo, etiqueta + " debe tener entre 2 y 100 caracteres", valor})
	}
	if !nombreRe.MatchString(valor) {
		errs = append(errs, FieldError{campo, etiqueta + " solo puede contener letras y espacios", valor})
	}
	return errs
}

// Validar checks a full person record: DNI format plus both name fields.
func Validar(p Person) *ValidationError {
	var detalles []FieldError
	if err := ValidarDNI(p.DNI); err != nil {
		detalles = append(detalles, err.Detalles...)
	}
	detalles = append(detalles, validarNombre("nombre", p.Nombre, "Nombre")...)
	detalles = append(detalles, validarNombre("apellido", p.Apellido, "Apellido")...)
	if len(detalles) > 0 {
		return &ValidationError{Detalles: detalles}
	}
	return nil
}
