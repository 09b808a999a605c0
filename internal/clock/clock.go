// Package clock produces wall-clock date and time strings in Peru local
// time (UTC-5, no DST). Attendance rows are stamped with these values so
// the records read the same no matter which timezone the server runs in.
package clock

import "time"

var zonaPeru = time.FixedZone("PET", -5*60*60)

// Now returns the current instant; swapped in tests for a fixed one.
var Now = time.Now

// Ahora returns the current Peru date (YYYY-MM-DD) and time (HH:MM:SS).
func Ahora() (fecha, hora string) {
	t := Now().In(zonaPeru)
	return t.Format("2006-01-02"), t.Format("15:04:05")
}

// Fecha returns the current Peru date in YYYY-MM-DD format.
func Fecha() string {
	fecha, _ := Ahora()
	return fecha
}

// Hora returns the current Peru time in HH:MM:SS format.
func Hora() string {
	_, hora := Ahora()
	return hora
}
