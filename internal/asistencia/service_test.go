package asistencia

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asistencia/internal/clock"
	"asistencia/internal/personal"
)

func fixedClock(t *testing.T, instant time.Time) {
	t.Helper()
	orig := clock.Now
	clock.Now = func() time.Time { return instant }
	t.Cleanup(func() { clock.Now = orig })
}

func newTestService(t *testing.T) (*Service, *personal.Memory) {
	t.Helper()
	personas := personal.NewMemory()
	require.NoError(t, personas.Create(context.Background(), personal.Person{
		DNI: "12345678", Nombre: "Juan", Apellido: "Pérez",
	}))
	return NewService(NewMemory(personas), personas), personas
}

func TestRegistrarStampsPeruClock(t *testing.T) {
	// 2024-03-10 03:30 UTC is 2024-03-09 22:30 in Peru.
	fixedClock(t, time.Date(2024, 3, 10, 3, 30, 0, 0, time.UTC))
	svc, _ := newTestService(t)

	rec, msg, err := svc.Registrar(context.Background(), "12345678", TipoEntrada)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", rec.Fecha)
	assert.Equal(t, "22:30:00", rec.Hora)
	assert.Equal(t, "Juan", rec.Nombre)
	assert.Equal(t, "Pérez", rec.Apellido)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Entrada registrada para Juan Pérez a las 22:30:00", msg)
}

func TestRegistrarTwiceOverwritesHora(t *testing.T) {
	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	fixedClock(t, time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC))
	second, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	// Same row: the second write keeps the id and replaces the time.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "09:30:00", second.Hora)

	list, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "09:30:00", list[0].Hora)
}

func TestRegistrarEntradaAndSalidaAreDistinct(t *testing.T) {
	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	svc, _ := newTestService(t)
	ctx := context.Background()

	entrada, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)
	salida, msg, err := svc.Registrar(ctx, "12345678", TipoSalida)
	require.NoError(t, err)

	assert.NotEqual(t, entrada.ID, salida.ID)
	assert.Contains(t, msg, "Salida registrada")

	list, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRegistrarUnknownDNI(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Registrar(context.Background(), "99999999", TipoEntrada)
	assert.ErrorIs(t, err, ErrDNINoEncontrado)
}

func TestRegistrarBadInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Registrar(ctx, "12345678", "descanso")
	assert.ErrorIs(t, err, ErrTipoInvalido)

	var verr *personal.ValidationError
	_, _, err = svc.Registrar(ctx, "123", TipoEntrada)
	assert.ErrorAs(t, err, &verr)
}

func TestReporteEmptyDate(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.Reporte(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReporteEntradaOnlyShowsAbsentSalida(t *testing.T) {
	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	rows, err := svc.Reporte(ctx, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "08:00:00", rows[0].HoraEntrada)
	assert.Equal(t, Ausente, rows[0].HoraSalida)
}

func TestReporteExcludesPeopleWithoutRecords(t *testing.T) {
	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	svc, personas := newTestService(t)
	ctx := context.Background()

	// Second person on the roster, never clocks in.
	require.NoError(t, personas.Create(ctx, personal.Person{
		DNI: "87654321", Nombre: "Ana", Apellido: "García",
	}))

	_, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	rows, err := svc.Reporte(ctx, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12345678", rows[0].DNI)
}

func TestReporteOrderedByApellido(t *testing.T) {
	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	svc, personas := newTestService(t)
	ctx := context.Background()

	require.NoError(t, personas.Create(ctx, personal.Person{
		DNI: "87654321", Nombre: "Ana", Apellido: "García",
	}))
	_, _, err := svc.Registrar(ctx, "12345678", TipoEntrada) // Pérez
	require.NoError(t, err)
	_, _, err = svc.Registrar(ctx, "87654321", TipoSalida) // García
	require.NoError(t, err)

	rows, err := svc.Reporte(ctx, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "García", rows[0].Apellido)
	assert.Equal(t, "Pérez", rows[1].Apellido)
	assert.Equal(t, Ausente, rows[0].HoraEntrada)
}

func TestListarFiltersByFecha(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	_, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	fixedClock(t, time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC))
	_, _, err = svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	all, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, "2024-03-11", all[0].Fecha)

	one, err := svc.Listar(ctx, "2024-03-10")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "2024-03-10", one[0].Fecha)

	_, err = svc.Listar(ctx, "10/03/2024")
	var verr *personal.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListarPorDNIRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for day := 10; day <= 12; day++ {
		fixedClock(t, time.Date(2024, 3, day, 13, 0, 0, 0, time.UTC))
		_, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
		require.NoError(t, err)
	}

	inRange, err := svc.ListarPorDNI(ctx, "12345678", "2024-03-10", "2024-03-11")
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	// A single bound is ignored: the range applies only when complete.
	all, err := svc.ListarPorDNI(ctx, "12345678", "2024-03-10", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistoriaSurvivesDelete(t *testing.T) {
	fixedClock(t, time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC))
	svc, personas := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Registrar(ctx, "12345678", TipoEntrada)
	require.NoError(t, err)

	_, err = personas.Delete(ctx, "12345678")
	require.NoError(t, err)

	// Per-person history still returns the rows even though the DNI no
	// longer resolves to a person.
	history, err := svc.ListarPorDNI(ctx, "12345678", "", "")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	// The joined listing drops them, like the SQL inner join.
	list, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}
