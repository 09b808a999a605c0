package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application counters exposed at /metrics. Counters
// live on their own registry so constructing a second Metrics (tests)
// never collides with the default one.
type Metrics struct {
	registry *prometheus.Registry

	Logins     *prometheus.CounterVec
	Registros  *prometheus.CounterVec
	Reportes   prometheus.Counter
	ReportePDF prometheus.Counter
}

// New creates and registers the counters.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		Registros: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "asistencia_registros_total",
			Help: "Attendance registrations by tipo",
		}, []string{"tipo"}),
		Reportes: factory.NewCounter(prometheus.CounterOpts{
			Name: "asistencia_reportes_total",
			Help: "Daily reports served",
		}),
		ReportePDF: factory.NewCounter(prometheus.CounterOpts{
			Name: "asistencia_reportes_pdf_total",
			Help: "Printable PDF sheets rendered",
		}),
	}
}

// Handler exposes the registry for the /metrics route.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) LoginOK()          { m.Logins.WithLabelValues("ok").Inc() }
func (m *Metrics) LoginFailed()      { m.Logins.WithLabelValues("failed").Inc() }
func (m *Metrics) Registro(t string) { m.Registros.WithLabelValues(t).Inc() }
