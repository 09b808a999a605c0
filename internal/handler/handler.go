// Package handler binds the HTTP surface to the auth, personal and
// asistencia services.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"asistencia/internal/asistencia"
	"asistencia/internal/auth"
	"asistencia/internal/metrics"
	"asistencia/internal/personal"
	"asistencia/internal/report"
	"asistencia/internal/store"
)

type Handler struct {
	authority *auth.Authority
	personas  *personal.Service
	ledger    *asistencia.Service
	cache     *store.Redis // nil when redis is not configured
	metrics   *metrics.Metrics
	company   string
	cacheTTL  time.Duration
}

func New(authority *auth.Authority, personas *personal.Service, ledger *asistencia.Service,
	cache *store.Redis, m *metrics.Metrics, company string, cacheTTL time.Duration) *Handler {
	return &Handler{
		authority: authority,
		personas:  personas,
		ledger:    ledger,
		cache:     cache,
		metrics:   m,
		company:   company,
		cacheTTL:  cacheTTL,
	}
}

// RegisterRoutes mounts the public login route and the protected API
// behind the bearer-token gate.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", h.Login)

	authd := r.Group("/", auth.RequireAuth(h.authority))
	authd.GET("/auth/validate", h.ValidateToken)

	authd.GET("/personal", h.ListPersonal)
	authd.GET("/personal/:dni", h.GetPersonal)
	authd.POST("/personal", h.CreatePersonal)
	authd.PUT("/personal/:dni", h.UpdatePersonal)
	authd.DELETE("/personal/:dni", h.DeletePersonal)

	authd.GET("/asistencias", h.ListAsistencias)
	authd.GET("/asistencias/reporte/:fecha", h.Reporte)
	authd.GET("/asistencias/reporte/:fecha/pdf", h.ReportePDF)
	authd.GET("/asistencias/empleado/:dni", h.AsistenciasPorEmpleado)
	authd.POST("/asistencias", h.RegistrarAsistencia)
}

// ---------- Auth ----------

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuario y contraseña requeridos"})
		return
	}

	token, err := h.authority.Login(req.Username, req.Password)
	if err != nil {
		h.metrics.LoginFailed()
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrCredenciales.Error()})
		return
	}
	h.metrics.LoginOK()

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login exitoso",
		"token":     token,
		"expiresIn": formatTTL(h.authority.TTL()),
	})
}

func (h *Handler) ValidateToken(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": claims})
}

// ---------- Personal ----------

type personalRequest struct {
	DNI      string `json:"dni"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

func (h *Handler) ListPersonal(c *gin.Context) {
	personas, err := h.personas.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if personas == nil {
		personas = []personal.Person{}
	}
	c.JSON(http.StatusOK, personas)
}

func (h *Handler) GetPersonal(c *gin.Context) {
	p, err := h.personas.Get(c.Request.Context(), c.Param("dni"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePersonal(c *gin.Context) {
	var req personalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
		return
	}
	p, err := h.personas.Create(c.Request.Context(), personal.Person{
		DNI: req.DNI, Nombre: req.Nombre, Apellido: req.Apellido,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePersonal(c *gin.Context) {
	var req personalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Todos los campos son requeridos"})
		return
	}
	p, err := h.personas.Update(c.Request.Context(), c.Param("dni"), req.Nombre, req.Apellido)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePersonal(c *gin.Context) {
	p, err := h.personas.Delete(c.Request.Context(), c.Param("dni"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Personal eliminado exitosamente", "personal": p})
}

// ---------- Asistencias ----------

type registrarRequest struct {
	DNI  string `json:"dni"`
	Tipo string `json:"tipo"`
}

func (h *Handler) RegistrarAsistencia(c *gin.Context) {
	var req registrarRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DNI == "" || req.Tipo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DNI y tipo son requeridos"})
		return
	}

	rec, msg, err := h.ledger.Registrar(c.Request.Context(), req.DNI, req.Tipo)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.metrics.Registro(rec.Tipo)
	h.cache.InvalidateReporte(c.Request.Context(), rec.Fecha)

	c.JSON(http.StatusCreated, struct {
		asistencia.Record
		Message string `json:"message"`
	}{rec, msg})
}

func (h *Handler) ListAsistencias(c *gin.Context) {
	recs, err := h.ledger.Listar(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if recs == nil {
		recs = []asistencia.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) AsistenciasPorEmpleado(c *gin.Context) {
	recs, err := h.ledger.ListarPorDNI(c.Request.Context(),
		c.Param("dni"), c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if recs == nil {
		recs = []asistencia.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) Reporte(c *gin.Context) {
	fecha := c.Param("fecha")
	if err := asistencia.ValidarFecha(fecha); err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.Reportes.Inc()
	if payload, ok := h.cache.GetReporte(c.Request.Context(), fecha); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	rows, err := h.ledger.Reporte(c.Request.Context(), fecha)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rows == nil {
		rows = []asistencia.ReportRow{}
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.cache.SetReporte(c.Request.Context(), fecha, payload, h.cacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *Handler) ReportePDF(c *gin.Context) {
	fecha := c.Param("fecha")
	if err := asistencia.ValidarFecha(fecha); err != nil {
		h.fail(c, err)
		return
	}

	rows, err := h.ledger.Reporte(c.Request.Context(), fecha)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=asistencia-%s.pdf", fecha))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	err = report.Render(c.Writer, rows, report.Options{
		Empresa:        h.company,
		Fecha:          fecha,
		Responsable:    c.Query("responsable"),
		DNIResponsable: c.Query("dniResponsable"),
	})
	if err != nil {
		log.Printf("error al generar PDF: %v", err)
		return
	}
	h.metrics.ReportePDF.Inc()
}

// ---------- Error mapping ----------

// fail translates service errors to the HTTP taxonomy. Anything
// unexpected is logged and collapsed into a generic 500 body.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *personal.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "details": verr.Detalles})
	case errors.Is(err, asistencia.ErrTipoInvalido):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, personal.ErrNoEncontrado), errors.Is(err, asistencia.ErrDNINoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, personal.ErrDuplicado):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("error interno: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
	}
}

func formatTTL(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	return d.String()
}
