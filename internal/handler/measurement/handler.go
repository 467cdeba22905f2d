package measurement

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/measurement"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *measurement.Service
}

func NewHandler(service *measurement.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/measurements")
	{
		g.POST("", h.CreateMeasurement)
	}
	rg.GET("/patients/:id/measurements", h.ListByPatient)
}

func (h *Handler) CreateMeasurement(c *gin.Context) {
	var req model.CreateMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	m, err := h.service.Create(c.Request.Context(), actor.ID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, m)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid patient ID")
		return
	}

	filters := &model.MeasurementFilters{
		PatientID: patientID,
		Type:      model.MeasurementType(c.Query("type")),
		Order:     c.Query("order"),
	}

	measurements, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, measurements)
}
