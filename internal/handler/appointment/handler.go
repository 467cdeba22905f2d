package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/appointment"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/appointments")
	{
		g.POST("", h.CreateAppointment)
		g.GET("", h.ListAppointments)
		g.GET("/:id", h.GetAppointment)
		g.PUT("/:id", h.UpdateAppointment)
		g.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment ID")
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if id := c.Query("medecinId"); id != "" {
		medecinID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid medecin ID")
			return
		}
		filters.MedecinID = medecinID
	}

	if id := c.Query("patientId"); id != "" {
		patientID, err := uuid.Parse(id)
		if err != nil {
			httputil.RespondWithBadRequest(c, "invalid patient ID")
			return
		}
		filters.PatientID = patientID
	}

	if statut := c.Query("statut"); statut != "" {
		filters.Statut = model.AppointmentStatus(statut)
	}

	filters.Order = c.DefaultQuery("order", model.SortAscending)

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment ID")
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	apt, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid appointment ID")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	apt, err := h.service.SetStatus(c.Request.Context(), id, req.Statut, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}
