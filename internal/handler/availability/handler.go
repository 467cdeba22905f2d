package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/availability"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/availabilities")
	{
		g.POST("", h.CreateSlot)
		g.PUT("/:id", h.UpdateSlot)
		g.DELETE("/:id", h.DeleteSlot)
	}
	rg.GET("/medecins/:id/availabilities", h.ListByMedecin)
}

func (h *Handler) CreateSlot(c *gin.Context) {
	var req model.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	slot, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, slot)
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid availability ID")
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	slot, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, slot)
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid availability ID")
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListByMedecin(c *gin.Context) {
	medecinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid medecin ID")
		return
	}

	slots, err := h.service.ListByMedecin(c.Request.Context(), medecinID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, slots)
}
