package alert

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/alert"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *alert.Service
}

func NewHandler(service *alert.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/alerts")
	{
		g.POST("", h.RaiseAlert)
		g.GET("", h.ListOpenAlerts)
		g.POST("/:id/close", h.CloseAlert)
	}
}

func (h *Handler) RaiseAlert(c *gin.Context) {
	var req model.RaiseAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	a, err := h.service.Raise(c.Request.Context(), actor.ID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, a)
}

func (h *Handler) ListOpenAlerts(c *gin.Context) {
	alerts, err := h.service.ListOpen(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, alerts)
}

func (h *Handler) CloseAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid alert ID")
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	a, err := h.service.Close(c.Request.Context(), id, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, a)
}
