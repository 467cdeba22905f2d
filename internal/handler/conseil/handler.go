package conseil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/conseil"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *conseil.Service
}

func NewHandler(service *conseil.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/conseils")
	{
		g.POST("", h.CreateConseil)
		g.DELETE("/:id", h.DeleteConseil)
	}
	rg.GET("/patients/:id/conseils", h.ListByPatient)
}

func (h *Handler) CreateConseil(c *gin.Context) {
	var req model.CreateConseilRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	cs, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, cs)
}

func (h *Handler) DeleteConseil(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid conseil ID")
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

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid patient ID")
		return
	}

	conseils, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, conseils)
}
