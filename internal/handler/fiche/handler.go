package fiche

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/middleware"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/fiche"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *fiche.Service
}

func NewHandler(service *fiche.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/patients/:id/fiche", h.GetFiche)
	rg.PUT("/patients/:id/fiche", h.UpsertFiche)
}

func (h *Handler) GetFiche(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid patient ID")
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	f, err := h.service.Get(c.Request.Context(), patientID, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, f)
}

func (h *Handler) UpsertFiche(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid patient ID")
		return
	}

	var req model.UpsertFicheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		httputil.RespondWithBadRequest(c, "invalid user context")
		return
	}

	f, err := h.service.Upsert(c.Request.Context(), patientID, &req, actor)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, f)
}
