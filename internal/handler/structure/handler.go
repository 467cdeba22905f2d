package structure

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/service/structure"
	"github.com/telesante/telesante-api/pkg/httputil"
)

type Handler struct {
	service *structure.Service
}

func NewHandler(service *structure.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the read-only structure endpoints. Proximity
// search is public so patients can look up care before logging in.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/structures")
	{
		g.GET("", h.ListStructures)
		g.GET("/nearby", h.NearbyStructures)
		g.GET("/:id", h.GetStructure)
	}
}

// RegisterAdminRoutes wires the write endpoints, mounted behind an
// admin-only group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/structures")
	{
		g.POST("", h.CreateStructure)
		g.DELETE("/:id", h.DeleteStructure)
	}
}

func (h *Handler) CreateStructure(c *gin.Context) {
	var req model.CreateStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	st, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, st)
}

func (h *Handler) ListStructures(c *gin.Context) {
	structures, err := h.service.List(c.Request.Context(), c.Query("kind"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, structures)
}

func (h *Handler) GetStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid structure ID")
		return
	}

	st, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, st)
}

func (h *Handler) NearbyStructures(c *gin.Context) {
	var q model.NearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	results, err := h.service.Nearby(c.Request.Context(), &q)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, results)
}

func (h *Handler) DeleteStructure(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid structure ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
