package catalog

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"venuebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the active catalog to the booking form.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/add-ons", h.ListActive)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/add-ons", h.ListAll)
	rg.POST("/add-ons", h.Create)
	rg.PUT("/add-ons/:id", h.Update)
	rg.DELETE("/add-ons/:id", h.Remove)
}

func (h *Handler) ListActive(c *gin.Context) {
	addons, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, addons)
}

func (h *Handler) ListAll(c *gin.Context) {
	addons, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, addons)
}

type addOnRequest struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int64  `json:"price_cents" binding:"gte=0"`
	SortOrder  int    `json:"sort_order"`
	Active     *bool  `json:"active"`
}

func (h *Handler) Create(c *gin.Context) {
	var req addOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req.Name, req.PriceCents, req.SortOrder)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}
	var req addOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	a, err := h.service.Update(c.Request.Context(), id, req.Name, req.PriceCents, req.SortOrder, active)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}

	deleted, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": deleted, "deactivated": !deleted})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Add-on not found")
	default:
		log.Printf("level=error msg=catalog request failed path=%s err=%v", c.FullPath(), err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
