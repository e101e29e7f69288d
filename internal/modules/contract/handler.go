package contract

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/contract", h.Current)
	rg.POST("/bookings/:id/contract/accept", h.Accept)
}

func (h *Handler) Current(c *gin.Context) {
	version, text := h.service.Current()
	response.Success(c, http.StatusOK, gin.H{"version": version, "text": text})
}

type acceptRequest struct {
	SignerName string `json:"signer_name" binding:"required"`
}

func (h *Handler) Accept(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req acceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Accept(c.Request.Context(), id, req.SignerName)
	if err != nil {
		switch {
		case errors.Is(err, ErrSignerRequired), errors.Is(err, ErrNotEvent):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		default:
			log.Printf("level=error msg=contract accept failed booking_id=%d err=%v", id, err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		}
		return
	}
	response.Success(c, http.StatusOK, b)
}
