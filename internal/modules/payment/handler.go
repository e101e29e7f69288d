package payment

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"venuebook/internal/modules/booking"
	"venuebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/manage/:token/pay-balance", h.PayBalance)
	rg.POST("/webhooks/stripe", h.Webhook)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/deposit-checkout", h.DepositCheckout)
}

func (h *Handler) DepositCheckout(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	session, err := h.service.CreateDepositCheckout(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) PayBalance(c *gin.Context) {
	session, err := h.service.CreateBalanceCheckout(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, session)
}

func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable payload")
		return
	}

	err = h.service.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Webhook signature verification failed")
			return
		}
		log.Printf("level=error msg=webhook processing failed err=%v", err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Webhook processing failed")
		return
	}
	c.String(http.StatusOK, "ok")
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotEvent), errors.Is(err, ErrNothingDue):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, booking.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, booking.ErrTokenExpired):
		response.Error(c, http.StatusGone, "LINK_EXPIRED", "This management link has expired")
	default:
		log.Printf("level=error msg=payment request failed path=%s err=%v", c.FullPath(), err)
		response.Error(c, http.StatusInternalServerError, "PAYMENT_ERROR", "Payment provider is unavailable")
	}
}
