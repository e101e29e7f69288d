package booking

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"venuebook/internal/domain"
	"venuebook/internal/modules/availability"
	"venuebook/internal/modules/pricing"
	"venuebook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	avail   *availability.Service
	pricer  *pricing.Service
}

func NewHandler(service *Service, avail *availability.Service, pricer *pricing.Service) *Handler {
	return &Handler{service: service, avail: avail, pricer: pricer}
}

// RegisterPublicRoutes mounts the visitor-facing endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/events", h.CreateEvent)
	rg.POST("/bookings/showings", h.CreateShowing)
	rg.GET("/availability/events/:date", h.EventDateStatus)
	rg.GET("/availability/showings/:date", h.ShowingSlots)
	rg.POST("/pricing/quote", h.Quote)
	rg.GET("/manage/:token", h.ResolveToken)
	rg.POST("/manage/:token/cancel", h.CancelByToken)
}

// RegisterAdminRoutes mounts the endpoints behind the admin session.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.PATCH("/bookings/:id", h.Patch)
	rg.POST("/bookings/:id/status", h.Transition)
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, managementView(b))
}

func (h *Handler) CreateShowing(c *gin.Context) {
	var req CreateShowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateShowing(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, managementView(b))
}

func (h *Handler) EventDateStatus(c *gin.Context) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date")
		return
	}
	status, err := h.avail.EventDateStatus(c.Request.Context(), date, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"date": date.String(), "status": status})
}

func (h *Handler) ShowingSlots(c *gin.Context) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date")
		return
	}
	slots, err := h.avail.ShowingSlots(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, slots)
}

type quoteRequest struct {
	EventDate       string `json:"event_date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	ExtraSetupHours int    `json:"extra_setup_hours"`
}

// Quote prices an event without creating anything; the booking form calls it
// as the visitor edits.
func (h *Handler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	q, err := h.pricer.Calculate(pricing.Input{
		EventDate:       req.EventDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		ExtraSetupHours: req.ExtraSetupHours,
		Type:            domain.BookingEvent,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, q)
}

func (h *Handler) ResolveToken(c *gin.Context) {
	b, err := h.service.ResolveToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) CancelByToken(c *gin.Context) {
	b, err := h.service.CancelByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.ListRange(
		c.Request.Context(),
		c.Query("from"),
		c.Query("to"),
		c.Query("type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Patch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var patch EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateEvent(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Transition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.TransitionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// managementView includes the self-service link data that is otherwise never
// serialized.
func managementView(b *domain.Booking) gin.H {
	return gin.H{
		"booking":          b,
		"management_token": b.ManagementToken,
	}
}

// respondError translates module sentinels into the HTTP taxonomy:
// validation 400, conflicts 409, unknown 404, expired token 410, the rest
// 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrUnknownAddOn),
		errors.Is(err, pricing.ErrBadDateTime),
		errors.Is(err, pricing.ErrEndNotAfterStart),
		errors.Is(err, pricing.ErrCrossDay),
		errors.Is(err, pricing.ErrOutsideHours),
		errors.Is(err, pricing.ErrFractionalDuration),
		errors.Is(err, pricing.ErrWeekendMinimum),
		errors.Is(err, pricing.ErrSetupOnShowing),
		errors.Is(err, pricing.ErrNegativeSetup):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())

	case errors.Is(err, availability.ErrDateBlocked),
		errors.Is(err, availability.ErrDateBooked),
		errors.Is(err, availability.ErrSlotTaken),
		errors.Is(err, ErrTerminalStatus):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())

	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")

	case errors.Is(err, ErrTokenExpired):
		response.Error(c, http.StatusGone, "LINK_EXPIRED", "This management link has expired")

	default:
		log.Printf("level=error msg=booking request failed path=%s err=%v", c.FullPath(), err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
