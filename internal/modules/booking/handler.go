package booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resortdesk/internal/domain"
	"resortdesk/internal/modules/billing"
	"resortdesk/internal/pkg/response"
	"resortdesk/internal/pkg/utils"
	"resortdesk/internal/pkg/validator"
	"resortdesk/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts booking routes; admin guards the status override.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.List)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.Get)
		bookings.PUT("/:id", h.Update)
		bookings.DELETE("/:id", h.Delete)
		bookings.POST("/:id/checkin", h.CheckIn)
		bookings.POST("/:id/checkout", h.CheckOut)
		bookings.POST("/:id/cancel", h.Cancel)
		bookings.PATCH("/:id/status", admin, h.OverrideStatus)
		bookings.PATCH("/:id/amount", h.UpdateAmount)
		bookings.POST("/:id/calculate-real-amount", h.CalculateRealAmount)
		bookings.POST("/:id/services", h.AddService)
		bookings.PATCH("/:id/notification", h.UpdateNotification)
	}
}

func (h *Handler) List(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Booking created", b)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Booking deleted", gin.H{"id": id})
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Checked in", b)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.service.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Checked out", res)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CancelRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Booking cancelled", b)
}

func (h *Handler) OverrideStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.OverrideStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateAmount(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.UpdateAmount(c.Request.Context(), id, req.TotalAmount)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) CalculateRealAmount(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CalculateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.service.CalculateRealAmount(c.Request.Context(), id, req.CheckOutAt)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) AddService(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.AddService(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) UpdateNotification(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	b, err := h.service.UpdateNotification(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID("booking id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return 0, false
	}
	return id, true
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return false
	}
	return true
}

func parseListParams(c *gin.Context) (ListParams, error) {
	var f repository.BookingFilters

	if v := c.Query("status"); v != "" {
		st, err := domain.ParseBookingStatus(v)
		if err != nil {
			return ListParams{}, ErrInvalidStatus.With("%s", err.Error())
		}
		f.Status = st
	}
	if v := c.Query("rentalType"); v != "" {
		rt, err := domain.ParseRentalType(v)
		if err != nil {
			return ListParams{}, billing.ErrUnsupportedRentalType.With("%s", err.Error())
		}
		f.RentalType = rt
	}
	if v := c.Query("bookingType"); v != "" {
		bt := domain.BookingType(v)
		if bt != domain.BookingIndividual && bt != domain.BookingCompany {
			return ListParams{}, ErrInvalidBookingType
		}
		f.BookingType = bt
	}

	var err error
	if f.RoomID, err = utils.OptionalID("roomId", c.Query("roomId")); err != nil {
		return ListParams{}, err
	}
	if f.CustomerID, err = utils.OptionalID("customerId", c.Query("customerId")); err != nil {
		return ListParams{}, err
	}
	if f.From, err = utils.ParseDate("from", c.Query("from")); err != nil {
		return ListParams{}, err
	}
	if f.To, err = utils.ParseDate("to", c.Query("to")); err != nil {
		return ListParams{}, err
	}
	f.Query = c.Query("q")

	page, limit, offset, err := utils.Page(c.Query("page"), c.Query("limit"))
	if err != nil {
		return ListParams{}, err
	}
	f.Limit, f.Offset = limit, offset

	return ListParams{Filters: f, Page: page}, nil
}
