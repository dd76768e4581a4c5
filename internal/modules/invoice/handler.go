package invoice

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resortdesk/internal/domain"
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

// RegisterRoutes mounts invoice routes; admin guards refunds.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.List)
		invoices.POST("", h.Create)
		invoices.GET("/:id", h.Get)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
		invoices.POST("/:id/payment", h.ProcessPayment)
		invoices.POST("/:id/refund", admin, h.Refund)
	}
}

func (h *Handler) List(c *gin.Context) {
	params, err := h.parseListParams(c)
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

func (h *Handler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	inv, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Invoice created", inv)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	inv, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	inv, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Invoice deleted", gin.H{"id": id})
}

func (h *Handler) ProcessPayment(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	inv, err := h.service.ProcessPayment(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Payment recorded", inv)
}

func (h *Handler) Refund(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	inv, err := h.service.Refund(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Invoice refunded", inv)
}

func invoiceID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID("invoice id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return 0, false
	}
	return id, true
}

func (h *Handler) parseListParams(c *gin.Context) (ListParams, error) {
	var f repository.InvoiceFilters

	switch st := domain.InvoicePaymentStatus(c.Query("paymentStatus")); st {
	case "":
	case domain.PaymentPending, domain.PaymentPartial, domain.PaymentPaid, domain.PaymentRefunded:
		f.PaymentStatus = st
	default:
		return ListParams{}, ErrInvalidPaymentStatus
	}

	switch st := domain.InvoiceStatus(c.Query("status")); st {
	case "":
	case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoicePaid, domain.InvoiceCancelled:
		f.Status = st
	default:
		return ListParams{}, ErrInvalidStatus
	}

	var err error
	if f.BookingID, err = utils.OptionalID("bookingId", c.Query("bookingId")); err != nil {
		return ListParams{}, err
	}
	if f.From, err = h.dateBound("from", c.Query("from"), false); err != nil {
		return ListParams{}, err
	}
	if f.To, err = h.dateBound("to", c.Query("to"), true); err != nil {
		return ListParams{}, err
	}

	page, limit, offset, err := utils.Page(c.Query("page"), c.Query("limit"))
	if err != nil {
		return ListParams{}, err
	}
	f.Limit, f.Offset = limit, offset

	return ListParams{Filters: f, Page: page}, nil
}

// dateBound turns a YYYY-MM-DD query value into a creation-time bound; the
// upper bound is exclusive, so it points at the following midnight.
func (h *Handler) dateBound(name, raw string, upper bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(domain.DateLayout, raw, h.service.loc)
	if err != nil {
		return nil, ErrInvalidDate.With("invalid %s: expected YYYY-MM-DD", name)
	}
	if upper {
		d = d.AddDate(0, 0, 1)
	}
	return &d, nil
}
