package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resortdesk/internal/pkg/response"
	"resortdesk/internal/pkg/utils"
	"resortdesk/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.List)
		customers.POST("", h.Create)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
		customers.GET("/:id/bookings", h.Bookings)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, limit, offset, err := utils.Page(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.List(c.Request.Context(), c.Query("q"), page, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	cust, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Customer created", cust)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	cust, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	cust, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Customer deleted", gin.H{"id": id})
}

func (h *Handler) Bookings(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	page, limit, offset, err := utils.Page(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.Bookings(c.Request.Context(), id, page, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func customerID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID("customer id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return 0, false
	}
	return id, true
}
