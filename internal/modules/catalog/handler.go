package catalog

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

// RegisterRoutes mounts the catalog; admin guards catalog edits.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	services := rg.Group("/services")
	{
		services.GET("", h.List)
		services.GET("/:id", h.Get)
		services.POST("", admin, h.Create)
		services.PUT("/:id", admin, h.Update)
		services.DELETE("/:id", admin, h.Delete)
	}
}

// List handles GET /services?category=&active=
func (h *Handler) List(c *gin.Context) {
	active, err := utils.OptionalBool("active", c.Query("active"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), c.Query("category"), active)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": items, "total": len(items)})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := serviceID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Service created", item)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := serviceID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := serviceID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Service deleted", gin.H{"id": id})
}

func serviceID(c *gin.Context) (int64, bool) {
	id, err := utils.ParseID("service id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return 0, false
	}
	return id, true
}
