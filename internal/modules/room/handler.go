package room

import (
	"net/http"

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

// RegisterRoutes mounts room routes; admin guards the destructive ones.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.List)
		rooms.POST("", h.Create)
		rooms.POST("/sync-status", admin, h.SyncAll)
		rooms.GET("/:id", h.Get)
		rooms.PUT("/:id", h.Update)
		rooms.DELETE("/:id", admin, h.Delete)
		rooms.PUT("/:id/status", h.SetStatus)
		rooms.POST("/:id/sync-status", h.Sync)
		rooms.GET("/:id/status-history", h.History)
	}
}

func (h *Handler) List(c *gin.Context) {
	var f repository.RoomFilters

	if v := c.Query("status"); v != "" {
		st, err := domain.ParseRoomStatus(v)
		if err != nil {
			response.FromError(c, ErrInvalidRoomStatus.With("%s", err.Error()))
			return
		}
		f.Status = st
	}
	if v := c.Query("type"); v != "" {
		rt, err := domain.ParseRoomType(v)
		if err != nil {
			response.FromError(c, ErrInvalidRoomType)
			return
		}
		f.Type = rt
	}
	floor, err := utils.OptionalInt("floor", c.Query("floor"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	f.Floor = floor

	rooms, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms, "total": len(rooms)})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseID("room id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID("room id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	room, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseID("room id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Room deleted", gin.H{"id": id})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := utils.ParseID("room id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	room, err := h.service.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) Sync(c *gin.Context) {
	id, err := utils.ParseID("room id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	change, err := h.service.Reconcile(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": change != nil, "change": change})
}

func (h *Handler) SyncAll(c *gin.Context) {
	changes, err := h.service.ReconcileAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Room statuses synchronized", gin.H{
		"updated": len(changes),
		"changes": changes,
	})
}

func (h *Handler) History(c *gin.Context) {
	id, err := utils.ParseID("room id", c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	limit, err := utils.OptionalInt("limit", c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	logs, err := h.service.History(c.Request.Context(), id, n)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs)
}
