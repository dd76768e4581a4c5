package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resortdesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.Stats)
		dashboard.GET("/revenue", h.Revenue)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	st, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Revenue handles GET /dashboard/revenue?granularity=day|month&from=&to=
func (h *Handler) Revenue(c *gin.Context) {
	report, err := h.service.Revenue(c.Request.Context(), RevenueQuery{
		Granularity: c.Query("granularity"),
		From:        c.Query("from"),
		To:          c.Query("to"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}
