package billing

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/apperr"
	"resortdesk/internal/pkg/response"
	"resortdesk/internal/pkg/validator"
	"resortdesk/internal/repository"
)

var ErrRoomNotFound = apperr.New(apperr.ErrNotFound, "ROOM_NOT_FOUND", "room not found")

type RoomGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type QuoteRequest struct {
	RentalType   string     `json:"rentalType" binding:"required"`
	CheckIn      time.Time  `json:"checkIn" binding:"required"`
	CheckOut     *time.Time `json:"checkOut"`
	RoomID       int64      `json:"roomId"`
	Price        float64    `json:"price"`
	MonthlyPrice *float64   `json:"monthlyPrice"`
}

type Handler struct {
	calc  *Calculator
	rooms RoomGetter
}

func NewHandler(calc *Calculator, rooms RoomGetter) *Handler {
	return &Handler{calc: calc, rooms: rooms}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/billing/quote", h.Quote)
}

// Quote previews a price without touching any booking. When roomId is given
// the room's prices replace price/monthlyPrice from the body.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", validator.Details(err))
		return
	}

	rentalType, err := domain.ParseRentalType(req.RentalType)
	if err != nil {
		response.FromError(c, ErrUnsupportedRentalType.With("%s", err.Error()))
		return
	}

	in := Input{
		RentalType:   rentalType,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Price:        req.Price,
		MonthlyPrice: req.MonthlyPrice,
	}

	if req.RoomID > 0 {
		room, err := h.rooms.GetByID(c.Request.Context(), req.RoomID)
		if err != nil {
			if repository.IsNotFound(err) {
				response.FromError(c, ErrRoomNotFound)
				return
			}
			response.FromError(c, err)
			return
		}
		in.Price = room.Price
		in.MonthlyPrice = room.MonthlyPrice
	}

	q, err := h.calc.Quote(in)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, q)
}
