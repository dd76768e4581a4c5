package room

type CreateRoomRequest struct {
	RoomNumber   string   `json:"roomNumber" binding:"required,max=32"`
	Type         string   `json:"type" binding:"required"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	MonthlyPrice *float64 `json:"monthlyPrice" binding:"omitempty,gt=0"`
	Floor        int      `json:"floor"`
	Capacity     int      `json:"capacity" binding:"omitempty,min=1"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Status       string   `json:"status"`
}

type UpdateRoomRequest struct {
	RoomNumber   *string   `json:"roomNumber" binding:"omitempty,min=1,max=32"`
	Type         *string   `json:"type"`
	Price        *float64  `json:"price" binding:"omitempty,gt=0"`
	MonthlyPrice *float64  `json:"monthlyPrice" binding:"omitempty,gte=0"`
	Floor        *int      `json:"floor"`
	Capacity     *int      `json:"capacity" binding:"omitempty,min=1"`
	Description  *string   `json:"description"`
	Amenities    *[]string `json:"amenities"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}
