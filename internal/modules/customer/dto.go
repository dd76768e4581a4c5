package customer

import "resortdesk/internal/domain"

type CreateCustomerRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Phone       string `json:"phone" binding:"required,max=32"`
	Email       string `json:"email" binding:"omitempty,email"`
	IDNumber    string `json:"idNumber"`
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
	CompanyName string `json:"companyName"`
	Notes       string `json:"notes"`
}

type UpdateCustomerRequest struct {
	FullName    *string `json:"fullName"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Email       *string `json:"email" binding:"omitempty,email"`
	IDNumber    *string `json:"idNumber"`
	Nationality *string `json:"nationality"`
	Address     *string `json:"address"`
	CompanyName *string `json:"companyName"`
	Notes       *string `json:"notes"`
}

type ListResult struct {
	Customers []domain.Customer `json:"customers"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

type BookingsResult struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
