package catalog

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Category    string  `json:"category" binding:"max=64"`
	Price       float64 `json:"price" binding:"gte=0"`
	Unit        string  `json:"unit" binding:"max=32"`
	Description string  `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=128"`
	Category    *string  `json:"category" binding:"omitempty,max=64"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Unit        *string  `json:"unit" binding:"omitempty,max=32"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"isActive"`
}
