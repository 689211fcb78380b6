package model

import "time"

// Product listing limits in paisa (smallest currency unit)
const (
	MinProductPrice = 1
	MaxProductPrice = 1000000
)

var (
	// ProductCategories is the closed set of listing categories
	ProductCategories = []string{"books", "electronics", "clothes", "stationery", "misc"}
	// ProductConditions is the closed set of item conditions
	ProductConditions = []string{"new", "like_new", "good", "fair", "poor"}
)

// Product represents an item listed on the marketplace
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // In paisa
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	ImageURL    *string   `json:"image_url,omitempty"` // Pointer for optional field
	SellerID    int       `json:"seller_id"`
	IsSold      bool      `json:"is_sold"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest is used for listing a new product
type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       int64   `json:"price" binding:"required,gte=1,lte=1000000"`
	Category    string  `json:"category" binding:"required,oneof=books electronics clothes stationery misc"`
	Condition   string  `json:"condition" binding:"required,oneof=new like_new good fair poor"`
	SellerID    int     `json:"seller_id" binding:"required"`
	ImageURL    *string `json:"image_url"`
}

type UpdateProductRequest struct {
	Title       *string `json:"title,omitempty"` // Pointers to allow partial updates
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,gte=1,lte=1000000"`
	Category    *string `json:"category,omitempty" binding:"omitempty,oneof=books electronics clothes stationery misc"`
	Condition   *string `json:"condition,omitempty" binding:"omitempty,oneof=new like_new good fair poor"`
	ImageURL    *string `json:"image_url,omitempty"`
}
