package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a marketplace account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"display_name,omitempty"` // Pointer for optional field
	PhotoURL     *string   `json:"photo_url,omitempty"`
	Role         string    `json:"role"`
	ExternalID   string    `json:"external_id"` // ID from the external auth provider
	PasswordHash string    `json:"-"`           // Do not expose password hash in JSON responses
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is used for creating a new account
type RegisterRequest struct {
	Username    string  `json:"username" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
