package model

import "errors"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the login result. User and Token are nil/empty on
// failure; Message carries the reason either way.
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *LoginUser `json:"user"`
	Token   string     `json:"token,omitempty"`
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)
