package dto

import (
	"time"

	"github.com/selim/campusfind/internal/app/models"
)

// RegisterRequest represents a user registration request. UserID is optional;
// one is generated when absent. Role defaults to student.
type RegisterRequest struct {
	UserID   string      `json:"userId"`
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
}

// LoginRequest represents login credentials. Identifier is a user id, or an
// email when it contains "@".
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// UserProfile is the public view of a user; it never carries the credential.
type UserProfile struct {
	UserID     string      `json:"userId"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      *string     `json:"phone,omitempty"`
	Role       models.Role `json:"role"`
	DateJoined time.Time   `json:"dateJoined"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserProfile  `json:"user"`
}

// NewUserProfile maps a user row to its public profile.
func NewUserProfile(u *models.User) *UserProfile {
	return &UserProfile{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		DateJoined: u.DateJoined,
	}
}
