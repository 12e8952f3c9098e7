package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	UserID       string    `json:"userId" db:"user_id" example:"usr_a1b2c3d4"`          // Caller-chosen or generated identifier
	Name         string    `json:"name" db:"name" example:"Ada Yilmaz"`                 // Display name
	Email        string    `json:"email" db:"email" example:"ada@campus.edu"`           // Unique email address
	Phone        *string   `json:"phone,omitempty" db:"phone" example:"+90 555 000 11"` // Optional phone number (nullable)
	PasswordHash string    `json:"-" db:"password_hash"`                                // bcrypt hash, never serialized
	Role         Role      `json:"role" db:"role" example:"student"`                    // student, staff or admin
	DateJoined   time.Time `json:"dateJoined" db:"date_joined"`                         // Registration timestamp
}

// PublicProfile strips the credential field. Everything that leaves the auth
// gate goes through this.
func (u *User) PublicProfile() *User {
	return &User{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		DateJoined: u.DateJoined,
	}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
