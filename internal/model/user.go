package model

import "time"

// Roles assignable to a user account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. The username doubles as the primary
// key; it is fixed at signup and only removed by an admin delete.
type User struct {
	Username     string    `json:"username" gorm:"primaryKey;size:64"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time `json:"created_at"`
}
