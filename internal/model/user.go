package model

import "time"

// User represents a registered ReUse user.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	City      *string   `json:"city" gorm:"size:255"`
	Age       *int      `json:"age"`
	Level     int       `json:"level" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// UserSummary is the projection returned by the auth endpoints.
type UserSummary struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	City  *string `json:"city"`
	Age   *int    `json:"age"`
	Level int     `json:"level"`
}

// UserProfile is the projection returned by the profile endpoints.
type UserProfile struct {
	UserSummary
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the auth projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		City:  u.City,
		Age:   u.Age,
		Level: u.Level,
	}
}

// Profile returns the profile projection of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{UserSummary: u.Summary(), CreatedAt: u.CreatedAt}
}
