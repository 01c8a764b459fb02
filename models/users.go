package models

import (
	"time"
)

// User is owned by the accounts service; this module only reads it.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100;not null;index" json:"name"`
	Surname      string    `gorm:"size:100;index" json:"surname"`
	Email        string    `gorm:"size:150;not null;uniqueIndex" json:"email"`
	Avatar       *string   `gorm:"size:255" json:"avatar"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile is the display data other views join against.
type UserProfile struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Email   string  `json:"email"`
	Avatar  *string `json:"avatar"`
}

func (u User) Profile() UserProfile {
	return UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Avatar:  u.Avatar,
	}
}
