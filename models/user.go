package models

import (
	"time"
)

// User représente un compte Finster lié à une identité Google
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserName       string    `json:"username" gorm:"column:user_name;uniqueIndex;not null"`
	HashedGoogleID string    `json:"-" gorm:"column:hashed_google_id;uniqueIndex;not null"`
	AvatarURL      string    `json:"avatarUrl" gorm:"column:avatar_url"`
	CreatedAt      time.Time `json:"memberSince"`
}

type UserRegister struct {
	UserName string `json:"username" binding:"required"`
}

func (User) TableName() string {
	return "users"
}
