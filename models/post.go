package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"column:user_id;index;not null"`
	Title     string    `json:"title" binding:"required"`
	Content   string    `json:"content" binding:"required"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url"`
	LikeCount int       `json:"likes" gorm:"column:like_count;not null;default:0"`
	CreatedAt time.Time `json:"timestamp"`
}

func (Post) TableName() string {
	return "posts"
}
