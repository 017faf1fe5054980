package models

import (
	"time"
)

// Like est un fait d'appartenance: seule son existence compte.
// La clé composite (user_id, post_id) garantit au plus une ligne par paire.
type Like struct {
	UserID    string    `json:"userId" gorm:"column:user_id;primaryKey"`
	PostID    string    `json:"postId" gorm:"column:post_id;primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
