package services

import (
	"errors"

	"finster-backend/models"
	"finster-backend/repositories"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// AccountService supprime un compte et tout son contenu en une transaction:
// soit tout disparaît, soit rien.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

func (s *AccountService) DeleteAccount(userID string) error {
	if userID == "" {
		return ErrUserRequired
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)

		if _, err := users.FindByID(userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		// Les posts survivants que cet utilisateur a aimés perdent un like,
		// pour que like_count reste égal au nombre de lignes likes
		if err := tx.Exec(
			`UPDATE posts SET like_count = like_count - 1 WHERE id IN (SELECT post_id FROM likes WHERE user_id = ?)`,
			userID,
		).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Les likes tenus par d'autres sur les posts de ce compte
		if err := tx.Exec(
			`DELETE FROM likes WHERE post_id IN (SELECT id FROM posts WHERE user_id = ?)`,
			userID,
		).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		return users.Delete(userID)
	})
}
