package repositories

import (
	"errors"

	"finster-backend/models"

	"gorm.io/gorm"
)

// ErrLikeExists signale une violation de la clé composite (user_id, post_id).
var ErrLikeExists = errors.New("like already exists")

// PostRepository expose les accès dont le toggle de like a besoin. Toutes les
// implémentations doivent être construites sur le handle de la transaction
// courante pour que chaque bascule soit atomique.
type PostRepository interface {
	Exists(postID string) (bool, error)
	GetLikeState(userID, postID string) (bool, error)
	ApplyLikeDelta(postID string, delta int) (int, error)
	InsertLikeRow(userID, postID string) error
	DeleteLikeRow(userID, postID string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Exists(postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) GetLikeState(userID, postID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApplyLikeDelta applique like_count = like_count + delta en une seule mise à
// jour relative (jamais de lecture-puis-écriture en deux allers-retours),
// puis relit le compteur dans la même transaction.
func (r *postRepository) ApplyLikeDelta(postID string, delta int) (int, error) {
	result := r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var count int
	if err := r.db.Raw(`SELECT like_count FROM posts WHERE id = ?`, postID).
		Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepository) InsertLikeRow(userID, postID string) error {
	like := models.Like{
		UserID: userID,
		PostID: postID,
	}
	if err := r.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLikeExists
		}
		return err
	}
	return nil
}

func (r *postRepository) DeleteLikeRow(userID, postID string) error {
	// Supprimer une ligne absente n'est pas une erreur
	return r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}
