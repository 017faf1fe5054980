package services

import (
	"errors"

	"finster-backend/repositories"

	"gorm.io/gorm"
)

var (
	ErrUserRequired = errors.New("user required")
	ErrPostNotFound = errors.New("post not found")
)

// LikeResult est l'état du post après la bascule.
type LikeResult struct {
	Likes         int  `json:"likes"`
	IsLikedByUser bool `json:"isLikedByUser"`
}

// LikeToggleService porte l'invariant du compteur: après chaque bascule
// commitée, like_count égale le nombre de lignes likes du post.
type LikeToggleService struct {
	db *gorm.DB
}

func NewLikeToggleService(db *gorm.DB) *LikeToggleService {
	return &LikeToggleService{db: db}
}

// Toggle inverse l'état de like de (userID, postID) et renvoie le compteur
// post-transition. Deux appels consécutifs ramènent le post à l'état initial.
//
// La vérification d'existence et l'écriture tiennent dans une transaction
// unique; la clé composite de la table likes sert de garde-fou si deux
// requêtes concurrentes passent quand même la vérification, auquel cas la
// bascule est rejouée une seule fois.
func (s *LikeToggleService) Toggle(userID, postID string) (*LikeResult, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	result, err := s.toggleOnce(userID, postID)
	if errors.Is(err, repositories.ErrLikeExists) {
		// Double soumission: l'état a changé sous nos pieds, on rejoue une fois
		result, err = s.toggleOnce(userID, postID)
	}
	return result, err
}

func (s *LikeToggleService) toggleOnce(userID, postID string) (*LikeResult, error) {
	var result LikeResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewPostRepository(tx)

		exists, err := repo.Exists(postID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrPostNotFound
		}

		liked, err := repo.GetLikeState(userID, postID)
		if err != nil {
			return err
		}

		if liked {
			if err := repo.DeleteLikeRow(userID, postID); err != nil {
				return err
			}
			count, err := repo.ApplyLikeDelta(postID, -1)
			if err != nil {
				return err
			}
			result = LikeResult{Likes: count, IsLikedByUser: false}
			return nil
		}

		if err := repo.InsertLikeRow(userID, postID); err != nil {
			return err
		}
		count, err := repo.ApplyLikeDelta(postID, +1)
		if err != nil {
			return err
		}
		result = LikeResult{Likes: count, IsLikedByUser: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
