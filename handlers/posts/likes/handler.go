package likes

import (
	"errors"
	"net/http"

	"finster-backend/db"
	"finster-backend/services"
	"finster-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Toggle like on a post
// @Description Add or remove the current user's like on a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} services.LikeResult
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /like/{id} [post]
func ToggleLike(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	postID := c.Param("id")

	result, err := services.NewLikeToggleService(db.DB).Toggle(userID.(string), postID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		case errors.Is(err, services.ErrUserRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		default:
			utils.LogErrorWithUser(userID, err, "Error toggling like")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling like: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
