package users

import (
	"errors"
	"net/http"

	"finster-backend/db"
	"finster-backend/models"
	"finster-backend/services"
	"finster-backend/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Get the current user's profile
// @Description Retrieve the current user and their posts, newest first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "user and posts"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /profile [get]
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var posts []models.Post
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving posts: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"posts": posts,
	})
}

// @Summary Upload an avatar
// @Description Replace the current user's avatar with an uploaded image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Avatar image"
// @Security BearerAuth
// @Success 200 {object} map[string]string "avatarUrl: new avatar URL"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /uploadAvatar [post]
func UploadAvatar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	avatarURL, err := utils.UploadImage(file, "avatars", "avatar")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading avatar: " + err.Error()})
		return
	}

	previousAvatar := user.AvatarURL
	if err := db.DB.Model(&user).UpdateColumn("avatar_url", avatarURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating avatar: " + err.Error()})
		return
	}

	if previousAvatar != "" {
		if err := utils.DeleteImage(previousAvatar); err != nil {
			utils.LogErrorWithUser(userID, err, "Error deleting previous avatar")
		}
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}

// @Summary Delete the current user's account
// @Description Remove the user, their posts and all related likes in one transaction
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Account deleted successfully"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /deleteAccount [post]
func DeleteAccount(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		return
	}

	if err := services.NewAccountService(db.DB).DeleteAccount(userID.(string)); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, services.ErrUserRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in token"})
		default:
			utils.LogErrorWithUser(userID, err, "Error deleting account")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting account: " + err.Error()})
		}
		return
	}

	c.SetCookie("session", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
