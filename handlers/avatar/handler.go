package avatar

import (
	"net/http"
	"unicode"

	"finster-backend/utils"

	"github.com/gin-gonic/gin"
)

const avatarSize = 100

// @Summary Get a generated avatar
// @Description Serve the deterministic letter avatar for a username
// @Tags users
// @Produce png
// @Param username path string true "Username"
// @Success 200 {file} binary "PNG avatar"
// @Failure 400 {object} map[string]string "error: Invalid username"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /avatar/{username} [get]
func GetAvatar(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	letter := unicode.ToUpper(rune(username[0]))

	buf, err := utils.Avatars.Generate(letter, avatarSize, avatarSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating avatar: " + err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf)
}
