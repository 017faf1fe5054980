package routes

import (
	"finster-backend/handlers/emoji"

	"github.com/gin-gonic/gin"
)

func EmojiRoutes(r *gin.Engine) {
	r.GET("/emoji", emoji.GetEmojis)
}
