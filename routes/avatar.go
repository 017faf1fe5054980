package routes

import (
	"finster-backend/handlers/avatar"

	"github.com/gin-gonic/gin"
)

func AvatarRoutes(r *gin.Engine) {
	r.GET("/avatar/:username", avatar.GetAvatar)
}
