package routes

import (
	"finster-backend/handlers/auth"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	r.GET("/auth/google", auth.GoogleLogin)
	r.GET("/auth/google/callback", auth.GoogleCallback)
	r.POST("/register", auth.Register)
	r.GET("/logout", auth.Logout)
}
