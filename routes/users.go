package routes

import (
	"finster-backend/handlers/users"
	"finster-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(r *gin.Engine) {
	usersRoutes := r.Group("/")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.GET("/profile", users.GetProfile)
		usersRoutes.POST("/uploadAvatar", users.UploadAvatar)
		usersRoutes.POST("/deleteAccount", users.DeleteAccount)
	}
}
