package routes

import (
	"finster-backend/handlers/posts"
	"finster-backend/handlers/posts/likes"
	"finster-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine) {
	// Routes publiques
	r.GET("/posts", posts.GetAllPosts)
	r.GET("/posts/:id", posts.GetPostByID)

	// Routes protégées
	protected := r.Group("/")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/posts", posts.CreatePost)
		protected.POST("/delete/:id", posts.DeletePost)

		// Bascule de like
		protected.POST("/like/:id", likes.ToggleLike)
	}
}
