package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/selim/campusfind/internal/app/controllers"
	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	postController *controllers.PostController,
	matchController *controllers.MatchController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		users := authenticated.Group("/users")
		{
			users.GET("/:id", authController.GetUser)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				usersAdmin.DELETE("/:id", authController.DeleteUser)
			}
		}

		lost := authenticated.Group("/lost")
		{
			lost.GET("", postController.ListLostPosts)
			lost.POST("", postController.CreateLostPost)
			lost.GET("/mine", postController.ListMyLostPosts)
			lost.GET("/:id", postController.GetLostPost)
			lost.DELETE("/:id", postController.DeleteLostPost)
		}

		found := authenticated.Group("/found")
		{
			found.GET("", postController.ListFoundPosts)
			found.POST("", postController.CreateFoundPost)
			found.GET("/mine", postController.ListMyFoundPosts)
			found.GET("/:id", postController.GetFoundPost)
			found.DELETE("/:id", postController.DeleteFoundPost)
		}

		matches := authenticated.Group("/matches")
		{
			matches.POST("/claim", matchController.Claim)
			matches.GET("/mine", matchController.ListMine)

			matchesAdmin := matches.Group("")
			matchesAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				matchesAdmin.GET("/unresolved", matchController.ListUnresolved)
				matchesAdmin.POST("/:id/resolve", matchController.Resolve)
			}
		}
	}
}
