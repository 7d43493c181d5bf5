package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/internal/handlers"
	"github.com/radholm/Scampea-Backend/internal/middleware"
	"github.com/radholm/Scampea-Backend/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/login", handlers.Login)

		authed := api.Group("", middleware.Auth())
		{
			authed.GET("/users", handlers.ListUsers)
			authed.GET("/user", handlers.GetUserInfo)
			authed.GET("/user/logout", handlers.Logout)
			authed.POST("/user/create", middleware.Admin(), handlers.CreateUser)
			authed.DELETE("/user/delete/:id", middleware.Admin(), handlers.DeleteUser)
			authed.PUT("/user/changePassword", handlers.ChangePassword)
			authed.PUT("/user/update/:id", middleware.Admin(), handlers.UpdateUser)
			authed.PUT("/user/update", handlers.UpdateSelf)

			authed.GET("/projects", handlers.ListProjects)
			authed.GET("/projects/:user_id", handlers.GetUserProjects)
			authed.GET("/project/:project_id", handlers.GetProject)
			authed.GET("/project/:project_id/users", handlers.GetProjectUsers)
			authed.POST("/project/create", middleware.Admin(), handlers.CreateProject)
			authed.POST("/project/:project_id/user/:user_id", middleware.Manager(), handlers.AddProjectUser)
			authed.DELETE("/project/:project_id/user/:user_id", middleware.Manager(), handlers.RemoveProjectUser)
			authed.DELETE("/project/:project_id", middleware.Admin(), handlers.DeleteProject)
			authed.PUT("/project/:project_id", middleware.Admin(), handlers.UpdateProject)
			authed.PUT("/projects/:project_id/manager/:id", middleware.Admin(), handlers.UpdateProjectManager)

			authed.GET("/timelogs/all", middleware.Admin(), handlers.GetAllTimelogs)
			authed.GET("/timelogs/:user_id", middleware.Admin(), handlers.GetUserTimelogs)
			authed.GET("/timelogs/project/:project_id", middleware.Manager(), handlers.GetProjectTimelogs)
			authed.GET("/timelogs", handlers.GetTimelogs)
			authed.POST("/timelog", handlers.CreateTimelog)
			authed.DELETE("/timelog/:id", handlers.DeleteTimelog)
			authed.DELETE("/timelog/:id/admin", middleware.Admin(), handlers.DeleteTimelogAsAdmin)
			authed.PUT("/timelog/:id", handlers.UpdateTimelog)
			authed.PUT("/timelog/:id/admin", middleware.Admin(), handlers.UpdateTimelogAsAdmin)

			authed.GET("/roles", middleware.Admin(), handlers.GetRoles)

			authed.GET("/news", handlers.GetUserNews)
			authed.POST("/news/create", middleware.Admin(), handlers.CreateNews)

			authed.GET("/ws/news", handlers.NewsFeed)
		}
	}

	return r
}
