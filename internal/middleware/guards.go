package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/types"
)

func currentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)

	return user, ok
}

// Admin passes only callers with the admin permission flag.
func Admin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)

		if !ok {
			unauthenticated(ctx)
			return
		}

		if !user.Permission {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Forbidden, you must be an admin",
			})
			return
		}

		ctx.Next()
	}
}

// Manager passes admins, and otherwise the manager of the project named by
// the request's project_id parameter. A nonexistent project falls through to
// Forbidden, never NotFound.
func Manager() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := currentUser(ctx)

		if !ok {
			unauthenticated(ctx)
			return
		}

		if user.Permission {
			ctx.Next()
			return
		}

		var project models.Project

		err := db.DB.
			Where("id = ? AND project_manager_id = ?", ctx.Param("project_id"), user.ID).
			First(&project).Error

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Forbidden, you must be a project manager or an admin",
			})
			return
		}

		ctx.Next()
	}
}
