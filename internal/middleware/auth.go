package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/auth"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/types"
)

func unauthenticated(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
}

// Auth resolves the Bearer token into a request-scoped user. Tokens revoked
// through logout are rejected even if the JWT itself is still valid.
func Auth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			unauthenticated(ctx)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthenticated(ctx)
			return
		}

		userID, tokenID, err := auth.VerifyJWT(parts[1])

		if err != nil {
			unauthenticated(ctx)
			return
		}

		var token models.AccessToken

		if err := db.DB.Where("id = ? AND revoked = ?", tokenID, false).First(&token).Error; err != nil {
			unauthenticated(ctx)
			return
		}

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			unauthenticated(ctx)
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Set(types.ContextTokenKey, token.ID)
		ctx.Next()
	}
}
