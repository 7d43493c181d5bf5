package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/types"
)

// CurrentUser returns the request-scoped authenticated user set by the auth
// middleware. There is no global accessor on purpose.
func CurrentUser(ctx *gin.Context) (models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return models.User{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(models.User)

	if !ok {
		return models.User{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

// CurrentTokenID returns the jti of the bearer token the request carried.
func CurrentTokenID(ctx *gin.Context) (string, error) {
	tokenID, exists := ctx.Get(types.ContextTokenKey)

	if !exists {
		return "", fmt.Errorf("no token in request context")
	}

	id, ok := tokenID.(string)

	if !ok {
		return "", fmt.Errorf("invalid token id type in context")
	}

	return id, nil
}
