package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/models"
)

func GetRoles(ctx *gin.Context) {
	roles := []models.Role{}

	if err := db.DB.Find(&roles).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}
