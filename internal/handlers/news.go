package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/utils"
	"github.com/radholm/Scampea-Backend/internal/validation"
	"gorm.io/gorm"
)

type CreateNewsRequest struct {
	Title any `json:"title"`
	Text  any `json:"text"`
}

func GetUserNews(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	news := []models.News{}

	if err := db.DB.Where("user_id = ?", user.ID).Find(&news).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, news)
}

// CreateNews fans the post out to every existing user, one row each, inside
// a single transaction: either every user gets the post or nobody does.
func CreateNews(ctx *gin.Context) {
	var body CreateNewsRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Title != nil {
		payload["title"] = body.Title
	}
	if body.Text != nil {
		payload["text"] = body.Text
	}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "title", Constraints: []validation.Constraint{validation.Required{}, validation.IsString{}}},
		{Name: "text", Constraints: []validation.Constraint{validation.Required{}, validation.IsString{}}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	title := body.Title.(string)
	text := body.Text.(string)

	created := []models.News{}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var users []models.User

		if err := tx.Find(&users).Error; err != nil {
			return err
		}

		for _, user := range users {
			item := models.News{UserID: user.ID, Title: title, Text: text}

			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			created = append(created, item)
		}

		return nil
	})

	if err != nil {
		internalError(ctx, err)
		return
	}

	BroadcastNews(title, text)

	ctx.JSON(http.StatusCreated, created)
}
