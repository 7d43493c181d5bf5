package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/utils"
	"github.com/radholm/Scampea-Backend/internal/validation"
)

type CreateTimelogRequest struct {
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Contribution *string `json:"contribution"`
	ProjectID    any     `json:"project_id"`
}

var (
	dateRule = validation.DateFormat{Layout: "2006-01-02", Format: "Y-m-d"}
	timeRule = validation.DateFormat{Layout: "15:04", Format: "H:i"}
)

func timelogIDRules() []validation.Field {
	return []validation.Field{
		{Name: "id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "timelogs", Column: "id"},
		}},
	}
}

// ownershipRules ties a timelog id to the caller: a timelogs row must exist
// with this id AND the caller's user_id. The failure lands on the user_id
// field even though the id itself exists.
func ownershipRules(timelogID string) []validation.Field {
	return []validation.Field{
		{Name: "user_id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Exists{Table: "timelogs", Column: "user_id", Where: "id", WhereV: timelogID},
		}},
	}
}

func GetTimelogs(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	timelogs := []models.Timelog{}

	if err := db.DB.Where("user_id = ?", user.ID).Find(&timelogs).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timelogs)
}

func GetAllTimelogs(ctx *gin.Context) {
	timelogs := []models.Timelog{}

	if err := db.DB.Find(&timelogs).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timelogs)
}

func GetUserTimelogs(ctx *gin.Context) {
	id := ctx.Param("user_id")

	errs := validation.Check(db.DB, validation.Values{"id": id}, []validation.Field{
		{Name: "id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "users", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	timelogs := []models.Timelog{}

	if err := db.DB.Where("user_id = ?", id).Find(&timelogs).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timelogs)
}

func GetProjectTimelogs(ctx *gin.Context) {
	id := ctx.Param("project_id")

	errs := validation.Check(db.DB, validation.Values{"id": id}, []validation.Field{
		{Name: "id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "projects", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	timelogs := []models.Timelog{}

	if err := db.DB.Where("project_id = ?", id).Find(&timelogs).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, timelogs)
}

// CreateTimelog records a timelog for the caller. The user id always comes
// from the authenticated user, never from the body.
func CreateTimelog(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var body CreateTimelogRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Date != nil {
		payload["date"] = *body.Date
	}
	if body.Time != nil {
		payload["time"] = *body.Time
	}
	if body.Contribution != nil {
		payload["contribution"] = *body.Contribution
	}
	if body.ProjectID != nil {
		payload["project_id"] = body.ProjectID
	}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "date", Constraints: []validation.Constraint{validation.Required{}, dateRule}},
		{Name: "time", Constraints: []validation.Constraint{validation.Required{}, timeRule}},
		{Name: "contribution", Constraints: []validation.Constraint{validation.Required{}, validation.MinLen(2)}},
		{Name: "project_id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "projects", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	timelog := models.Timelog{
		UserID:       user.ID,
		ProjectID:    uintValue(body.ProjectID),
		Date:         *body.Date,
		Time:         *body.Time,
		Contribution: *body.Contribution,
	}

	if err := db.DB.Create(&timelog).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, timelog)
}

func DeleteTimelog(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	id := ctx.Param("id")

	errs := validation.Check(db.DB, validation.Values{"id": id}, timelogIDRules())

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	errs = validation.Check(db.DB, validation.Values{"user_id": user.ID}, ownershipRules(id))

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	result := db.DB.Where("id = ?", id).Delete(&models.Timelog{})

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

func DeleteTimelogAsAdmin(ctx *gin.Context) {
	id := ctx.Param("id")

	errs := validation.Check(db.DB, validation.Values{"id": id}, timelogIDRules())

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	result := db.DB.Where("id = ?", id).Delete(&models.Timelog{})

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

func UpdateTimelog(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	id := ctx.Param("id")

	errs := validation.Check(db.DB, validation.Values{"id": id, "user_id": user.ID}, append(
		timelogIDRules(),
		ownershipRules(id)...,
	))

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	updateTimelogFields(ctx, id)
}

func UpdateTimelogAsAdmin(ctx *gin.Context) {
	id := ctx.Param("id")

	errs := validation.Check(db.DB, validation.Values{"id": id}, timelogIDRules())

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	updateTimelogFields(ctx, id)
}

// updateTimelogFields applies the optional date/time/contribution rules and
// partially updates the row.
func updateTimelogFields(ctx *gin.Context, id string) {
	var body CreateTimelogRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Date != nil {
		payload["date"] = *body.Date
	}
	if body.Time != nil {
		payload["time"] = *body.Time
	}
	if body.Contribution != nil {
		payload["contribution"] = *body.Contribution
	}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "date", Constraints: []validation.Constraint{dateRule}},
		{Name: "time", Constraints: []validation.Constraint{timeRule}},
		{Name: "contribution", Constraints: []validation.Constraint{validation.MinLen(2)}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	updates := map[string]interface{}{}

	if body.Date != nil {
		updates["date"] = *body.Date
	}
	if body.Time != nil {
		updates["time"] = *body.Time
	}
	if body.Contribution != nil {
		updates["contribution"] = *body.Contribution
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"success": 0})
		return
	}

	result := db.DB.Model(&models.Timelog{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}
