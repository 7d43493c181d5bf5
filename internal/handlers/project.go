package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/utils"
	"github.com/radholm/Scampea-Backend/internal/validation"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name             *string `json:"name"`
	ProjectManagerID any     `json:"project_manager_id"`
}

func ListProjects(ctx *gin.Context) {
	projects := []models.Project{}

	if err := db.DB.Find(&projects).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetUserProjects lists the projects the caller is a member of.
func GetUserProjects(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	projects := []models.Project{}

	err = db.DB.
		Joins("JOIN project_user ON project_user.project_id = projects.id").
		Where("project_user.user_id = ?", user.ID).
		Find(&projects).Error

	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetProject returns the project or JSON null when no such row exists.
// Absence is not an error here.
func GetProject(ctx *gin.Context) {
	var project models.Project

	err := db.DB.Where("id = ?", ctx.Param("project_id")).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func GetProjectUsers(ctx *gin.Context) {
	users := []models.User{}

	err := db.DB.
		Joins("JOIN project_user ON project_user.user_id = users.id").
		Where("project_user.project_id = ?", ctx.Param("project_id")).
		Find(&users).Error

	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Name != nil {
		payload["name"] = *body.Name
	}
	if body.ProjectManagerID != nil {
		payload["project_manager_id"] = body.ProjectManagerID
	}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "name", Constraints: []validation.Constraint{
			validation.Required{}, validation.MinLen(3), validation.MaxLen(192),
		}},
		{Name: "project_manager_id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "users", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	managerID := uintValue(body.ProjectManagerID)
	project := models.Project{Name: *body.Name, ProjectManagerID: &managerID}

	if err := db.DB.Create(&project).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// AddProjectUser creates a membership row. The composite uniqueness rule
// carries the custom message, and the unique index settles races the
// pre-check cannot see.
func AddProjectUser(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	userID := ctx.Param("user_id")

	payload := validation.Values{"user_id": userID, "project_id": projectID}

	duplicateMessage := "The user is already in that project."

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "user_id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Exists{Table: "users", Column: "id"},
			validation.Unique{
				Table: "project_user", Column: "user_id",
				Where: "project_id", WhereV: projectID,
				Message: duplicateMessage,
			},
		}},
		{Name: "project_id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Exists{Table: "projects", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	membership := models.ProjectUser{
		UserID:    uintValue(userID),
		ProjectID: uintValue(projectID),
	}

	if err := db.DB.Create(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			validationFailed(ctx, validation.Errors{"user_id": {duplicateMessage}})
			return
		}
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, membership)
}

func RemoveProjectUser(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	userID := ctx.Param("user_id")

	payload := validation.Values{"user_id": userID, "project_id": projectID}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "user_id", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Exists{
				Table: "project_user", Column: "user_id",
				Where: "project_id", WhereV: projectID,
				Message: "The user is not in that project.",
			},
		}},
		{Name: "project_id", Constraints: []validation.Constraint{validation.Required{}}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	result := db.DB.
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.ProjectUser{})

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

func DeleteProject(ctx *gin.Context) {
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

	result := db.DB.Where("id = ?", id).Delete(&models.Project{})

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

func UpdateProject(ctx *gin.Context) {
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

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Name != nil {
		payload["name"] = *body.Name
	}
	if body.ProjectManagerID != nil {
		payload["project_manager_id"] = body.ProjectManagerID
	}

	errs = validation.Check(db.DB, payload, []validation.Field{
		{Name: "name", Constraints: []validation.Constraint{
			validation.Required{}, validation.MinLen(3), validation.MaxLen(192),
		}},
		{Name: "project_manager_id", Constraints: []validation.Constraint{
			validation.Numeric{},
			validation.Exists{Table: "users", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	updates := map[string]interface{}{"name": *body.Name}
	if body.ProjectManagerID != nil {
		updates["project_manager_id"] = uintValue(body.ProjectManagerID)
	}

	result := db.DB.Model(&models.Project{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

// UpdateProjectManager reassigns a project's manager. Both path parameters
// are validated against the users table; a project id with no project row
// yields success: 0.
func UpdateProjectManager(ctx *gin.Context) {
	projectID := ctx.Param("project_id")
	managerID := ctx.Param("id")

	payload := validation.Values{"pid": projectID, "uid": managerID}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "pid", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "users", Column: "id"},
		}},
		{Name: "uid", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Numeric{},
			validation.Exists{Table: "users", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	result := db.DB.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("project_manager_id", uintValue(managerID))

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}
