package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/radholm/Scampea-Backend/db"
	"github.com/radholm/Scampea-Backend/internal/auth"
	"github.com/radholm/Scampea-Backend/internal/models"
	"github.com/radholm/Scampea-Backend/internal/utils"
	"github.com/radholm/Scampea-Backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username             *string `json:"username"`
	FirstName            *string `json:"first_name"`
	LastName             *string `json:"last_name"`
	Password             *string `json:"password"`
	PasswordConfirmation *string `json:"password_confirmation"`
	Permission           any     `json:"permission"`
	Role                 any     `json:"role"`
	Picture              *string `json:"picture"`
	Expertise            *string `json:"expertise"`
}

type ChangePasswordRequest struct {
	OldPassword             *string `json:"old_password"`
	NewPassword             *string `json:"new_password"`
	NewPasswordConfirmation *string `json:"new_password_confirmation"`
}

type UpdateSelfRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Expertise *string `json:"expertise"`
	Picture   *string `json:"picture"`
}

// Login verifies credentials, records a revocable access token and returns
// the signed JWT together with the user document.
func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	err := db.DB.Where("username = ?", body.Username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
			return
		}
		internalError(ctx, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username or password"})
		return
	}

	token := models.AccessToken{ID: uuid.NewString(), UserID: user.ID}

	if err := db.DB.Create(&token).Error; err != nil {
		internalError(ctx, err)
		return
	}

	signed, err := auth.GenerateJWT(user.ID, token.ID)

	if err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

// ListUsers returns every user with their role; password, role_id and
// timestamps stay hidden through the model's json tags.
func ListUsers(ctx *gin.Context) {
	users := []models.User{}

	if err := db.DB.Preload("Role").Find(&users).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

func GetUserInfo(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Username != nil {
		payload["username"] = *body.Username
	}
	if body.FirstName != nil {
		payload["first_name"] = *body.FirstName
	}
	if body.LastName != nil {
		payload["last_name"] = *body.LastName
	}
	if body.Password != nil {
		payload["password"] = *body.Password
	}
	if body.PasswordConfirmation != nil {
		payload["password_confirmation"] = *body.PasswordConfirmation
	}
	if body.Permission != nil {
		payload["permission"] = body.Permission
	}
	if body.Role != nil {
		payload["role"] = body.Role
	}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "username", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Unique{Table: "users", Column: "username"},
			validation.MinLen(3),
			validation.MaxLen(32),
		}},
		{Name: "first_name", Constraints: []validation.Constraint{
			validation.Required{}, validation.MinLen(3), validation.MaxLen(32),
		}},
		{Name: "last_name", Constraints: []validation.Constraint{
			validation.Required{}, validation.MinLen(3), validation.MaxLen(32),
		}},
		{Name: "password", Constraints: []validation.Constraint{
			validation.Required{}, validation.Confirmed{}, validation.MinLen(3), validation.MaxLen(32),
		}},
		{Name: "permission", Constraints: []validation.Constraint{validation.Boolean{}}},
		{Name: "role", Constraints: []validation.Constraint{
			validation.Required{},
			validation.Exists{Table: "roles", Column: "id"},
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)

	if err != nil {
		internalError(ctx, err)
		return
	}

	var picture string
	if body.Picture != nil {
		picture, err = uploadPicture(*body.Picture, *body.Username)
		if err != nil {
			internalError(ctx, err)
			return
		}
	}

	user := models.User{
		Username:   *body.Username,
		FirstName:  *body.FirstName,
		LastName:   *body.LastName,
		Password:   string(hash),
		Permission: boolValue(body.Permission),
		RoleID:     uintValue(body.Role),
		Picture:    picture,
		Expertise:  "",
	}
	if body.Expertise != nil {
		user.Expertise = *body.Expertise
	}

	if err := db.DB.Create(&user).Error; err != nil {
		// The pre-check and the insert are not atomic; the unique index
		// has the final word on username races.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			validationFailed(ctx, validation.Errors{
				"username": {"The username has already been taken."},
			})
			return
		}
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

func DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

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

	result := db.DB.Where("id = ?", id).Delete(&models.User{})

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

func ChangePassword(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var body ChangePasswordRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.OldPassword != nil {
		payload["old_password"] = *body.OldPassword
	}
	if body.NewPassword != nil {
		payload["new_password"] = *body.NewPassword
	}
	if body.NewPasswordConfirmation != nil {
		payload["new_password_confirmation"] = *body.NewPasswordConfirmation
	}

	errs := validation.Check(db.DB, payload, []validation.Field{
		{Name: "old_password", Constraints: []validation.Constraint{validation.Required{}}},
		{Name: "new_password", Constraints: []validation.Constraint{
			validation.Required{}, validation.Confirmed{}, validation.MinLen(3), validation.MaxLen(32),
		}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*body.OldPassword)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password missmatch"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*body.NewPassword), bcrypt.DefaultCost)

	if err != nil {
		internalError(ctx, err)
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("password", string(hash)).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout revokes the access token the request was authenticated with.
func Logout(ctx *gin.Context) {
	tokenID, err := utils.CurrentTokenID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	if err := db.DB.Model(&models.AccessToken{}).Where("id = ?", tokenID).Update("revoked", true).Error; err != nil {
		internalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateUser partially updates any user as admin. Only supplied fields
// change; the username uniqueness check excludes the row being updated.
func UpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

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

	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	payload := validation.Values{}
	if body.Username != nil {
		payload["username"] = *body.Username
	}
	if body.FirstName != nil {
		payload["first_name"] = *body.FirstName
	}
	if body.LastName != nil {
		payload["last_name"] = *body.LastName
	}
	if body.Password != nil {
		payload["password"] = *body.Password
	}
	if body.PasswordConfirmation != nil {
		payload["password_confirmation"] = *body.PasswordConfirmation
	}
	if body.Permission != nil {
		payload["permission"] = body.Permission
	}
	if body.Role != nil {
		payload["role"] = body.Role
	}

	errs = validation.Check(db.DB, payload, []validation.Field{
		{Name: "username", Constraints: []validation.Constraint{
			validation.Unique{Table: "users", Column: "username", Except: "id", ExceptV: id},
			validation.MinLen(3),
			validation.MaxLen(32),
		}},
		{Name: "first_name", Constraints: []validation.Constraint{validation.MinLen(3), validation.MaxLen(32)}},
		{Name: "last_name", Constraints: []validation.Constraint{validation.MinLen(3), validation.MaxLen(32)}},
		{Name: "password", Constraints: []validation.Constraint{
			validation.Confirmed{}, validation.MinLen(3), validation.MaxLen(32),
		}},
		{Name: "permission", Constraints: []validation.Constraint{validation.Boolean{}}},
		{Name: "role", Constraints: []validation.Constraint{validation.Exists{Table: "roles", Column: "id"}}},
	})

	if errs != nil {
		validationFailed(ctx, errs)
		return
	}

	updates := map[string]interface{}{}

	if body.Username != nil {
		updates["username"] = *body.Username
	}
	if body.FirstName != nil {
		updates["first_name"] = *body.FirstName
	}
	if body.LastName != nil {
		updates["last_name"] = *body.LastName
	}
	if body.Expertise != nil {
		updates["expertise"] = *body.Expertise
	}
	if body.Permission != nil {
		updates["permission"] = boolValue(body.Permission)
	}
	if body.Role != nil {
		updates["role_id"] = uintValue(body.Role)
	}

	if body.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
		if err != nil {
			internalError(ctx, err)
			return
		}
		updates["password"] = string(hash)
	}

	if body.Picture != nil {
		// Picture files are keyed by username, so resolve the name the row
		// will end up with before writing.
		username := ""
		if body.Username != nil {
			username = *body.Username
		} else {
			var existing models.User
			if err := db.DB.Select("username").Where("id = ?", id).First(&existing).Error; err != nil {
				internalError(ctx, err)
				return
			}
			username = existing.Username
		}

		picture, err := uploadPicture(*body.Picture, username)
		if err != nil {
			internalError(ctx, err)
			return
		}
		if picture != "" {
			updates["picture"] = picture
		}
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"success": 0})
		return
	}

	result := db.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			validationFailed(ctx, validation.Errors{
				"username": {"The username has already been taken."},
			})
			return
		}
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}

// UpdateSelf partially updates the caller's own row. The accepted fields are
// deliberately narrower than the admin update; role and permission changes
// stay admin-only.
func UpdateSelf(ctx *gin.Context) {
	user, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
		return
	}

	var body UpdateSelfRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := map[string]interface{}{}

	if body.FirstName != nil {
		updates["first_name"] = *body.FirstName
	}
	if body.LastName != nil {
		updates["last_name"] = *body.LastName
	}
	if body.Expertise != nil {
		updates["expertise"] = *body.Expertise
	}

	if body.Picture != nil {
		picture, err := uploadPicture(*body.Picture, user.Username)
		if err != nil {
			internalError(ctx, err)
			return
		}
		if picture != "" {
			updates["picture"] = picture
		}
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusOK, gin.H{"success": 0})
		return
	}

	result := db.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)

	if result.Error != nil {
		internalError(ctx, result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": result.RowsAffected})
}
