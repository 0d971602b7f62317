package controllers

import (
	"errors"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func AuthRegister(ctx *gin.Context) (*AuthResponse, int, error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	email := strings.ToLower(body.Email)
	role := body.Role
	if role != types.ROLE_HOST && role != types.ROLE_ADMIN {
		role = types.ROLE_USER
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}

	gdb := db.GetDb()
	var user models.User
	err = gdb.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.
			Model(&models.User{}).
			Where("email = ?", email).
			First(&existing).
			Error; err == nil {
			return errors.New("User already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		user = models.User{
			Username: body.Username,
			Email:    email,
			Password: hashed,
			Role:     role,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	token, err := utils.GenerateJWT(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &AuthResponse{Token: token, User: &user}, http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context) (*AuthResponse, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	gdb := db.GetDb()
	var user models.User
	if err := gdb.
		Model(&models.User{}).
		Where("email = ?", strings.ToLower(body.Email)).
		First(&user).
		Error; err != nil {
		return nil, http.StatusUnauthorized, errors.New("Invalid email or password")
	}
	if !utils.CheckPassword(user.Password, body.Password) {
		return nil, http.StatusUnauthorized, errors.New("Invalid email or password")
	}

	token, err := utils.GenerateJWT(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &AuthResponse{Token: token, User: &user}, http.StatusOK, nil
}

// FaceRegister stores the caller's face descriptor on their account.
func FaceRegister(ctx *gin.Context) (int, error) {
	var body types.RegisterFaceRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	userId := ctx.GetUint("id")

	gdb := db.GetDb()
	if err := gdb.
		Model(&models.User{}).
		Where("id = ?", userId).
		Updates(map[string]any{
			"face_descriptor": utils.ToJSONBArray(body.FaceDescriptor),
			"face_registered": true,
		}).
		Error; err != nil {
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

// FaceLogin matches a probe descriptor against the stored one. The threshold
// is configurable; smaller distance means more similar.
func FaceLogin(ctx *gin.Context) (*AuthResponse, int, error) {
	var body types.FaceLoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	gdb := db.GetDb()
	var user models.User
	if err := gdb.
		Model(&models.User{}).
		Where("email = ?", strings.ToLower(body.Email)).
		First(&user).
		Error; err != nil {
		return nil, http.StatusUnauthorized, errors.New("User not found")
	}
	if !user.FaceRegistered || len(user.FaceDescriptor) == 0 {
		return nil, http.StatusBadRequest, errors.New("Face not registered for this account")
	}

	distance, err := utils.EuclideanDistance(body.FaceDescriptor, utils.ToFloatVector(user.FaceDescriptor))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if distance > config.FaceMatchThreshold() {
		log.Printf("Face login rejected for user %d: distance %.4f\n", user.ID, distance)
		return nil, http.StatusUnauthorized, errors.New("Face does not match")
	}

	token, err := utils.GenerateJWT(user.Username, user.ID, user.Role)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return &AuthResponse{Token: token, User: &user}, http.StatusOK, nil
}

// CheckFace reports whether an account has a registered descriptor.
func CheckFace(ctx *gin.Context) (bool, int, error) {
	email := ctx.Query("email")
	if email == "" {
		return false, http.StatusBadRequest, errors.New("email is required")
	}
	gdb := db.GetDb()
	var user models.User
	if err := gdb.
		Model(&models.User{}).
		Select("face_registered", "email", "username").
		Where("email = ?", strings.ToLower(email)).
		First(&user).
		Error; err != nil {
		return false, http.StatusNotFound, errors.New("User not found")
	}
	return user.FaceRegistered, http.StatusOK, nil
}
