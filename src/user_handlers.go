package main

import (
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/models"
	"hbs/src/types"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const recentCitiesLimit = 3

func userRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	group := apiv1.Group("/user")
	group.Use(middlewares.AuthMiddleware)
	group.
		GET("", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			if err := db.GetDb().
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success":              true,
				"user":                 user,
				"role":                 user.Role,
				"recentSearchedCities": user.RecentSearchedCities,
			})
		}).
		GET("/profile", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			if err := db.GetDb().
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user})
		}).
		PUT("/profile", func(ctx *gin.Context) {
			var body types.UpdateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			gdb := db.GetDb()

			updates := map[string]any{}
			if body.Username != "" {
				var count int64
				gdb.Model(&models.User{}).Where("username = ? AND id <> ?", body.Username, userId).Count(&count)
				if count > 0 {
					ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username is already taken"})
					return
				}
				updates["username"] = body.Username
			}
			if body.Email != "" {
				var count int64
				gdb.Model(&models.User{}).Where("email = ? AND id <> ?", body.Email, userId).Count(&count)
				if count > 0 {
					ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email is already in use"})
					return
				}
				updates["email"] = body.Email
			}
			if body.FirstName != "" {
				updates["first_name"] = body.FirstName
			}
			if body.LastName != "" {
				updates["last_name"] = body.LastName
			}
			if body.Phone != "" {
				updates["phone"] = body.Phone
			}
			if body.Address != "" {
				updates["address"] = body.Address
			}
			if body.City != "" {
				updates["city"] = body.City
			}
			if body.Country != "" {
				updates["country"] = body.Country
			}
			if body.DateOfBirth != "" {
				dob, err := time.Parse(config.DATE_PARSE_FORMAT, body.DateOfBirth)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date of birth"})
					return
				}
				updates["date_of_birth"] = &dob
			}
			if body.Preferences != nil {
				updates["preferences"] = body.Preferences
			}
			if len(updates) > 0 {
				if err := gdb.
					Model(&models.User{}).
					Where("id = ?", userId).
					Updates(updates).
					Error; err != nil {
					log.Printf("Error updating profile for user %d: %s\n", userId, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
					return
				}
			}
			var user models.User
			gdb.Model(&models.User{}).Where(&models.User{ID: userId}).First(&user)
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": user})
		}).
		POST("/recent-cities", func(ctx *gin.Context) {
			var body types.RecentCitiesRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			gdb := db.GetDb()
			var user models.User
			if err := gdb.
				Model(&models.User{}).
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}

			// Most recent city last, deduplicated, capped at the limit.
			cities := make(types.JSONBArray, 0, recentCitiesLimit)
			for _, c := range user.RecentSearchedCities {
				if s, ok := c.(string); ok && s != body.City {
					cities = append(cities, s)
				}
			}
			cities = append(cities, body.City)
			if len(cities) > recentCitiesLimit {
				cities = cities[len(cities)-recentCitiesLimit:]
			}
			if err := gdb.
				Model(&models.User{}).
				Where("id = ?", userId).
				Update("recent_searched_cities", cities).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save city"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "recentSearchedCities": cities})
		})
	return group
}
