package main

import (
	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/models"
	"hbs/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func hotelRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	hotels := apiv1.Group("/hotels")
	hotels.Use(middlewares.AuthMiddleware)
	hotels.
		POST("", func(ctx *gin.Context) {
			var body types.RegisterHotelRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			hotel := models.Hotel{
				Name:    body.Name,
				Slug:    slug.Make(body.Name),
				Address: body.Address,
				Contact: body.Contact,
				City:    body.City,
				OwnerID: userId,
			}
			gdb := db.GetDb()
			err := gdb.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&hotel).Error; err != nil {
					return err
				}
				// Registering a hotel promotes the account to host. An owner
				// may register any number of hotels.
				return tx.
					Model(&models.User{}).
					Where("id = ? AND role = ?", userId, types.ROLE_USER).
					Update("role", types.ROLE_HOST).
					Error
			})
			if err != nil {
				log.Printf("Error registering hotel for user %d: %s\n", userId, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register hotel"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "hotel registered successfully", "hotel": hotel})
		}).
		GET("", func(ctx *gin.Context) {
			var allHotels []models.Hotel
			if err := db.GetDb().
				Model(&models.Hotel{}).
				Order("created_at DESC").
				Find(&allHotels).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch hotels"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "hotels": allHotels})
		}).
		GET("/my-hotels", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var ownedHotels []models.Hotel
			if err := db.GetDb().
				Model(&models.Hotel{}).
				Where("owner_id = ?", userId).
				Order("created_at DESC").
				Find(&ownedHotels).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch hotels"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "hotels": ownedHotels})
		})
	return apiv1
}
