package main

import (
	"errors"
	"hbs/src/db"
	"hbs/src/middlewares"
	"hbs/src/models"
	"hbs/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errNotRoomOwner = errors.New("not the owner of this room")

// ownedRoom loads a room and verifies the caller owns its hotel.
func ownedRoom(tx *gorm.DB, roomID, userID uint) (*models.Room, error) {
	var room models.Room
	if err := tx.
		Model(&models.Room{}).
		Where(&models.Room{ID: roomID}).
		Preload("Hotel").
		First(&room).
		Error; err != nil {
		return nil, err
	}
	if room.Hotel == nil || room.Hotel.OwnerID != userID {
		return nil, errNotRoomOwner
	}
	return &room, nil
}

func toJSONBArray(items []string) types.JSONBArray {
	arr := make(types.JSONBArray, 0, len(items))
	for _, item := range items {
		arr = append(arr, item)
	}
	return arr
}

func roomRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)

	apiv1.
		GET("/rooms", func(ctx *gin.Context) {
			var rooms []models.Room
			if err := db.GetDb().
				Model(&models.Room{}).
				Where("is_available = ?", true).
				Preload("Hotel").
				Order("created_at DESC").
				Find(&rooms).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch rooms"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var room models.Room
			if err := db.GetDb().
				Model(&models.Room{}).
				Where(&models.Room{ID: params.ID}).
				Preload("Hotel").
				First(&room).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "room": room})
		})

	owner := apiv1.Group("")
	owner.Use(middlewares.AuthMiddleware, middlewares.RequireRoles(types.ROLE_HOST, types.ROLE_ADMIN))
	owner.
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			gdb := db.GetDb()

			var hotel models.Hotel
			query := gdb.Model(&models.Hotel{}).Where("owner_id = ?", userId)
			if body.HotelID != 0 {
				query = query.Where("id = ?", body.HotelID)
			}
			if err := query.First(&hotel).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No hotel found. Please register a hotel first."})
				return
			}

			room := models.Room{
				HotelID:       hotel.ID,
				RoomType:      body.RoomType,
				PricePerNight: body.PricePerNight,
				Amenities:     toJSONBArray(body.Amenities),
				Images:        toJSONBArray(body.Images),
				IsAvailable:   true,
			}
			if err := gdb.Create(&room).Error; err != nil {
				log.Printf("Error creating room for hotel %d: %s\n", hotel.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create room"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Room created successfully", "room": room})
		}).
		GET("/my-rooms", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			gdb := db.GetDb()
			var hotelIds []uint
			if err := gdb.
				Model(&models.Hotel{}).
				Where("owner_id = ?", userId).
				Pluck("id", &hotelIds).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch rooms"})
				return
			}
			if len(hotelIds) == 0 {
				ctx.JSON(http.StatusOK, gin.H{"success": true, "rooms": []models.Room{}, "message": "No hotels found. Please register a hotel first."})
				return
			}
			var rooms []models.Room
			if err := gdb.
				Model(&models.Room{}).
				Where("hotel_id IN (?)", hotelIds).
				Preload("Hotel").
				Order("created_at DESC").
				Find(&rooms).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch rooms"})
				return
			}
			available := 0
			for _, r := range rooms {
				if r.IsAvailable {
					available++
				}
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success": true,
				"rooms":   rooms,
				"stats": gin.H{
					"totalRooms":       len(rooms),
					"totalHotels":      len(hotelIds),
					"availableRooms":   available,
					"unavailableRooms": len(rooms) - available,
				},
			})
		}).
		POST("/rooms/toggle-availability", func(ctx *gin.Context) {
			var body types.ToggleRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			gdb := db.GetDb()
			room, err := ownedRoom(gdb, body.RoomID, userId)
			if err != nil {
				respondRoomError(ctx, err)
				return
			}
			if err := gdb.
				Model(&models.Room{}).
				Where("id = ?", room.ID).
				Update("is_available", !room.IsAvailable).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update room"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "isAvailable": !room.IsAvailable})
		}).
		PUT("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			gdb := db.GetDb()
			room, err := ownedRoom(gdb, params.ID, userId)
			if err != nil {
				respondRoomError(ctx, err)
				return
			}
			updates := map[string]any{}
			if body.RoomType != "" {
				updates["room_type"] = body.RoomType
			}
			if body.PricePerNight > 0 {
				updates["price_per_night"] = body.PricePerNight
			}
			if body.Amenities != nil {
				updates["amenities"] = toJSONBArray(body.Amenities)
			}
			if body.Images != nil {
				updates["images"] = toJSONBArray(body.Images)
			}
			if len(updates) > 0 {
				if err := gdb.
					Model(&models.Room{}).
					Where("id = ?", room.ID).
					Updates(updates).
					Error; err != nil {
					ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update room"})
					return
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Room updated successfully"})
		}).
		DELETE("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			gdb := db.GetDb()
			room, err := ownedRoom(gdb, params.ID, userId)
			if err != nil {
				respondRoomError(ctx, err)
				return
			}
			if err := gdb.Delete(&models.Room{}, room.ID).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete room"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted successfully"})
		})
	return apiv1
}

func respondRoomError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
	case errors.Is(err, errNotRoomOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You don't have permission to modify this room"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to process request"})
	}
}
