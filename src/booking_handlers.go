package main

import (
	"errors"
	"hbs/src/common"
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

func bookingRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)

	apiv1.POST("/bookings/check-availability", func(ctx *gin.Context) {
		var body types.CheckAvailabilityRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		checkIn, _ := time.Parse(config.DATE_PARSE_FORMAT, body.CheckInDate)
		checkOut, _ := time.Parse(config.DATE_PARSE_FORMAT, body.CheckOutDate)
		isAvailable, err := common.CheckAvailability(db.GetDb(), body.Room, checkIn, checkOut)
		if err != nil {
			log.Printf("Error checking availability for room %d: %s\n", body.Room, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to check availability"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "isAvailable": isAvailable})
	})

	bookings := apiv1.Group("/bookings")
	bookings.Use(middlewares.AuthMiddleware)
	bookings.
		POST("/book", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, err := common.CreateBooking(userId, &body)
			if err != nil {
				switch {
				case errors.Is(err, common.ErrRoomNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
				case errors.Is(err, common.ErrRoomUnavailable):
					ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Room is not available"})
				default:
					log.Printf("Error creating booking: %s\n", err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create booking"})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking created successfully", "bookingId": booking.ID})
		}).
		GET("/user", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var userBookings []models.Booking
			if err := db.GetDb().
				Model(&models.Booking{}).
				Where("user_id = ?", userId).
				Preload("Room").
				Preload("Hotel").
				Order("created_at DESC").
				Find(&userBookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch bookings"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "bookings": userBookings})
		}).
		GET("/hotel", middlewares.RequireRoles(types.ROLE_HOST, types.ROLE_ADMIN), func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			data, err := common.OwnerDashboard(userId)
			if err != nil {
				log.Printf("Error building dashboard for owner %d: %s\n", userId, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch dashboard"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "DashboardData": data})
		}).
		POST("/stripe-payment", func(ctx *gin.Context) {
			var body types.StripePaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			session, err := common.IssuePaymentSession(ctx, body.BookingID, userId)
			if err != nil {
				switch {
				case errors.Is(err, common.ErrBookingNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
				case errors.Is(err, common.ErrBookingAlreadyPaid):
					ctx.JSON(http.StatusConflict, gin.H{"success": false, "message": "Booking already paid"})
				default:
					log.Printf("Error creating checkout session for booking %d: %s\n", body.BookingID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment Failed"})
				}
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "url": session.URL, "sessionId": session.ID})
		}).
		POST("/check-payment-by-session", func(ctx *gin.Context) {
			var body types.CheckPaymentBySessionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			result, err := common.ReconcileBySession(ctx, body.SessionID)
			if err != nil {
				respondReconcileError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "isPaid": result.IsPaid, "message": result.Message})
		}).
		POST("/force-check-payment", func(ctx *gin.Context) {
			var body types.ForceCheckPaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			result, err := common.ForceCheckPayment(ctx, body.BookingID)
			if err != nil {
				respondReconcileError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "isPaid": result.IsPaid, "message": result.Message})
		}).
		GET("/payment-status/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			var booking models.Booking
			if err := db.GetDb().
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				First(&booking).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "isPaid": booking.IsPaid, "booking": booking})
		})
	return apiv1
}

func respondReconcileError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrBookingNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Booking not found"})
	case errors.Is(err, common.ErrNoBookingMetadata):
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		log.Printf("Error verifying payment: %s\n", err.Error())
		ctx.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Verification failed"})
	}
}
