package main

import (
	"hbs/src/controllers"
	"hbs/src/middlewares"

	"github.com/gin-gonic/gin"
)

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)

	auth := apiv1.Group("/auth")
	auth.
		POST("/register", func(ctx *gin.Context) {
			resp, status, err := controllers.AuthRegister(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "message": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "message": "Registered successfully", "token": resp.Token, "user": resp.User})
		}).
		POST("/login", func(ctx *gin.Context) {
			resp, status, err := controllers.AuthLogin(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "message": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "message": "Logged in successfully", "token": resp.Token, "user": resp.User})
		})

	face := apiv1.Group("/face")
	face.
		POST("/login-face", func(ctx *gin.Context) {
			resp, status, err := controllers.FaceLogin(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "message": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "message": "Face login successful", "token": resp.Token, "user": resp.User})
		}).
		GET("/check-face", func(ctx *gin.Context) {
			registered, status, err := controllers.CheckFace(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "message": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "faceRegistered": registered})
		})
	face.
		POST("/register-face", middlewares.AuthMiddleware, func(ctx *gin.Context) {
			status, err := controllers.FaceRegister(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "message": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "message": "Face registered successfully"})
		})

	return apiv1
}
