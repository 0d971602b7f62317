package main

import (
	"errors"
	"hbs/src/common"
	"hbs/src/middlewares"
	"hbs/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func recommendationRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	group := apiv1.Group("/recommendations")
	group.Use(middlewares.AuthMiddleware)
	group.POST("", func(ctx *gin.Context) {
		var body types.RecommendationRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		userId := ctx.GetUint("id")
		result, err := common.GetRecommendations(ctx, userId, &body)
		if err != nil {
			if errors.Is(err, common.ErrRecommenderTimeout) {
				ctx.JSON(http.StatusGatewayTimeout, gin.H{"success": false, "message": "Recommendation engine timed out"})
				return
			}
			log.Printf("Error getting recommendations for user %d: %s\n", userId, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get recommendations"})
			return
		}
		ctx.Data(http.StatusOK, "application/json", result)
	})
	return group
}
