package routes

import (
	"net/http"

	"encuentros/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine, friends *handlers.FriendHandler) *gin.RouterGroup {
	publicEndpoints := router.Group("/api/v1/")
	{
		// friendships
		publicEndpoints.POST("users/friend-request", friends.CreateFriendRequest)
		publicEndpoints.POST("users/accept-request", friends.AcceptRequest)
		publicEndpoints.POST("users/reject-request", friends.RejectRequest)
		publicEndpoints.GET("users/notifications", friends.GetNotifications)
		publicEndpoints.GET("users/friend-requests/count", friends.GetPendingCount)
		publicEndpoints.GET("users/friends/:userId", friends.GetFriends)
		publicEndpoints.GET("users/search_user", friends.SearchUsers)
	}
	return publicEndpoints
}

func ServiceApi(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
