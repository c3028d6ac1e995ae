// Package routes wires controllers onto the gin router
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/namansharma28/gravitas-backend/internal/app/controllers"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
)

// SetupRouter configures all application routes. Two separate token
// authorities guard the protected groups: user sessions and the admin
// family never accept each other's tokens.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	communityController *controllers.CommunityController,
	eventController *controllers.EventController,
	updateController *controllers.UpdateController,
	userController *controllers.UserController,
	systemController *controllers.SystemController,
	jwtService *auth.JWTService,
	adminTokens *auth.AdminTokenService,
) {
	api := router.Group("/api")

	api.GET("/health", systemController.Health)
	api.GET("/cache/stats", systemController.CacheStats)

	// --- Public auth routes ---
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/refresh", authController.RefreshToken)
		authGroup.POST("/verify-otp", authController.VerifyOTP)
		authGroup.POST("/resend-otp", authController.ResendOTP)
		authGroup.GET("/verify-email", authController.VerifyEmail)
	}

	// --- Admin routes (separate token authority) ---
	admin := api.Group("/admin")
	{
		admin.POST("/login", adminController.Login)

		adminProtected := admin.Group("")
		adminProtected.Use(middleware.RequireAdmin(adminTokens))
		{
			adminProtected.GET("/check-auth", adminController.CheckAuth)
			adminProtected.GET("/communities/pending", adminController.ListPendingCommunities)
			adminProtected.POST("/communities/:handle/approve", adminController.ApproveCommunity)
			adminProtected.POST("/communities/:handle/reject", adminController.RejectCommunity)
		}
	}

	// --- Public community reads ---
	communities := api.Group("/communities")
	{
		communities.GET("/:handle", communityController.GetDetail)
		communities.GET("/:handle/members", communityController.ListMembers)
		communities.GET("/:handle/events", eventController.ListByCommunity)
		communities.GET("/:handle/updates", updateController.ListByCommunity)
	}

	// --- Session routes ---
	session := api.Group("")
	session.Use(middleware.RequireSession(jwtService))
	{
		session.POST("/auth/logout", authController.Logout)

		session.POST("/communities", communityController.Create)
		session.GET("/communities/user", communityController.ListAdministered)
		session.POST("/communities/:handle/join", communityController.Join)
		session.DELETE("/communities/:handle/leave", communityController.Leave)
		session.POST("/communities/:handle/follow", communityController.Follow)
		session.DELETE("/communities/:handle/follow", communityController.Unfollow)
		session.POST("/communities/:handle/events", eventController.Create)
		session.POST("/communities/:handle/updates", updateController.Create)

		session.POST("/events/:id/rsvp", eventController.RSVP)

		session.GET("/following/communities", communityController.ListFollowed)

		session.GET("/user/communities", communityController.ListUserCommunities)
		session.GET("/user/notifications", userController.ListNotifications)
		session.POST("/user/notifications/:id/read", userController.MarkNotificationRead)
		session.POST("/user/notifications/read-all", userController.MarkAllNotificationsRead)
	}
}
