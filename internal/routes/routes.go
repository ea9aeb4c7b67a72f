package routes

import (
	"github.com/damoang/angple-comms/internal/handler"
	"github.com/damoang/angple-comms/internal/middleware"
	"github.com/damoang/angple-comms/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	screenerHandler *handler.ScreenerHandler,
	preferenceHandler *handler.PreferenceHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1", middleware.JWTAuth(jwtManager))

	// Screening (batch permission evaluation)
	screen := api.Group("/screen")
	screen.POST("", screenerHandler.Screen)
	screen.POST("/check", screenerHandler.Check)

	// Preference management against another member
	members := api.Group("/members")
	members.POST("/:user_id/mute", preferenceHandler.MuteMember)
	members.DELETE("/:user_id/mute", preferenceHandler.UnmuteMember)
	members.POST("/:user_id/ignore", preferenceHandler.IgnoreMember)
	members.DELETE("/:user_id/ignore", preferenceHandler.UnignoreMember)
	members.POST("/:user_id/allow", preferenceHandler.AllowMember)
	members.DELETE("/:user_id/allow", preferenceHandler.DisallowMember)

	// Own preference lists and flags
	me := api.Group("/members/me")
	me.GET("/mutes", preferenceHandler.ListMutes)
	me.GET("/ignores", preferenceHandler.ListIgnores)
	me.GET("/allowed", preferenceHandler.ListAllowed)
	me.GET("/pm-options", preferenceHandler.GetPMOptions)
	me.PUT("/pm-options", preferenceHandler.UpdatePMOptions)
}
