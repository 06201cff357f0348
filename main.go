// main.go
package main

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"go-trip-ops/config"
	"go-trip-ops/controllers"
	"go-trip-ops/database"
	"go-trip-ops/logger"
	"go-trip-ops/middleware"
	"go-trip-ops/services"
	"go-trip-ops/stores"
	"go-trip-ops/websocket"
)

func main() {
	cfg := config.Load()
	logger.SetLogLevel(cfg.AppEnv)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database + stores
	db := database.Connect(cfg)
	directoryStore := stores.NewGormDirectoryStore(db)
	attendanceStore := stores.NewGormAttendanceStore(db)
	badgeStore := stores.NewGormBadgeStore(db)
	galleryStore := stores.NewGormGalleryStore(db)

	// Core services
	tokenService := services.NewTokenService(cfg.TokenSecret, cfg.QRTokenTTL, cfg.QRTokenGrace)
	badgeService := services.NewBadgeService(directoryStore, attendanceStore, badgeStore, galleryStore)
	checkinService := services.NewCheckinService(directoryStore, attendanceStore, tokenService,
		badgeService, services.LogNotifier{}, cfg.GeofenceRadiusMeters)
	reportService := services.NewReportService(directoryStore, attendanceStore)

	// Controllers
	authController := controllers.NewAuthController(db)
	tokenController := controllers.NewTokenController(tokenService, directoryStore)
	checkinController := controllers.NewCheckinController(checkinService)
	reportController := controllers.NewReportController(reportService)
	badgeController := controllers.NewBadgeController(badgeService)

	// Router + sessions
	router := gin.Default()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("tripops_session", store))

	// Health check
	router.GET("/health", controllers.Health)

	// Public routes
	router.POST("/login", authController.Login)
	router.POST("/join", authController.Join)
	router.GET("/logout", authController.Logout)

	// External collaborator hook (gallery approval events)
	router.POST("/hooks/gallery-approval", badgeController.GalleryApproval)

	// Participant portal routes
	api := router.Group("/api", middleware.AuthRequired)
	{
		api.POST("/checkins/qr", checkinController.QRCheckin)
		api.POST("/checkins/geo", checkinController.GeoCheckin)
		api.GET("/participants/:participantID/badges", badgeController.ListParticipantBadges)
	}

	// Admin routes
	admin := router.Group("/admin", middleware.AdminRequired())
	{
		admin.GET("/trips/:tripID/sessions/:sessionID/token", tokenController.IssueToken)
		admin.GET("/trips/:tripID/sessions/:sessionID/qrcode", tokenController.QRCode)
		admin.GET("/trips/:tripID/sessions/:sessionID/missing", reportController.ListMissing)
		admin.DELETE("/badges/:badgeID", badgeController.DeleteDefinition)
	}
	router.POST("/api/checkins/admin", middleware.AdminRequired(), checkinController.AdminCheckin)

	// Live check-in feed for admin dashboards
	router.GET("/feed", gin.WrapF(websocket.ServeWs))
	go websocket.HandleMessages()

	logger.Info.Printf("Starting trip-ops server on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.Error.Fatalf("Failed to run server: %v", err)
	}
}
