package main

import (
	"careertalk/internal/config"
	"careertalk/internal/db"
	"careertalk/internal/handlers"
	"careertalk/internal/logger"
	"careertalk/internal/middleware"
	"careertalk/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file; system env vars are fine too
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("Failed to load config: %v", err)
	}

	// Initialize Database
	db.Init()

	// OAuth config
	handlers.InitLinkedInOAuth()

	// Initialize Gin
	r := gin.Default()

	// CORS: React 프론트엔드는 별도 호스팅
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("careertalk_session", store))

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	logger.L().Infof("CareerTalk server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal(err)
	}
}
