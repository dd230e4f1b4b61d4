package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/alessioferri/trattoria-app/config"
	"github.com/alessioferri/trattoria-app/database"
	"github.com/alessioferri/trattoria-app/middlewares"
	"github.com/alessioferri/trattoria-app/router"
	"github.com/alessioferri/trattoria-app/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := database.OpenMySQL(cfg.MySQLDSN)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to mysql: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	mdb, err := database.OpenMongo(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to mongo: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(db, mdb, cfg)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
