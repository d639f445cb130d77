package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"gorm.io/gorm"

	"mealshop/config"
	"mealshop/middlewares"
	"mealshop/models"
	"mealshop/router"
	"mealshop/services"
	"mealshop/utils"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// One shared worker pool for all background dispatch, stopped on exit.
	dispatcher := services.NewDispatcher(cfg.ReminderWorkers, cfg.ReminderQueue)
	defer dispatcher.Stop()

	slackClient := slack.New(cfg.SlackToken)
	reminders := services.NewReminderService(db, slackClient, cfg.Hostname, dispatcher)

	r := router.SetupRouter(db, cfg, reminders)

	// Global limiter: 50 requests per second per IP.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Permission{},
		&models.MenuOption{},
		&models.MenuOptionCustomization{},
		&models.Menu{},
		&models.Order{},
		&models.OrderCustomization{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
