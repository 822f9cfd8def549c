package main

import (
	"log"

	"github.com/arvind-722/ProfitNest/config"
	"github.com/arvind-722/ProfitNest/controllers"
	"github.com/arvind-722/ProfitNest/jobs"
	"github.com/arvind-722/ProfitNest/routes"
	"github.com/arvind-722/ProfitNest/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Start the daily profit settlement scheduler
	scheduler := jobs.NewAccrualScheduler(config.DB, cfg.SweepSchedule)
	if err := scheduler.Start(); err != nil {
		utils.LogError("Failed to start accrual scheduler: %v", err)
		log.Fatal("Failed to start accrual scheduler:", err)
	}
	defer scheduler.Stop()

	// Set up router
	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
