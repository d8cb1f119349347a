// @title Academic Portal API
// @version 1.0
// @description Backend for the academic portal: assignments, quizzes, reflections, portfolio evidence, notifications, realtime events and per-student analytics.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"academic_portal_backend/internal/app"
	"academic_portal_backend/internal/config"
	"academic_portal_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
