package main

import (
	"os"
	"os/signal"
	"syscall"

	config "github.com/anjiri1684/taskmate/configs"
	"github.com/anjiri1684/taskmate/database"
	"github.com/anjiri1684/taskmate/jobs"
	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/notifications"
	"github.com/anjiri1684/taskmate/routes"
	"github.com/anjiri1684/taskmate/websocket"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	logger.Init(config.Config("APP_ENV"))
	defer logger.Sync()

	if err := config.Require("JWT_SECRET"); err != nil {
		logger.Log.Fatal("🔥 Refusing to start", zap.Error(err))
	}

	database.ConnectDB()
	database.Migrate()
	notifications.InitEmailService()

	c := cron.New()
	if _, err := c.AddFunc("*/30 * * * *", jobs.PruneEmptyConversations); err != nil {
		logger.Log.Fatal("🔥 Failed to schedule prune job", zap.Error(err))
	}
	c.Start()
	defer c.Stop()
	logger.Log.Info("✅ Cron job for conversation pruning scheduled successfully.")

	go websocket.RunHub()

	app := routes.NewApp()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	port := config.ConfigDefault("PORT", "8080")
	logger.Log.Info("✅ Server is running", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		logger.Log.Fatal("🔥 Server failed to start", zap.Error(err))
	}
}
