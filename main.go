// main.go
package main

import (
	"log"
	"time"

	"appointment-booking/cmd"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/wire"
	"appointment-booking/pkg/database"
	"appointment-booking/pkg/lock"
	"appointment-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Slot locking is optional. Without redis the unique index on active
	// bookings still prevents double booking.
	var locker lock.SlotLocker = lock.NoopLocker{}
	if config.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		ttl := time.Duration(config.Booking.LockTTLSeconds) * time.Second
		locker = lock.NewRedisLocker(client, ttl)
		logger.Info("Redis slot locking enabled", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("Redis not configured, slot locking disabled")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, locker)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
