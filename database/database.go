package database

import (
	"fmt"
	"strings"

	config "github.com/anjiri1684/taskmate/configs"
	"github.com/anjiri1684/taskmate/logger"
	"github.com/anjiri1684/taskmate/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the given driver ("postgres" or "sqlite") without touching DB.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "", "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		// Message -> Conversation relies on ON DELETE CASCADE, so constraints are created.
		DisableForeignKeyConstraintWhenMigrating: false,
		DisableNestedTransaction:                 true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func ConnectDB() {
	driver := config.ConfigDefault("DB_DRIVER", "postgres")
	db, err := Open(driver, config.Config("DATABASE_URL"))
	if err != nil {
		logger.Log.Fatal("🔥 Failed to connect to database", zap.String("driver", driver), zap.Error(err))
	}
	DB = db

	logger.Log.Info("✅ Database connected successfully", zap.String("driver", driver))
}

// AutoMigrate creates or updates every table on db. Order matters for the foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.Task{},
	)
}

func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		logger.Log.Fatal("🔥 Failed to migrate database", zap.Error(err))
	}
	logger.Log.Info("✅ Database migration successful")
}
