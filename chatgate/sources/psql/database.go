package psql

import (
	"context"
	"fmt"

	"chatgate/chatgate/config"
	"chatgate/chatgate/sources/psql/models"
	"chatgate/chatgate/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
	)
	logging.AppLogger.Info("connecting to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	return Open(ctx, postgres.Open(connStr))
}

// Open connects through any gorm dialector and migrates the schema.
func Open(ctx context.Context, dialector gorm.Dialector) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).AutoMigrate(&models.Transcript{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return &Database{DB: db}, nil
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
