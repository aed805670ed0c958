package mysql

import (
	"fmt"

	"remindly/config"
	"remindly/infrastructure/persistence/mysql/po"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to MySQL with the configured pool settings.
// TranslateError is on so duplicate keys surface as
// gorm.ErrDuplicatedKey regardless of driver wording.
func Open(cfg *config.DatabaseConfig, gormLogger gormlogger.Interface) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// AutoMigrate creates or updates the schema for all persistence
// objects, the outbox table included.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.ClientPO{},
		&po.EmailConfigurationPO{},
		&po.ReminderPO{},
		&po.ReminderRecipientPO{},
		&po.NotificationPO{},
		&po.OutboxEventPO{},
	)
}
