package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cliniccare/clinic-scheduler/internal/config"
	"github.com/cliniccare/clinic-scheduler/internal/models"
)

// DefaultSlots is the recurring daily pool. POST /api/daily-dates/release
// resets availability; the labels themselves never change at runtime.
var DefaultSlots = []string{
	"04:00", "06:00", "07:00", "08:00",
	"10:00", "12:00", "14:00", "16:00", "18:00",
}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.DailySlot{},
		&models.Checkup{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := SeedDailySlots(db); err != nil {
		log.Fatalf("failed to seed daily slots: %v", err)
	}

	return db
}

// SeedDailySlots inserts the default pool, leaving rows that already exist
// untouched so reserved slots survive restarts.
func SeedDailySlots(db *gorm.DB) error {
	slots := make([]models.DailySlot, 0, len(DefaultSlots))
	for _, date := range DefaultSlots {
		slots = append(slots, models.DailySlot{Date: date, Available: true})
	}

	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoNothing: true,
		}).
		Create(&slots).Error
}
