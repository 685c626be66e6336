package db

import (
	"log"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

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

	// O AutoMigrate cria também o índice único (barber_id, appointment_time)
	// em bookings — é ele que torna o insert de booking atômico
	if err := db.AutoMigrate(
		&models.Barber{},
		&models.UserAccount{},
		&models.Category{},
		&models.Service{},
		&models.BarberServicePrice{},
		&models.BarberSchedule{},
		&models.BarberAvailability{},
		&models.BarberException{},
		&models.BarberBreak{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
