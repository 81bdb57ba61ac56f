package db

import (
	"log"
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/config"
	"github.com/sharpcut-app/barber-marketplace/internal/models"
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

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.ScheduleBlock{},
		&models.AvailabilityOverride{},
		&models.Client{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Constraint de exclusão: nunca dois bookings ativos do mesmo
	// barbeiro com intervalos sobrepostos, mesmo sob concorrência.
	// Sem ela o INSERT concorrente só depende da transação, então uma
	// falha aqui derruba o processo em vez de passar despercebida.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}

	var constraints int64
	db.Raw(`SELECT count(*) FROM pg_constraint WHERE conname = 'bookings_no_overlap'`).
		Scan(&constraints)

	if constraints == 0 {
		if err := db.Exec(bookingsNoOverlapDDL).Error; err != nil {
			log.Fatalf("failed to create bookings_no_overlap constraint: %v", err)
		}
	}

	return db
}

// As colunas de horário são timestamptz (mapeamento do driver), então o
// range da constraint precisa ser tstzrange.
const bookingsNoOverlapDDL = `
    ALTER TABLE bookings
    ADD CONSTRAINT bookings_no_overlap
    EXCLUDE USING gist (
        barber_id WITH =,
        tstzrange(start_time, end_time) WITH &&
    )
    WHERE (status IN (
        'pending_payment',
        'pending_confirmation',
        'confirmed',
        'in_progress'
    ))`
