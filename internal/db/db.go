package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salonlink/salon-scheduler/internal/config"
	"github.com/salonlink/salon-scheduler/internal/models"
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
		&models.Area{},
		&models.Tag{},
		&models.Shop{},
		&models.User{},
		&models.Menu{},
		&models.Client{},
		&models.WorkingSchedule{},
		&models.Reservation{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	for _, stmt := range bootstrapStatements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("bootstrap sql failed: %v", err)
		}
	}

	return db
}

// slotExclusionConstraint is the multi-process backstop behind the
// in-transaction conflict check: two racing inserts can never both
// commit. starts_at/ends_at migrate as timestamptz, so the range
// expression must be tstzrange; tsrange does not resolve for
// timestamptz arguments and the ALTER would fail.
const slotExclusionConstraint = `
    ALTER TABLE reservations
    ADD CONSTRAINT reservations_slot_excl
    EXCLUDE USING gist (
        stylist_id WITH =,
        tstzrange(starts_at, ends_at) WITH &&
    )
    WHERE (status <> 'cancelled')
`

var bootstrapStatements = []string{
	`UPDATE shops
     SET timezone = 'Asia/Tokyo'
     WHERE timezone IS NULL OR timezone = ''`,
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_slot_excl`,
	slotExclusionConstraint,
}
