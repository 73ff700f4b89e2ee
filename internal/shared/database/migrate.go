package database

import (
	"padelhub/internal/clubs"
	"padelhub/internal/courts"
	"padelhub/internal/reservations"
	"padelhub/internal/reviews"
	"padelhub/internal/slots"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&clubs.Club{},
		&courts.Court{},
		&slots.Slot{},
		&reservations.Reservation{},
		&reviews.Review{},
	)
}
