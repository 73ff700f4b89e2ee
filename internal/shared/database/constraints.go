package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// A slot occurrence (court, date, slot) may be held by at most one confirmed
	// reservation. Cancelled rows stay behind for history and fall out of the index.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_confirmed_occurrence
		ON reservations (court_id, date, slot_id)
		WHERE status = 'CONFIRMED';
	`).Error
	if err != nil {
		return err
	}

	// Booked-occurrence lookups are always (court_id, date)
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservations_court_date
		ON reservations (court_id, date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
