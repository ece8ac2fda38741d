package helper

import (
	"fmt"
	"log"
	"time"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/model"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ConflictsWithWindow reports whether an existing reservation starting at
// existingStart blocks a new booking of [newStart, newStart+duration). The
// existing side always occupies a fixed window regardless of its own
// configured duration.
func ConflictsWithWindow(existingStart, newStart time.Time, durationMinutes int) bool {
	newEnd := newStart.Add(time.Duration(durationMinutes) * time.Minute)
	window := time.Duration(constants.RESERVATION_WINDOW_MINUTES) * time.Minute
	return existingStart.Before(newEnd) && existingStart.Add(window).After(newStart)
}

// HasConflictingReservation checks the store for a pending/confirmed
// reservation on the table whose fixed window overlaps the requested slot.
func HasConflictingReservation(db *gorm.DB, tableID uint, excludeID uint, start time.Time, durationMinutes int) (bool, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	interval := fmt.Sprintf("%d minutes", constants.RESERVATION_WINDOW_MINUTES)

	var count int64
	err := db.Model(&model.Reservation{}).
		Where("table_id = ? AND id <> ?", tableID, excludeID).
		Where("status IN ?", []string{constants.RESERVATION_PENDING, constants.RESERVATION_CONFIRMED}).
		Where("date < ? AND date + ?::interval > ?", end, interval, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ActiveReservationCount counts the remaining pending/confirmed future
// reservations on a table, excluding one reservation id.
func ActiveReservationCount(db *gorm.DB, tableID uint, excludeID uint) (int64, error) {
	var count int64
	err := db.Model(&model.Reservation{}).
		Where("table_id = ? AND id <> ?", tableID, excludeID).
		Where("status IN ?", []string{constants.RESERVATION_PENDING, constants.RESERVATION_CONFIRMED}).
		Where("date > ?", time.Now().UTC()).
		Count(&count).Error
	return count, err
}

// ReleaseTableIfIdle frees a reserved table when no active reservation
// remains on it. Occupied tables are left alone; their lifecycle belongs to
// the order and billing paths.
func ReleaseTableIfIdle(db *gorm.DB, tableID uint, excludeReservationID uint) error {
	count, err := ActiveReservationCount(db, tableID, excludeReservationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Model(&model.Table{}).
		Where("id = ? AND status = ?", tableID, constants.TABLE_RESERVED).
		Update("status", constants.TABLE_FREE).Error
}

var reservationScheduler *cron.Cron

// StartReservationScheduler begins the periodic no-show sweep.
func StartReservationScheduler() {
	reservationScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := reservationScheduler.AddFunc("*/5 * * * *", sweepNoShows)
	if err != nil {
		log.Printf("failed to start reservation scheduler: %v", err)
		return
	}

	reservationScheduler.Start()
	log.Println("reservation no-show scheduler started (every 5 minutes)")
}

func StopReservationScheduler() {
	if reservationScheduler != nil {
		reservationScheduler.Stop()
		log.Println("reservation no-show scheduler stopped")
	}
}

// sweepNoShows marks pending/confirmed reservations whose whole window has
// elapsed as no-shows and releases their tables.
func sweepNoShows() {
	db := database.DB
	now := time.Now().UTC()

	var stale []model.Reservation
	err := db.Where("status IN ?", []string{constants.RESERVATION_PENDING, constants.RESERVATION_CONFIRMED}).
		Where("date + (duration || ' minutes')::interval < ?", now).
		Find(&stale).Error
	if err != nil {
		log.Printf("no-show sweep query failed: %v", err)
		return
	}

	for _, reservation := range stale {
		if err := db.Model(&reservation).Update("status", constants.RESERVATION_NO_SHOW).Error; err != nil {
			log.Printf("no-show update failed for reservation %d: %v", reservation.ID, err)
			continue
		}
		if reservation.TableId != nil {
			if err := ReleaseTableIfIdle(db, *reservation.TableId, reservation.ID); err != nil {
				log.Printf("table release failed for reservation %d: %v", reservation.ID, err)
			}
		}
	}
	if len(stale) > 0 {
		log.Printf("marked %d reservations as no-show", len(stale))
	}
}
