package store

import (
	"database/sql"
	"time"
)

// GetNotification returns the date a reminder key was last sent, or "" when
// it never was.
func (db *DB) GetNotification(key string) (string, error) {
	var sentOn string
	err := db.Get(&sentOn, "SELECT sent_on FROM notifications WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return sentOn, err
}

// SetNotification records that the reminder key was sent on the given date.
func (db *DB) SetNotification(key, sentOn string) error {
	_, err := db.Exec(`
		INSERT INTO notifications (key, sent_on, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET sent_on = excluded.sent_on, updated_at = excluded.updated_at
	`, key, sentOn, time.Now())
	return err
}
