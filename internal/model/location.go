package model

import (
	"time"
)

// Location is a geographic point recorded for a user. Rows are immutable;
// corrections are new rows and "current location" is the most recent one.
type Location struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Lat        float64   `db:"lat" json:"lat"`
	Lon        float64   `db:"lon" json:"lon"`
	Address    *string   `db:"address" json:"address,omitempty"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}
