package model

import "time"

// ListeningHistory is an append-only record of a playback session.
type ListeningHistory struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	UserID       int64     `json:"userId" gorm:"index;column:user_id"`
	TrackID      string    `json:"trackId" gorm:"size:64;column:track_id"`
	PlayDuration int       `json:"playDuration"` // Seconds actually listened
	Completed    bool      `json:"completed"`
	PlayedAt     time.Time `json:"playedAt"`
}

// TableName sets the GORM table name.
func (ListeningHistory) TableName() string {
	return "listening_history"
}
