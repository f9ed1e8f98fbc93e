package repository

import (
	"context"
	"time"

	"neurobeats/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository is the append-only listening history store.
type HistoryRepository interface {
	Append(ctx context.Context, userID int64, trackID string, playDuration int, completed bool) (*model.ListeningHistory, error)
	Recent(ctx context.Context, userID int64, limit int) ([]*model.ListeningHistory, error)
}

// gormHistoryRepository is the GORM implementation.
type gormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

// Append records one playback session.
func (r *gormHistoryRepository) Append(ctx context.Context, userID int64, trackID string, playDuration int, completed bool) (*model.ListeningHistory, error) {
	entry := &model.ListeningHistory{
		ID:           uuid.NewString(),
		UserID:       userID,
		TrackID:      trackID,
		PlayDuration: playDuration,
		Completed:    completed,
		PlayedAt:     time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Recent returns the user's most recent playback records, newest first.
func (r *gormHistoryRepository) Recent(ctx context.Context, userID int64, limit int) ([]*model.ListeningHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []*model.ListeningHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("played_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
