package repository

import (
	"context"

	"neurobeats/model"

	"gorm.io/gorm"
)

// PreferenceRepository is the data access interface for user preferences.
type PreferenceRepository interface {
	Create(ctx context.Context, prefs *model.UserPreferences) error
	GetByUserID(ctx context.Context, userID int64) (*model.UserPreferences, error)
	Update(ctx context.Context, prefs *model.UserPreferences) error
	UpdateFields(ctx context.Context, userID int64, fields map[string]interface{}) error
}

// gormPreferenceRepository is the GORM implementation.
type gormPreferenceRepository struct {
	db *gorm.DB
}

// NewGormPreferenceRepository creates a GORM preference repository.
func NewGormPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &gormPreferenceRepository{db: db}
}

// Create inserts a preferences row.
func (r *gormPreferenceRepository) Create(ctx context.Context, prefs *model.UserPreferences) error {
	return r.db.WithContext(ctx).Create(prefs).Error
}

// GetByUserID fetches the preferences row for a user. Returns (nil, nil)
// when absent.
func (r *gormPreferenceRepository) GetByUserID(ctx context.Context, userID int64) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&prefs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// Update writes the whole preferences row.
func (r *gormPreferenceRepository) Update(ctx context.Context, prefs *model.UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

// UpdateFields writes a partial update of the preferences row.
func (r *gormPreferenceRepository) UpdateFields(ctx context.Context, userID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.UserPreferences{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}
