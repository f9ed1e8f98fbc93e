package repository

import (
	"database/sql"
	"fmt"

	"neurobeats/model"
)

// ProfileRepository defines the interface for profile row operations. A
// profile is the user-editable mirror of the identity record, created on
// first sign-in.
type ProfileRepository interface {
	CreateProfile(profile *model.Profile) error
	GetProfile(userID int64) (*model.Profile, error)
	UpdateProfile(profile *model.Profile) error
	UpdateIdentityFields(userID int64, email, username, avatarURL string) error
	IsUsernameAvailable(username string, excludeUserID int64) (bool, error)
}

// mysqlProfileRepository implements ProfileRepository for MySQL.
type mysqlProfileRepository struct {
	db *sql.DB
}

// NewMySQLProfileRepository creates a new mysqlProfileRepository.
func NewMySQLProfileRepository(db *sql.DB) ProfileRepository {
	return &mysqlProfileRepository{db: db}
}

// CreateProfile inserts a new profile row.
func (r *mysqlProfileRepository) CreateProfile(profile *model.Profile) error {
	query := "INSERT INTO profiles (user_id, username, email, full_name, bio, avatar_url) VALUES (?, ?, ?, ?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare create profile statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(profile.UserID, profile.Username, profile.Email, profile.FullName, profile.Bio, profile.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to execute create profile statement: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user ID. Returns (nil, nil) when absent.
func (r *mysqlProfileRepository) GetProfile(userID int64) (*model.Profile, error) {
	query := "SELECT user_id, username, email, full_name, COALESCE(bio, ''), COALESCE(avatar_url, ''), created_at, updated_at FROM profiles WHERE user_id = ?"
	row := r.db.QueryRow(query, userID)
	profile := &model.Profile{}
	err := row.Scan(&profile.UserID, &profile.Username, &profile.Email, &profile.FullName, &profile.Bio, &profile.AvatarURL, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Profile not found
		}
		return nil, fmt.Errorf("failed to scan profile row for user %d: %w", userID, err)
	}
	return profile, nil
}

// UpdateProfile writes the user-editable fields of a profile row.
func (r *mysqlProfileRepository) UpdateProfile(profile *model.Profile) error {
	query := "UPDATE profiles SET username = ?, full_name = ?, bio = ?, avatar_url = ?, updated_at = NOW() WHERE user_id = ?"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare update profile statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(profile.Username, profile.FullName, profile.Bio, profile.AvatarURL, profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to execute update profile statement: %w", err)
	}
	return nil
}

// UpdateIdentityFields refreshes the fields mirrored from the identity
// record on sign-in.
func (r *mysqlProfileRepository) UpdateIdentityFields(userID int64, email, username, avatarURL string) error {
	query := "UPDATE profiles SET email = ?, username = ?, avatar_url = ?, updated_at = NOW() WHERE user_id = ?"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare update identity fields statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(email, username, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("failed to execute update identity fields statement: %w", err)
	}
	return nil
}

// IsUsernameAvailable reports whether username is free, ignoring the row of
// excludeUserID (so users can keep their own name when editing).
func (r *mysqlProfileRepository) IsUsernameAvailable(username string, excludeUserID int64) (bool, error) {
	query := "SELECT COUNT(*) FROM profiles WHERE username = ? AND user_id != ?"
	var count int
	if err := r.db.QueryRow(query, username, excludeUserID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return count == 0, nil
}
