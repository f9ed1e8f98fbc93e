package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringList is a custom type so GORM can scan JSON array columns.
type StringList []string

// Scan implements the sql.Scanner interface.
func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*s = nil
		return nil
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*s = nil
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// NotificationSettings is stored as a JSON column on preferences.
type NotificationSettings struct {
	Push      bool `json:"push"`
	Email     bool `json:"email"`
	Marketing bool `json:"marketing"`
}

// Scan implements the sql.Scanner interface.
func (n *NotificationSettings) Scan(value interface{}) error {
	if value == nil {
		*n = NotificationSettings{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*n = NotificationSettings{}
		return nil
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*n = NotificationSettings{}
		return nil
	}
	return json.Unmarshal(bytes, n)
}

// Value implements the driver.Valuer interface.
func (n NotificationSettings) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// DefaultNotificationSettings are applied when a preferences row is first created.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Push: true, Email: true, Marketing: false}
}

// UserPreferences holds per-user settings collected during onboarding and
// editable afterwards. One row per user, created on first sign-in.
type UserPreferences struct {
	UserID               int64                `json:"userId" gorm:"primaryKey;column:user_id"`
	FavoriteGenres       StringList           `json:"favoriteGenres" gorm:"type:text"`
	SelectedSongs        StringList           `json:"selectedSongs" gorm:"type:text"`
	ThemePreference      string               `json:"themePreference" gorm:"size:20;default:dark"`
	NotificationSettings NotificationSettings `json:"notificationSettings" gorm:"type:text"`
	OnboardingCompleted  bool                 `json:"onboardingCompleted" gorm:"default:false"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// TableName sets the GORM table name.
func (UserPreferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences returns the preferences row created for a new user.
func DefaultPreferences(userID int64) *UserPreferences {
	return &UserPreferences{
		UserID:               userID,
		FavoriteGenres:       StringList{},
		SelectedSongs:        StringList{},
		ThemePreference:      "dark",
		NotificationSettings: DefaultNotificationSettings(),
		OnboardingCompleted:  false,
	}
}
