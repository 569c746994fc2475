package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting keys
const (
	SettingAdminToken    = "admin_token"
	SettingAdminUsername = "admin_username"
)

// GetSetting returns the stored value of key.
// A missing key yields an empty string, not an error.
func GetSetting(db *gorm.DB, key string) (string, error) {
	var s Setting
	err := db.Where("key = ?", key).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Value, nil
}

// SaveSetting inserts or replaces the value of key
func SaveSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// ClearSetting removes key. Removing a missing key is not an error.
func ClearSetting(db *gorm.DB, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return db.Where("key IN ?", keys).Delete(&Setting{}).Error
}
