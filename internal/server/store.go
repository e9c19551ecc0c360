package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/templata/go-profilegen/pkg/fault"
	"github.com/templata/go-profilegen/pkg/profile"
)

// profileRow is the storage shape of a profile record. Field values are kept
// as one JSON document per row; the service treats them as opaque.
type profileRow struct {
	ID         uint   `gorm:"primaryKey"`
	TemplateID string `gorm:"size:64;not null;uniqueIndex:idx_template_profile,priority:1"`
	ProfileID  string `gorm:"size:64;not null;uniqueIndex:idx_template_profile,priority:2"`
	Fields     string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists profile records with last-writer-wins overwrite semantics:
// saving an existing template+profile pair replaces its fields wholesale.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (and migrates) a sqlite-backed store at path. Use ":memory:"
// for tests.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("server: open store %q: %w", path, err)
	}
	if err := db.AutoMigrate(&profileRow{}); err != nil {
		return nil, fmt.Errorf("server: migrate store: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes the payload under templateID+profileID. An empty profileID
// gets a freshly assigned UUID.
func (s *Store) Save(templateID, profileID string, payload profile.Payload) (profile.Record, error) {
	if profileID == "" {
		profileID = uuid.NewString()
	}
	fields, err := json.Marshal(payload)
	if err != nil {
		return profile.Record{}, fmt.Errorf("server: encode fields: %w", err)
	}

	var row profileRow
	err = s.db.Where("template_id = ? AND profile_id = ?", templateID, profileID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = profileRow{TemplateID: templateID, ProfileID: profileID, Fields: string(fields)}
		if err := s.db.Create(&row).Error; err != nil {
			return profile.Record{}, fmt.Errorf("server: create record: %w", err)
		}
	case err != nil:
		return profile.Record{}, fmt.Errorf("server: lookup record: %w", err)
	default:
		row.Fields = string(fields)
		if err := s.db.Save(&row).Error; err != nil {
			return profile.Record{}, fmt.Errorf("server: overwrite record: %w", err)
		}
	}
	return rowToRecord(row)
}

// Fetch reads the record for templateID+profileID, or a NotFound fault.
func (s *Store) Fetch(templateID, profileID string) (profile.Record, error) {
	var row profileRow
	err := s.db.Where("template_id = ? AND profile_id = ?", templateID, profileID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profile.Record{}, fault.Newf(fault.NotFound, "profile %s/%s", templateID, profileID)
	}
	if err != nil {
		return profile.Record{}, fmt.Errorf("server: lookup record: %w", err)
	}
	return rowToRecord(row)
}

func rowToRecord(row profileRow) (profile.Record, error) {
	var payload profile.Payload
	if err := json.Unmarshal([]byte(row.Fields), &payload); err != nil {
		return profile.Record{}, fmt.Errorf("server: decode fields: %w", err)
	}
	return profile.Record{
		TemplateID: row.TemplateID,
		ProfileID:  row.ProfileID,
		Fields:     payload,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}
