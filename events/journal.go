package events

import (
	"context"
	"encoding/json"
	"fmt"

	"salon-wellness-backend/models"

	"gorm.io/gorm"
)

// Journal appends every event to the journal_entries table. It is an audit
// trail only; the store is never rebuilt from it.
type Journal struct {
	db *gorm.DB
}

func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	entry := models.JournalEntry{
		Kind:       string(e.Kind),
		ClientID:   e.ClientID(),
		Payload:    string(payload),
		RecordedAt: e.At,
	}
	if e.Session != nil {
		entry.SessionID = e.Session.ID
	}
	if err := j.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := j.db.WithContext(ctx).Order("recorded_at desc").Limit(limit).Find(&entries).Error
	return entries, err
}
