package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JournalEntry is an append-only audit row for every store mutation.
// It is never read back into the store.
type JournalEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Kind       string    `gorm:"type:varchar(32);index;not null" json:"kind"` // client_created, session_recorded
	ClientID   string    `gorm:"type:varchar(64);index" json:"clientId"`
	SessionID  string    `gorm:"type:varchar(64);index" json:"sessionId,omitempty"`
	Payload    string    `gorm:"type:text" json:"payload"`
	RecordedAt time.Time `gorm:"index" json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}
