package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DigestLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	DigestDate   string    `gorm:"type:varchar(10);index"`
	Recipient    string    `gorm:"type:varchar(64)"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt       time.Time
	CreatedAt    time.Time
}

func (d *DigestLog) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = uuid.New()
	return
}
