// chatgate/sources/psql/models/transcript.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transcript is one side of a relayed exchange, kept for operators.
type Transcript struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Subject   string    `json:"sub" gorm:"type:varchar(255);not null;index"`
	Sender    string    `json:"sender" gorm:"type:varchar(16);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

func (Transcript) TableName() string {
	return "transcripts"
}

func (t *Transcript) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
