package dao

import (
	"context"
	"time"

	"chatgate/chatgate/sources/psql/models"
	"chatgate/chatgate/types"

	"gorm.io/gorm"
)

type TranscriptDAO struct {
	DB *gorm.DB
}

func NewTranscriptDAO(db *gorm.DB) *TranscriptDAO {
	return &TranscriptDAO{DB: db}
}

// SaveExchange stores the user's message and the bot reply together.
func (dao *TranscriptDAO) SaveExchange(ctx context.Context, subject, message, reply string, at time.Time) error {
	rows := []models.Transcript{
		{Subject: subject, Sender: string(types.SenderUser), Content: message, Timestamp: at},
		{Subject: subject, Sender: string(types.SenderBot), Content: reply, Timestamp: at},
	}
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}
