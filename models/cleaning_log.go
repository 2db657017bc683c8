package models

import (
	"time"
)

type CleaningLog struct {
	ID        uint      `json:"id"`
	TableID   string    `json:"table_id"`
	CleanedBy string    `json:"cleaned_by"`
	CleanedAt time.Time `json:"cleaned_at"`
}
