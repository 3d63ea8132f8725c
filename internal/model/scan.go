package model

import "time"

// Scan kinds recorded in history.
const (
	ScanKindSummary   = "summary"
	ScanKindSentiment = "sentiment"
)

// Scan is one analysis history record. Rows are written once on a successful
// analysis and never updated or deleted by the application.
type Scan struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:64;not null;index"`
	Kind         string    `json:"kind" gorm:"size:16;not null"`
	OriginalText string    `json:"original_text" gorm:"type:text;not null"`
	ResultText   string    `json:"summary_text" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"timestamp"`
}
