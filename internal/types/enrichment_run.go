package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrichmentTriggerSingle = "single"
	EnrichmentTriggerBulk   = "bulk"

	EnrichmentRunRunning  = "running"
	EnrichmentRunComplete = "complete"
	EnrichmentRunError    = "error"
)

// EnrichmentRun records one triggered pass of the enrichment pipeline for a
// course, so bulk runs stay auditable after the fact.
type EnrichmentRun struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber string     `gorm:"index;not null;column:course_number" json:"course_number"`
	Trigger      string     `gorm:"not null;column:trigger" json:"trigger"`
	Status       string     `gorm:"not null;default:running;column:status" json:"status"`
	ErrorMessage *string    `gorm:"column:error_message" json:"error_message"`
	StartedAt    time.Time  `gorm:"not null;default:now();column:started_at" json:"started_at"`
	FinishedAt   *time.Time `gorm:"column:finished_at" json:"finished_at"`
}

func (EnrichmentRun) TableName() string {
	return "enrichment_runs"
}
