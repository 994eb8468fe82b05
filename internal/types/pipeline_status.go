package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Pipeline status values. Valid transitions:
// pending -> running, running -> running|complete|error, error -> pending.
const (
	PipelineStatusPending  = "pending"
	PipelineStatusRunning  = "running"
	PipelineStatusComplete = "complete"
	PipelineStatusError    = "error"
)

// PipelineStepCount is the number of steps in the enrichment pipeline.
const PipelineStepCount = 13

// PipelineStatus tracks one course's progress through the enrichment pipeline.
type PipelineStatus struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber    string         `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	CurrentStep     int            `gorm:"not null;default:1;column:current_step" json:"current_step"`
	ProgressPercent int            `gorm:"not null;default:0;column:progress_percent" json:"progress_percent"`
	Status          string         `gorm:"not null;default:pending;column:status" json:"status"`
	StepDetails     datatypes.JSON `gorm:"type:jsonb;column:step_details" json:"step_details"`
	ErrorMessage    *string        `gorm:"column:error_message" json:"error_message"`
	LastUpdated     time.Time      `gorm:"not null;default:now();column:last_updated" json:"last_updated"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (PipelineStatus) TableName() string {
	return "pipeline_status"
}
