package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type EnrichmentRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.EnrichmentRun) (*types.EnrichmentRun, error)
	GetByID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) (*types.EnrichmentRun, error)
	GetLatestByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.EnrichmentRun, error)
	Finish(ctx context.Context, tx *gorm.DB, runID uuid.UUID, status string, errorMessage *string) error
}

type enrichmentRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrichmentRunRepo(db *gorm.DB, baseLog *logger.Logger) EnrichmentRunRepo {
	return &enrichmentRunRepo{db: db, log: baseLog.With("repo", "EnrichmentRunRepo")}
}

func (er *enrichmentRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.EnrichmentRun) (*types.EnrichmentRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (er *enrichmentRunRepo) GetByID(ctx context.Context, tx *gorm.DB, runID uuid.UUID) (*types.EnrichmentRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var run types.EnrichmentRun
	err := transaction.WithContext(ctx).Where("id = ?", runID).Take(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (er *enrichmentRunRepo) GetLatestByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.EnrichmentRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var run types.EnrichmentRun
	err := transaction.WithContext(ctx).
		Where("course_number = ?", courseNumber).
		Order("started_at DESC").
		Take(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (er *enrichmentRunRepo) Finish(ctx context.Context, tx *gorm.DB, runID uuid.UUID, status string, errorMessage *string) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	now := time.Now().UTC()
	return transaction.WithContext(ctx).
		Model(&types.EnrichmentRun{}).
		Where("id = ?", runID).
		Updates(map[string]any{
			"status":        status,
			"error_message": errorMessage,
			"finished_at":   now,
		}).Error
}
