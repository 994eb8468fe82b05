package repos

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type PipelineStatusRepo interface {
	// Initialize inserts a pending status row. A duplicate-key failure
	// means another caller won the race; the existing row is fetched and
	// returned with created=false. There is deliberately no pre-check.
	Initialize(ctx context.Context, tx *gorm.DB, courseNumber string) (status *types.PipelineStatus, created bool, err error)
	GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PipelineStatus, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error
}

type pipelineStatusRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPipelineStatusRepo(db *gorm.DB, baseLog *logger.Logger) PipelineStatusRepo {
	return &pipelineStatusRepo{db: db, log: baseLog.With("repo", "PipelineStatusRepo")}
}

const uniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (pr *pipelineStatusRepo) Initialize(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PipelineStatus, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	row := &types.PipelineStatus{
		CourseNumber:    courseNumber,
		CurrentStep:     1,
		ProgressPercent: 0,
		Status:          types.PipelineStatusPending,
		LastUpdated:     time.Now().UTC(),
	}
	err := transaction.WithContext(ctx).Create(row).Error
	if err == nil {
		return row, true, nil
	}
	if !isDuplicateKey(err) {
		return nil, false, err
	}

	existing, getErr := pr.GetByCourseNumber(ctx, tx, courseNumber)
	if getErr != nil {
		return nil, false, getErr
	}
	if existing == nil {
		// Row vanished between the conflicting insert and our read.
		return nil, false, err
	}
	return existing, false, nil
}

func (pr *pipelineStatusRepo) GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PipelineStatus, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var row types.PipelineStatus
	err := transaction.WithContext(ctx).
		Where("course_number = ?", courseNumber).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (pr *pipelineStatusRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}
	if _, ok := fields["last_updated"]; !ok {
		fields["last_updated"] = time.Now().UTC()
	}

	res := transaction.WithContext(ctx).
		Model(&types.PipelineStatus{}).
		Where("course_number = ?", courseNumber).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
