package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// PrimaryDataRepo owns the canonical per-course record. The promotion
// engine and the manual edit path both funnel their writes through
// UpdateFields so a field value and its provenance columns always land in
// one UPDATE.
type PrimaryDataRepo interface {
	// GetByCourseNumber returns nil, nil when no canonical row exists.
	GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PrimaryData, error)
	// GetRow returns the canonical row as a raw column map (nil when
	// absent), which is what the promotion engine walks when comparing
	// source values against current values and _source markers.
	GetRow(ctx context.Context, tx *gorm.DB, courseNumber string) (map[string]any, error)
	Create(ctx context.Context, tx *gorm.DB, row map[string]any) error
	UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error
	Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]*types.PrimaryData, int64, error)
}

type primaryDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPrimaryDataRepo(db *gorm.DB, baseLog *logger.Logger) PrimaryDataRepo {
	return &primaryDataRepo{db: db, log: baseLog.With("repo", "PrimaryDataRepo")}
}

func (pr *primaryDataRepo) GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PrimaryData, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var row types.PrimaryData
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

func (pr *primaryDataRepo) GetRow(ctx context.Context, tx *gorm.DB, courseNumber string) (map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var rows []map[string]any
	if err := transaction.WithContext(ctx).
		Model(&types.PrimaryData{}).
		Where("course_number = ?", courseNumber).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (pr *primaryDataRepo) Create(ctx context.Context, tx *gorm.DB, row map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.PrimaryData{}).
		Create(row).Error
}

func (pr *primaryDataRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(fields) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.PrimaryData{}).
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

func (pr *primaryDataRepo) Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]*types.PrimaryData, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	q := transaction.WithContext(ctx).Model(&types.PrimaryData{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where(
			"course_number ILIKE ? OR course_name ILIKE ? OR city ILIKE ? OR state ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.PrimaryData
	if err := q.Order("course_number").Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
