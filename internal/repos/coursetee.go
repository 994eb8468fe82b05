package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type CourseTeeRepo interface {
	GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) ([]*types.CourseTee, error)
	// ReplaceForCourse swaps the whole tee row set for a course. Callers
	// wrap it in a transaction so the delete and insert land together.
	ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseNumber string, rows []*types.CourseTee) error
}

type courseTeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseTeeRepo(db *gorm.DB, baseLog *logger.Logger) CourseTeeRepo {
	return &courseTeeRepo{db: db, log: baseLog.With("repo", "CourseTeeRepo")}
}

func (tr *courseTeeRepo) GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) ([]*types.CourseTee, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var rows []*types.CourseTee
	if err := transaction.WithContext(ctx).
		Where("course_number = ?", courseNumber).
		Order("tee_name, hole_number").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (tr *courseTeeRepo) ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseNumber string, rows []*types.CourseTee) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if err := transaction.WithContext(ctx).
		Where("course_number = ?", courseNumber).
		Delete(&types.CourseTee{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		r.CourseNumber = courseNumber
	}
	return transaction.WithContext(ctx).Create(&rows).Error
}
