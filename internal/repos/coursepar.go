package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type CourseParRepo interface {
	GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) ([]*types.CoursePar, error)
	ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseNumber string, rows []*types.CoursePar) error
}

type courseParRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseParRepo(db *gorm.DB, baseLog *logger.Logger) CourseParRepo {
	return &courseParRepo{db: db, log: baseLog.With("repo", "CourseParRepo")}
}

func (pr *courseParRepo) GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) ([]*types.CoursePar, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var rows []*types.CoursePar
	if err := transaction.WithContext(ctx).
		Where("course_number = ?", courseNumber).
		Order("hole_number").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (pr *courseParRepo) ReplaceForCourse(ctx context.Context, tx *gorm.DB, courseNumber string, rows []*types.CoursePar) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).
		Where("course_number = ?", courseNumber).
		Delete(&types.CoursePar{}).Error; err != nil {
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
