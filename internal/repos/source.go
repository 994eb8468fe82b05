package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
)

// SourceRepo reads rows out of the per-source enrichment tables. The
// promotion engine treats these tables as read-only inputs and addresses
// them by name, so reads go through a raw column map instead of a typed
// model. Table names are checked against an allow-list built from the
// field mapping registry; nothing here ever interpolates caller input
// into SQL.
type SourceRepo interface {
	// GetRow returns the source row for a course as a column map, or
	// (nil, nil) when the table has no row for that course.
	GetRow(ctx context.Context, tx *gorm.DB, table, courseNumber string) (map[string]any, error)
	// ListCourseNumbers returns every course_number present in a table,
	// ordered for stable batch iteration.
	ListCourseNumbers(ctx context.Context, tx *gorm.DB, table string) ([]string, error)
}

type sourceRepo struct {
	db      *gorm.DB
	log     *logger.Logger
	allowed map[string]bool
}

func NewSourceRepo(db *gorm.DB, baseLog *logger.Logger, allowedTables []string) SourceRepo {
	allowed := make(map[string]bool, len(allowedTables))
	for _, t := range allowedTables {
		allowed[t] = true
	}
	return &sourceRepo{
		db:      db,
		log:     baseLog.With("repo", "SourceRepo"),
		allowed: allowed,
	}
}

func (sr *sourceRepo) GetRow(ctx context.Context, tx *gorm.DB, table, courseNumber string) (map[string]any, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if !sr.allowed[table] {
		return nil, fmt.Errorf("unknown source table %q", table)
	}

	var rows []map[string]any
	if err := transaction.WithContext(ctx).
		Table(table).
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

func (sr *sourceRepo) ListCourseNumbers(ctx context.Context, tx *gorm.DB, table string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if !sr.allowed[table] {
		return nil, fmt.Errorf("unknown source table %q", table)
	}

	var numbers []string
	if err := transaction.WithContext(ctx).
		Table(table).
		Order("course_number").
		Pluck("course_number", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}
