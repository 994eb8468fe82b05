package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
)

// PromoteResult reports one course's reconciliation.
type PromoteResult struct {
	Created       bool `json:"created"`
	FieldsUpdated int  `json:"fields_updated"`
}

// BatchResult accumulates a promote-all pass.
type BatchResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// PromotionService reconciles canonical primary_data rows against the
// source tables. For each canonical field the highest-priority source with
// a non-null value wins a run, except fields an operator has marked
// manual, which promotion never touches. Equal-value writes are skipped so
// _updated_at always means "last change", not "last check".
type PromotionService interface {
	PromoteCourse(ctx context.Context, courseNumber string) (PromoteResult, error)
	PromoteAll(ctx context.Context) (BatchResult, error)
}

type promotionService struct {
	db       *gorm.DB
	log      *logger.Logger
	registry *fieldmap.Registry
	sources  repos.SourceRepo
	primary  repos.PrimaryDataRepo
	notifier Notifier
}

func NewPromotionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	registry *fieldmap.Registry,
	sources repos.SourceRepo,
	primary repos.PrimaryDataRepo,
	notifier Notifier,
) PromotionService {
	return &promotionService{
		db:       db,
		log:      baseLog.With("service", "PromotionService"),
		registry: registry,
		sources:  sources,
		primary:  primary,
		notifier: notifier,
	}
}

func (s *promotionService) PromoteCourse(ctx context.Context, courseNumber string) (PromoteResult, error) {
	if courseNumber == "" {
		return PromoteResult{}, fmt.Errorf("missing course number")
	}

	now := time.Now().UTC()

	current, err := s.primary.GetRow(ctx, nil, courseNumber)
	if err != nil {
		return PromoteResult{}, fmt.Errorf("read primary_data for %s: %w", courseNumber, err)
	}

	result := PromoteResult{}
	if current == nil {
		current, err = s.seedCanonicalRow(ctx, courseNumber, now)
		if err != nil {
			return PromoteResult{}, err
		}
		result.Created = true
	}

	sourceRows := s.readSourceRows(ctx, courseNumber)

	// Walk tables highest-priority first. The first table to supply a
	// non-null value for a canonical field claims it for this run.
	claimed := make(map[string]bool)
	staged := make(map[string]map[string]any)
	for _, table := range s.registry.PriorityOrder() {
		row := sourceRows[table]
		if row == nil {
			continue
		}
		label := s.registry.SourceLabel(table)
		for srcCol, canCol := range s.registry.MappingsFor(table) {
			raw, ok := row[srcCol]
			if !ok || raw == nil {
				continue
			}
			if claimed[canCol] {
				continue
			}
			if src, _ := current[canCol+"_source"].(string); src == fieldmap.SourceManual {
				continue
			}

			ft := s.registry.TypeOf(canCol)
			val, convErr := fieldmap.Convert(ft, raw)
			if convErr != nil {
				s.log.Warn("Skipping unconvertible source value",
					"course_number", courseNumber, "table", table, "column", srcCol, "error", convErr)
				continue
			}
			if val == nil {
				continue
			}

			claimed[canCol] = true
			if fieldmap.Equal(ft, val, current[canCol]) {
				continue
			}

			if staged[table] == nil {
				staged[table] = make(map[string]any)
			}
			staged[table][canCol] = val
			staged[table][canCol+"_source"] = label
			staged[table][canCol+"_updated_at"] = now
		}
	}

	for _, table := range s.registry.PriorityOrder() {
		fields := staged[table]
		if len(fields) == 0 {
			continue
		}
		if err := s.primary.UpdateFields(ctx, nil, courseNumber, fields); err != nil {
			return result, fmt.Errorf("promote %s from %s: %w", courseNumber, table, err)
		}
		// three columns per field
		result.FieldsUpdated += len(fields) / 3
	}

	if s.notifier != nil {
		s.notifier.PromotionCompleted(courseNumber, result)
	}
	return result, nil
}

// seedCanonicalRow creates the primary_data row for a course, populated
// from the seed upload table with every field stamped usgolf_data. A
// course missing from the seed table still gets a bare row so the other
// sources can promote into it.
func (s *promotionService) seedCanonicalRow(ctx context.Context, courseNumber string, now time.Time) (map[string]any, error) {
	seedTable := s.registry.SeedTable()
	label := s.registry.SourceLabel(seedTable)

	seedRow, err := s.sources.GetRow(ctx, nil, seedTable, courseNumber)
	if err != nil {
		return nil, fmt.Errorf("read %s for %s: %w", seedTable, courseNumber, err)
	}

	row := map[string]any{"course_number": courseNumber}
	if seedRow == nil {
		s.log.Warn("Seeding canonical row without upload data", "course_number", courseNumber)
	} else {
		for srcCol, canCol := range s.registry.MappingsFor(seedTable) {
			raw, ok := seedRow[srcCol]
			if !ok || raw == nil {
				continue
			}
			val, convErr := fieldmap.Convert(s.registry.TypeOf(canCol), raw)
			if convErr != nil {
				s.log.Warn("Skipping unconvertible seed value",
					"course_number", courseNumber, "column", srcCol, "error", convErr)
				continue
			}
			if val == nil {
				continue
			}
			row[canCol] = val
			row[canCol+"_source"] = label
			row[canCol+"_updated_at"] = now
		}
	}

	if err := s.primary.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create primary_data for %s: %w", courseNumber, err)
	}
	return row, nil
}

// readSourceRows fetches every promotable table's row for a course. The
// reads are independent, so they run concurrently; a failed or missing
// read just means that table contributes nothing this run.
func (s *promotionService) readSourceRows(ctx context.Context, courseNumber string) map[string]map[string]any {
	var mu sync.Mutex
	rows := make(map[string]map[string]any)

	g, gctx := errgroup.WithContext(ctx)
	for _, table := range s.registry.PriorityOrder() {
		g.Go(func() error {
			row, err := s.sources.GetRow(gctx, nil, table, courseNumber)
			if err != nil {
				s.log.Warn("Source table read failed; skipping for this run",
					"course_number", courseNumber, "table", table, "error", err)
				return nil
			}
			if row == nil {
				return nil
			}
			mu.Lock()
			rows[table] = row
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

func (s *promotionService) PromoteAll(ctx context.Context) (BatchResult, error) {
	numbers, err := s.sources.ListCourseNumbers(ctx, nil, s.registry.SeedTable())
	if err != nil {
		return BatchResult{}, fmt.Errorf("list courses: %w", err)
	}

	batch := BatchResult{}
	for _, courseNumber := range numbers {
		if ctx.Err() != nil {
			return batch, ctx.Err()
		}
		res, err := s.PromoteCourse(ctx, courseNumber)
		if err != nil {
			batch.Failed++
			s.log.Error("Course promotion failed; continuing batch",
				"course_number", courseNumber, "error", err)
			continue
		}
		if res.Created {
			batch.Created++
		} else {
			batch.Updated++
		}
	}
	s.log.Info("Promote-all finished",
		"created", batch.Created, "updated", batch.Updated, "failed", batch.Failed)
	return batch, nil
}
