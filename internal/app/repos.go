package app

import (
	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
)

type Repos struct {
	Sources  repos.SourceRepo
	Primary  repos.PrimaryDataRepo
	Statuses repos.PipelineStatusRepo
	Tees     repos.CourseTeeRepo
	Pars     repos.CourseParRepo
	Runs     repos.EnrichmentRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger, registry *fieldmap.Registry) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Sources:  repos.NewSourceRepo(db, log, registry.PriorityOrder()),
		Primary:  repos.NewPrimaryDataRepo(db, log),
		Statuses: repos.NewPipelineStatusRepo(db, log),
		Tees:     repos.NewCourseTeeRepo(db, log),
		Pars:     repos.NewCourseParRepo(db, log),
		Runs:     repos.NewEnrichmentRunRepo(db, log),
	}
}
