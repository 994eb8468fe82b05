package enrichrun

const (
	WorkflowName     = "enrich_run"
	ActivityBegin    = "enrich_run_begin"
	ActivityStep     = "enrich_run_step"
	ActivityComplete = "enrich_run_complete"
	ActivityFail     = "enrich_run_fail"
)

type RunInput struct {
	RunID        string `json:"run_id"`
	CourseNumber string `json:"course_number"`
}

type StepInput struct {
	RunID        string `json:"run_id"`
	CourseNumber string `json:"course_number"`
	Step         int    `json:"step"`
}

type FailInput struct {
	RunID        string `json:"run_id"`
	CourseNumber string `json:"course_number"`
	ErrorMessage string `json:"error_message"`
}
