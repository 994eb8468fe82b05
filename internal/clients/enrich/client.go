package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/pkg/httpx"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
	"github.com/fairwaylabs/coursedesk-backend/internal/utils"
)

// stepPaths maps pipeline step numbers to the enrichment script
// endpoints. The scripts themselves are a black box; the console only
// invokes them and records the outcome.
var stepPaths = [types.PipelineStepCount]string{
	"scrape-course-website",
	"fetch-google-places",
	"fetch-place-photos",
	"scrape-course-details",
	"discover-review-urls",
	"scrape-golfnow-reviews",
	"scrape-golfpass-reviews",
	"aggregate-reviews",
	"score-course",
	"build-attribute-vector",
	"generate-analysis",
	"extract-tee-data",
	"extract-par-data",
}

// StepName returns the endpoint slug for a 1-based pipeline step.
func StepName(step int) string {
	if step < 1 || step > types.PipelineStepCount {
		return ""
	}
	return stepPaths[step-1]
}

type StepResult struct {
	Step   int             `json:"step"`
	Name   string          `json:"name"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

type Client interface {
	RunStep(ctx context.Context, step int, courseNumber string) (*StepResult, error)
}

type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv(log *logger.Logger) Config {
	return Config{
		BaseURL:    strings.TrimSpace(os.Getenv("ENRICH_BASE_URL")),
		ServiceKey: strings.TrimSpace(os.Getenv("ENRICH_SERVICE_KEY")),
		Timeout:    time.Duration(utils.GetEnvAsInt("ENRICH_TIMEOUT_SECONDS", 120, log)) * time.Second,
		MaxRetries: utils.GetEnvAsInt("ENRICH_MAX_RETRIES", 2, log),
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv(log))
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing ENRICH_BASE_URL")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &client{
		log:        log.With("client", "EnrichClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "enrich: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("enrich http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) RunStep(ctx context.Context, step int, courseNumber string) (*StepResult, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("enrich client unavailable")
	}
	name := StepName(step)
	if name == "" {
		return nil, fmt.Errorf("enrich: step %d out of range", step)
	}
	if strings.TrimSpace(courseNumber) == "" {
		return nil, fmt.Errorf("enrich: course number required")
	}

	endpoint := fmt.Sprintf("%s/%s", c.cfg.BaseURL, name)
	payload, err := json.Marshal(map[string]string{"course_number": courseNumber})
	if err != nil {
		return nil, err
	}

	backoff := 1 * time.Second
	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		detail, resp, err := c.post(ctx, endpoint, payload)
		if err == nil {
			return &StepResult{Step: step, Name: name, Detail: detail}, nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.cfg.MaxRetries {
			return nil, err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 30*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("Enrichment step retrying",
			"step", step,
			"name", name,
			"course_number", courseNumber,
			"attempt", attempt+1,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}
}

func (c *client) post(ctx context.Context, endpoint string, payload []byte) (json.RawMessage, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.ServiceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if len(body) == 0 || !json.Valid(body) {
		return nil, resp, nil
	}
	return json.RawMessage(body), resp, nil
}
