package services

import (
	"context"

	"github.com/fairwaylabs/coursedesk-backend/internal/sse"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

// Notifier pushes enrichment and promotion events to connected console
// clients. Every event lands on the course's own channel and on the
// global channel so both the detail page and the dashboard stay live.
type Notifier interface {
	EnrichmentStarted(courseNumber string, run *types.EnrichmentRun)
	PipelineProgress(courseNumber string, status *types.PipelineStatus)
	PipelineCompleted(courseNumber string, status *types.PipelineStatus)
	PipelineFailed(courseNumber string, status *types.PipelineStatus, errorMessage string)
	PromotionCompleted(courseNumber string, result PromoteResult)
}

type sseNotifier struct {
	emit SSEEmitter
}

func NewSSENotifier(emit SSEEmitter) Notifier {
	return &sseNotifier{emit: emit}
}

func (n *sseNotifier) broadcast(courseNumber string, event sse.SSEEvent, data map[string]any) {
	if n == nil || n.emit == nil || courseNumber == "" {
		return
	}
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: courseNumber,
		Event:   event,
		Data:    data,
	})
	n.emit.Emit(context.Background(), sse.SSEMessage{
		Channel: sse.ChannelGlobal,
		Event:   event,
		Data:    data,
	})
}

func (n *sseNotifier) EnrichmentStarted(courseNumber string, run *types.EnrichmentRun) {
	n.broadcast(courseNumber, sse.SSEEventEnrichmentStarted, map[string]any{
		"course_number": courseNumber,
		"run":           run,
	})
}

func (n *sseNotifier) PipelineProgress(courseNumber string, status *types.PipelineStatus) {
	n.broadcast(courseNumber, sse.SSEEventPipelineProgress, map[string]any{
		"course_number": courseNumber,
		"status":        status,
	})
}

func (n *sseNotifier) PipelineCompleted(courseNumber string, status *types.PipelineStatus) {
	n.broadcast(courseNumber, sse.SSEEventPipelineCompleted, map[string]any{
		"course_number": courseNumber,
		"status":        status,
	})
}

func (n *sseNotifier) PipelineFailed(courseNumber string, status *types.PipelineStatus, errorMessage string) {
	n.broadcast(courseNumber, sse.SSEEventPipelineFailed, map[string]any{
		"course_number": courseNumber,
		"status":        status,
		"error":         errorMessage,
	})
}

func (n *sseNotifier) PromotionCompleted(courseNumber string, result PromoteResult) {
	n.broadcast(courseNumber, sse.SSEEventPromotionCompleted, map[string]any{
		"course_number":  courseNumber,
		"created":        result.Created,
		"fields_updated": result.FieldsUpdated,
	})
}
