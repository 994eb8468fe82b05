package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/sse"
)

type SSEHandler struct {
	log *logger.Logger
	hub *sse.SSEHub
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{
		log: log.With("handler", "SSEHandler"),
		hub: hub,
	}
}

// GET /api/events/stream?channels=US-1001,global
// Streams until the client disconnects. Without a channels parameter the
// client gets the global feed.
func (h *SSEHandler) Stream(c *gin.Context) {
	client := h.hub.NewSSEClient()

	channels := strings.Split(c.Query("channels"), ",")
	subscribed := 0
	for _, ch := range channels {
		ch = strings.TrimSpace(ch)
		if ch == "" {
			continue
		}
		h.hub.AddChannel(client, ch)
		subscribed++
	}
	if subscribed == 0 {
		h.hub.AddChannel(client, sse.ChannelGlobal)
	}
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
