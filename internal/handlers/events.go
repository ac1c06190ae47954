package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/internal/utils"
	"github.com/minhph/resourcehub/pkg/logger"
	"github.com/minhph/resourcehub/pkg/response"
)

// EventsHandler streams table change notifications over Server-Sent Events.
// Clients refetch the affected list on every event rather than applying
// patches.
type EventsHandler struct {
	hub *services.ChangeHub
}

func NewEventsHandler(hub *services.ChangeHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles an SSE connection. EventSource cannot set headers, so the
// token may come through the query string instead of the Authorization
// header. An optional comma-separated tables param narrows the subscription.
// GET /api/events?token=...&tables=resources,projects
func (h *EventsHandler) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if token == "" {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if _, err := utils.ParseToken(token); err != nil {
		response.Unauthorized(c, "Invalid token")
		return
	}

	wanted := map[string]bool{}
	if tables := c.Query("tables"); tables != "" {
		for _, t := range strings.Split(tables, ",") {
			if t = strings.TrimSpace(t); t != "" {
				wanted[t] = true
			}
		}
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	clientID := uuid.New().String()

	events := h.hub.Subscribe(clientID)
	defer h.hub.Unsubscribe(clientID)

	logger.Info().Str("client_id", clientID).Int("total", h.hub.ClientCount()).Msg("SSE client connected")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			if len(wanted) > 0 && !wanted[event.Table] {
				return true
			}
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error().Err(err).Msg("SSE marshal error")
				return true
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			c.Writer.Flush()
			return true
		case <-c.Request.Context().Done():
			logger.Info().Str("client_id", clientID).Msg("SSE client disconnected")
			return false
		}
	})
}
