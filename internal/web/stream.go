package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// streamBuffer is the per-subscriber outbound buffer. A browser that falls
// further behind than this loses frames; it re-fetches full state on the
// next tab switch or reconnect.
const streamBuffer = 16

// handleStream holds a server-sent-events connection open and forwards hub
// broadcasts as `data: <json>` frames until the client disconnects.
func (s *Server) handleStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	updates, cancel := s.updates.Subscribe(streamBuffer)
	defer cancel()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			payload, err := json.Marshal(u)
			if err != nil {
				log.Printf("warning: encode stream frame: %v", err)
				continue
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
			c.Writer.Flush()
		}
	}
}
