package controllers

import (
	"fmt"
	"net/http"
	"time"

	"salon-wellness-backend/events"

	"github.com/gin-gonic/gin"
)

// EventsController streams store changes to the browser so open dashboards
// refresh without polling.
type EventsController struct {
	Broadcaster *events.Broadcaster
	Heartbeat   time.Duration
}

func (ec *EventsController) Stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	messages := make(chan string)
	ec.Broadcaster.Register(messages)
	defer ec.Broadcaster.Unregister(messages)

	heartbeat := ec.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	fmt.Fprintf(c.Writer, "data: %s\n\n", "connected")
	c.Writer.Flush()
	for {
		select {
		case message, open := <-messages:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "event: change\ndata: %s\n\n", message)
			c.Writer.Flush()
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
