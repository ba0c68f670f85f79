package controllers

import (
	"net/http"
	"strconv"

	"salon-wellness-backend/events"
	"salon-wellness-backend/models"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// JournalController exposes the audit journal of store changes.
type JournalController struct {
	Journal *events.Journal
}

// GetJournal lists the latest entries, newest first. ?limit= caps the count.
func (jc *JournalController) GetJournal(c *gin.Context) {
	limit := defaultJournalLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}

	entries, err := jc.Journal.Recent(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read journal")
		return
	}
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
