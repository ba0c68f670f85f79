package controllers

import (
	"net/http"

	"salon-wellness-backend/models"
	"salon-wellness-backend/query"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Store *store.Store
}

// GetSessions lists sessions in recorded order. ?clientId= narrows to one
// client ("all" keeps everything); ?sort=recent orders by date, newest first.
func (sc *SessionController) GetSessions(c *gin.Context) {
	sessions := sc.Store.Sessions()
	if clientID := c.Query("clientId"); clientID != "" {
		sessions = query.FilterSessionsByClient(sessions, clientID)
	}
	if c.Query("sort") == "recent" {
		sessions = query.SortByRecency(sessions)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	c.JSON(http.StatusOK, sessions)
}

// CreateSession records a session. The id, date and visit number are filled
// in by the store.
func (sc *SessionController) CreateSession(c *gin.Context) {
	var session models.Session
	if err := decodeObject(c, &session); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, sc.Store.AddSession(session))
}
