package controllers

import (
	"errors"
	"net/http"
	"time"

	"salon-wellness-backend/insights"
	"salon-wellness-backend/models"
	"salon-wellness-backend/query"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type ClientController struct {
	Store *store.Store
	Now   func() time.Time
}

// ClientDetail is a client with its visit history.
type ClientDetail struct {
	Client             models.Client          `json:"client"`
	Sessions           []insights.SessionView `json:"sessions"`
	DaysSinceLastVisit *int                   `json:"daysSinceLastVisit"`
}

// GetClients lists clients, newest first. ?q= filters by name; with
// ?picker=1 the keyword also matches age label and customer number.
func (cc *ClientController) GetClients(c *gin.Context) {
	clients := cc.Store.Clients()
	keyword := c.Query("q")
	if isTruthy(c.Query("picker")) {
		clients = query.PickClients(clients, keyword)
	} else {
		clients = query.SearchClients(clients, keyword)
	}
	if clients == nil {
		clients = []models.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// CreateClient registers a client with no visits yet.
func (cc *ClientController) CreateClient(c *gin.Context) {
	var input models.NewClientInput
	if err := decodeObject(c, &input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	client, err := cc.Store.AddClient(input)
	if errors.Is(err, store.ErrInvalidClient) {
		utils.RespondWithError(c, http.StatusBadRequest, "name and ageLabel are required")
		return
	} else if err != nil {
		c.Error(err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClient returns one client with its sessions in recorded order.
func (cc *ClientController) GetClient(c *gin.Context) {
	client, ok := cc.Store.Client(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	idx := map[string]models.Client{client.ID: client}
	sessions := query.SessionsForClient(cc.Store.Sessions(), client.ID)
	detail := ClientDetail{
		Client:   client,
		Sessions: make([]insights.SessionView, 0, len(sessions)),
	}
	for _, s := range sessions {
		detail.Sessions = append(detail.Sessions, insights.ViewSession(s, idx))
	}
	if last, err := utils.ParseDate(client.LastVisit); err == nil {
		days := utils.DaysBetween(last, cc.now())
		detail.DaysSinceLastVisit = &days
	}

	c.JSON(http.StatusOK, detail)
}

func (cc *ClientController) now() time.Time {
	if cc.Now != nil {
		return cc.Now()
	}
	return time.Now()
}
