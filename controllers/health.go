package controllers

import (
	"net/http"

	"salon-wellness-backend/store"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Store *store.Store
}

func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"clients":  len(hc.Store.Clients()),
		"sessions": len(hc.Store.Sessions()),
	})
}
