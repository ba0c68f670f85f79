package controllers

import (
	"net/http"

	"salon-wellness-backend/models"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings models.SalonSettings
}

// GetSettings returns menus, staff, HRV guideline bands and the intake
// option lists.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, sc.Settings)
}
