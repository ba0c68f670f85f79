package controllers

import (
	"fmt"
	"net/http"
	"time"

	"salon-wellness-backend/services"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Store *store.Store
	Now   func() time.Time
}

// ExportSessions downloads all sessions as an xlsx workbook.
func (ec *ExportController) ExportSessions(c *gin.Context) {
	f, err := services.BuildSessionWorkbook(ec.Store.Clients(), ec.Store.Sessions())
	if err != nil {
		c.Error(err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build export")
		return
	}
	defer f.Close()

	now := time.Now()
	if ec.Now != nil {
		now = ec.Now()
	}
	c.Header("Content-Type", services.XLSXContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFileName(now)))
	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}
