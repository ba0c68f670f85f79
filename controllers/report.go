package controllers

import (
	"net/http"
	"time"

	"salon-wellness-backend/events"
	"salon-wellness-backend/insights"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController serves the analytics page.
type ReportController struct {
	Store *store.Store
	Cache utils.RedisClient // optional
	TTL   time.Duration
	Now   func() time.Time
}

// GetReportAnalytics returns period growth, top menus, clients and lifestyle
// tags, status breakdown and score averages.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	var report insights.Report
	if cached(c, rc.Cache, events.VersionedKey(ReportCacheKey, rc.Store.Version()), &report) {
		c.JSON(http.StatusOK, report)
		return
	}

	now := time.Now()
	if rc.Now != nil {
		now = rc.Now()
	}
	clients, sessions, version := rc.Store.Snapshot()
	report = insights.BuildReport(clients, sessions, now)
	storeCached(c, rc.Cache, events.VersionedKey(ReportCacheKey, version), report, rc.TTL)
	c.JSON(http.StatusOK, report)
}
