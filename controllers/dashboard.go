package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"salon-wellness-backend/events"
	"salon-wellness-backend/insights"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

// Cache key prefixes of views derived from store contents. Entries are
// stored per store version, see events.VersionedKey.
const (
	DashboardCacheKey = "wellness:dashboard"
	ReportCacheKey    = "wellness:report"
)

// CachedViews lists every cached view.
var CachedViews = []string{DashboardCacheKey, ReportCacheKey}

type DashboardController struct {
	Store *store.Store
	Cache utils.RedisClient // optional
	TTL   time.Duration
}

// GetDashboardOverview returns the dashboard summary, from the cache when
// it holds one.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	var summary insights.Summary
	if cached(c, dc.Cache, events.VersionedKey(DashboardCacheKey, dc.Store.Version()), &summary) {
		c.JSON(http.StatusOK, summary)
		return
	}

	clients, sessions, version := dc.Store.Snapshot()
	summary = insights.Dashboard(clients, sessions)
	storeCached(c, dc.Cache, events.VersionedKey(DashboardCacheKey, version), summary, dc.TTL)
	c.JSON(http.StatusOK, summary)
}

func cached(c *gin.Context, cache utils.RedisClient, key string, dst interface{}) bool {
	if cache == nil {
		return false
	}
	raw, err := cache.GetFromCache(c.Request.Context(), key)
	if errors.Is(err, utils.ErrCacheMiss) {
		return false
	} else if err != nil {
		log.Printf("Cache read %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("Cache entry %s is corrupt: %v", key, err)
		return false
	}
	c.Header("X-Cache", "HIT")
	return true
}

func storeCached(c *gin.Context, cache utils.RedisClient, key string, value interface{}, ttl time.Duration) {
	if cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := cache.SetToCache(c.Request.Context(), key, string(data), ttl); err != nil {
		log.Printf("Cache write %s failed: %v", key, err)
	}
}
