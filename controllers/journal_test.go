package controllers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"salon-wellness-backend/events"
	"salon-wellness-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGetJournal(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.JournalEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	journal := events.NewJournal(db)

	at := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	for i, e := range []events.Event{
		{Kind: events.ClientCreated, At: at, Version: 1, Client: &models.Client{ID: "c-4", Name: "田中さん"}},
		{Kind: events.SessionRecorded, At: at.Add(time.Minute), Version: 2, Session: &models.Session{ID: "s-5", ClientID: "c-4"}},
	} {
		if err := journal.Publish(context.Background(), e); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	jc := &JournalController{Journal: journal}
	r := gin.New()
	r.GET("/api/journal", jc.GetJournal)

	var entries []models.JournalEntry
	decode(t, doRequest(r, http.MethodGet, "/api/journal", ""), &entries)
	if len(entries) != 2 || entries[0].Kind != "session_recorded" || entries[0].SessionID != "s-5" {
		t.Errorf("entries = %+v", entries)
	}

	decode(t, doRequest(r, http.MethodGet, "/api/journal?limit=1", ""), &entries)
	if len(entries) != 1 || entries[0].ClientID != "c-4" {
		t.Errorf("limited entries = %+v", entries)
	}

	for _, bad := range []string{"0", "-3", "many"} {
		if w := doRequest(r, http.MethodGet, "/api/journal?limit="+bad, ""); w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s status = %d, want 400", bad, w.Code)
		}
	}
}
