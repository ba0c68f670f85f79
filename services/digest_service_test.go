package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"salon-wellness-backend/models"
	"salon-wellness-backend/store"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSender struct {
	sent []*twilioApi.CreateMessageParams
	err  error
}

func (f *fakeSender) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func digestStore() *store.Store {
	return store.New(store.Seed{
		Clients: []models.Client{
			{ID: "c-1", Name: "佐藤さん", FirstVisitDate: "2025-01-10"},
			{ID: "c-2", Name: "田中さん", FirstVisitDate: "2025-03-04"},
		},
		Sessions: []models.Session{
			{ID: "s-1", ClientID: "c-1", Date: "2025-03-04", HRVBefore: models.Float(30), HRVAfter: models.Float(42)},
			{ID: "s-2", ClientID: "c-2", Date: "2025-03-04", HRVBefore: models.Float(30), HRVAfter: models.Float(31)},
			{ID: "s-3", ClientID: "c-1", Date: "2025-02-01"},
		},
	})
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.DigestLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestBuildDigest(t *testing.T) {
	st := digestStore()
	d := BuildDigest(st.Clients(), st.Sessions(), "2025-03-04")

	if d.Sessions != 2 || d.NewClients != 1 {
		t.Errorf("digest = %+v, want 2 sessions and 1 new client", d)
	}
	if d.AvgHRVChange == nil || *d.AvgHRVChange != 6.5 {
		t.Errorf("AvgHRVChange = %v, want 6.5", d.AvgHRVChange)
	}
	msg := d.Message("森の深眠スパ")
	for _, want := range []string{"2025-03-04", "施術 2件", "+6.5ms", "改善 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestSendDailyDigestLogsEachRecipient(t *testing.T) {
	db := openTestDB(t)
	sender := &fakeSender{}
	svc := NewDigestService(digestStore(), db, sender, DigestConfig{
		SalonName:      "森の深眠スパ",
		PhoneNumber:    "+15550000000",
		WhatsAppNumber: "+15551111111",
		Recipients:     []string{"+819012345678", "09012345678"},
	})
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 21, 0, 0, 0, time.Local) }

	if err := svc.SendDailyDigest(); err != nil {
		t.Fatalf("SendDailyDigest = %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.sent))
	}
	if *sender.sent[0].To != "whatsapp:+819012345678" || *sender.sent[1].To != "09012345678" {
		t.Errorf("recipients = %s, %s", *sender.sent[0].To, *sender.sent[1].To)
	}

	var logs []models.DigestLog
	db.Order("channel").Find(&logs)
	if len(logs) != 2 || logs[0].Channel != "sms" || logs[1].Channel != "whatsapp" {
		t.Errorf("logs = %+v", logs)
	}
}

func TestSendDailyDigestFailure(t *testing.T) {
	db := openTestDB(t)
	sender := &fakeSender{err: errors.New("twilio down")}
	svc := NewDigestService(digestStore(), db, sender, DigestConfig{Recipients: []string{"09012345678"}})
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 21, 0, 0, 0, time.Local) }

	if err := svc.SendDailyDigest(); err == nil {
		t.Fatal("SendDailyDigest = nil, want error")
	}
	var entry models.DigestLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("no digest log: %v", err)
	}
	if entry.Status != "failed" || entry.ErrorMessage != "twilio down" {
		t.Errorf("log = %+v", entry)
	}
}

func TestSendDailyDigestSkipsQuietDay(t *testing.T) {
	sender := &fakeSender{}
	svc := NewDigestService(digestStore(), nil, sender, DigestConfig{Recipients: []string{"09012345678"}})
	svc.now = func() time.Time { return time.Date(2025, 3, 5, 21, 0, 0, 0, time.Local) }

	if err := svc.SendDailyDigest(); err != nil {
		t.Fatalf("SendDailyDigest = %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages on a day without sessions", len(sender.sent))
	}
}
