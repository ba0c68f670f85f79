package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"salon-wellness-backend/insights"
	"salon-wellness-backend/models"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// MessageSender is the part of the Twilio API the digest uses.
type MessageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type DigestConfig struct {
	SalonName      string
	PhoneNumber    string
	WhatsAppNumber string
	Recipients     []string
}

// DigestService sends the owner a summary of the day's sessions.
type DigestService struct {
	store  *store.Store
	db     *gorm.DB // optional; sent messages are logged when set
	sender MessageSender
	cfg    DigestConfig
	now    func() time.Time
}

func NewDigestService(st *store.Store, db *gorm.DB, sender MessageSender, cfg DigestConfig) *DigestService {
	return &DigestService{store: st, db: db, sender: sender, cfg: cfg, now: time.Now}
}

// NewTwilioSender builds the Twilio REST client.
func NewTwilioSender(accountSID, authToken string) MessageSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return client.Api
}

// Digest is what happened on one day.
type Digest struct {
	Date         string
	Sessions     int
	NewClients   int
	AvgHRVChange *float64
	Status       map[insights.Status]int
}

func BuildDigest(clients []models.Client, sessions []models.Session, date string) Digest {
	d := Digest{Date: date, Status: map[insights.Status]int{}}
	var today []models.Session
	for _, s := range sessions {
		if s.Date == date {
			today = append(today, s)
			d.Status[insights.Classify(s)]++
		}
	}
	for _, c := range clients {
		if c.FirstVisitDate == date {
			d.NewClients++
		}
	}
	d.Sessions = len(today)
	d.AvgHRVChange, _ = insights.AverageHRVChange(today)
	return d
}

func (d Digest) Message(salonName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "【%s】%s の記録\n", salonName, d.Date)
	fmt.Fprintf(&b, "施術 %d件 / 新規 %d名\n", d.Sessions, d.NewClients)
	if d.AvgHRVChange != nil {
		fmt.Fprintf(&b, "HRV平均変化 %+.1fms", *d.AvgHRVChange)
	} else {
		b.WriteString("HRV平均変化 データ不足")
	}
	fmt.Fprintf(&b, "（改善 %d・安定 %d・疲労 %d）",
		d.Status[insights.StatusImproved], d.Status[insights.StatusStable], d.Status[insights.StatusTired])
	return b.String()
}

// SendDailyDigest messages every recipient. Days without sessions are
// skipped.
func (s *DigestService) SendDailyDigest() error {
	date := utils.Today(s.now())
	digest := BuildDigest(s.store.Clients(), s.store.Sessions(), date)
	if digest.Sessions == 0 {
		log.Printf("No sessions on %s, digest skipped", date)
		return nil
	}
	message := digest.Message(s.cfg.SalonName)

	var failed int
	for _, recipient := range s.cfg.Recipients {
		if err := s.send(date, recipient, message); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("digest failed for %d of %d recipients", failed, len(s.cfg.Recipients))
	}
	log.Printf("Daily digest for %s sent to %d recipients", date, len(s.cfg.Recipients))
	return nil
}

func (s *DigestService) send(date, recipient, message string) error {
	// WhatsApp when the number is in E.164 format and a sender is configured.
	channel := "sms"
	to := recipient
	from := s.cfg.PhoneNumber
	if strings.HasPrefix(recipient, "+") && s.cfg.WhatsAppNumber != "" {
		channel = "whatsapp"
		to = "whatsapp:" + recipient
		from = "whatsapp:" + s.cfg.WhatsAppNumber
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := s.sender.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if err != nil {
		log.Printf("Failed to send digest to %s: %v", recipient, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp != nil && resp.Sid != nil {
		log.Printf("Digest sent to %s, SID: %s", recipient, *resp.Sid)
	}

	if s.db != nil {
		entry := models.DigestLog{
			DigestDate:   date,
			Recipient:    recipient,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      channel,
			SentAt:       s.now(),
		}
		if dbErr := s.db.Create(&entry).Error; dbErr != nil {
			log.Printf("Failed to log digest for %s: %v", recipient, dbErr)
		}
	}
	return err
}
