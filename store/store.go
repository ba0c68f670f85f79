// Package store holds the authoritative in-memory collections of clients and
// sessions. A Store is constructed once at process start from a seed and
// injected into the handlers; nothing survives a restart.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"salon-wellness-backend/events"
	"salon-wellness-backend/models"
	"salon-wellness-backend/utils"

	"github.com/google/uuid"
)

// ErrInvalidClient is returned by AddClient when a required field is empty.
var ErrInvalidClient = errors.New("invalid client")

type Store struct {
	mu       sync.RWMutex
	clients  []models.Client
	sessions []models.Session
	version  uint64

	now    func() time.Time
	newID  func(prefix string) string
	notify func(events.Event)
}

type Option func(*Store)

// WithClock overrides the clock used for default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation. prefix is "c" or "s".
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithNotifier registers fn to receive every change after it is applied.
// fn runs on the caller's goroutine, outside the store lock.
func WithNotifier(fn func(events.Event)) Option {
	return func(s *Store) { s.notify = fn }
}

func New(seed Seed, opts ...Option) *Store {
	s := &Store{
		clients:  append([]models.Client(nil), seed.Clients...),
		sessions: append([]models.Session(nil), seed.Sessions...),
		now:      time.Now,
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddClient registers a client at the front of the collection with no visits.
// FirstVisitDate defaults to today and LastVisit starts equal to it.
func (s *Store) AddClient(in models.NewClientInput) (models.Client, error) {
	if missing := utils.MissingFields(
		utils.Field("name", in.Name),
		utils.Field("ageLabel", in.AgeLabel),
	); len(missing) > 0 {
		return models.Client{}, fmt.Errorf("%w: %s required", ErrInvalidClient, strings.Join(missing, " and "))
	}

	firstVisit := in.FirstVisitDate
	if firstVisit == "" {
		firstVisit = utils.Today(s.now())
	}

	client := models.Client{
		ID:             s.newID("c"),
		Name:           in.Name,
		AgeLabel:       in.AgeLabel,
		Gender:         in.Gender,
		FirstVisitDate: firstVisit,
		LastVisit:      firstVisit,
		VisitCount:     0,
		CustomerNumber: in.CustomerNumber,
	}

	s.mu.Lock()
	s.clients = append([]models.Client{client}, s.clients...)
	s.version++
	version := s.version
	s.mu.Unlock()

	s.emit(events.Event{Kind: events.ClientCreated, Version: version, Client: &client})
	return client, nil
}

// AddSession appends the session and updates the referenced client's
// LastVisit and VisitCount. VisitNumber is assigned here, under the same lock
// as the append, from the client's existing sessions. A session whose client
// does not exist is stored anyway and no client changes.
func (s *Store) AddSession(session models.Session) models.Session {
	if session.ID == "" {
		session.ID = s.newID("s")
	}
	if session.Date == "" {
		session.Date = utils.Today(s.now())
	}

	var updated *models.Client

	s.mu.Lock()
	session.VisitNumber = s.countSessionsLocked(session.ClientID) + 1
	s.sessions = append(s.sessions, session)
	for i := range s.clients {
		if s.clients[i].ID != session.ClientID {
			continue
		}
		s.clients[i].LastVisit = session.Date
		s.clients[i].VisitCount++
		c := s.clients[i]
		updated = &c
		break
	}
	s.version++
	version := s.version
	s.mu.Unlock()

	s.emit(events.Event{Kind: events.SessionRecorded, Version: version, Client: updated, Session: &session})
	return session
}

// Version counts the changes applied since construction.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns both collections and the version they belong to, read
// under one lock.
func (s *Store) Snapshot() ([]models.Client, []models.Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client(nil), s.clients...), append([]models.Session(nil), s.sessions...), s.version
}

// Clients returns a snapshot of all clients in store order (newest first).
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Client(nil), s.clients...)
}

// Sessions returns a snapshot of all sessions in insertion order.
func (s *Store) Sessions() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Session(nil), s.sessions...)
}

func (s *Store) Client(id string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

func (s *Store) countSessionsLocked(clientID string) int {
	n := 0
	for _, existing := range s.sessions {
		if existing.ClientID == clientID {
			n++
		}
	}
	return n
}

func (s *Store) emit(e events.Event) {
	if s.notify == nil {
		return
	}
	e.At = s.now()
	s.notify(e)
}
