package store

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"salon-wellness-backend/events"
	"salon-wellness-backend/models"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 4, 10, 30, 0, 0, time.Local)
}

func sequentialIDs() func(prefix string) string {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestStore(seed Seed, opts ...Option) *Store {
	opts = append([]Option{WithClock(fixedClock), WithIDGenerator(sequentialIDs())}, opts...)
	return New(seed, opts...)
}

func TestAddClientDefaults(t *testing.T) {
	s := newTestStore(Seed{})

	c, err := s.AddClient(models.NewClientInput{Name: "田中さん", AgeLabel: "40代"})
	if err != nil {
		t.Fatalf("AddClient error = %v, want nil", err)
	}
	if c.VisitCount != 0 {
		t.Errorf("VisitCount = %d, want 0", c.VisitCount)
	}
	if c.FirstVisitDate != "2025-03-04" {
		t.Errorf("FirstVisitDate = %q, want today", c.FirstVisitDate)
	}
	if c.LastVisit != c.FirstVisitDate {
		t.Errorf("LastVisit = %q, want %q", c.LastVisit, c.FirstVisitDate)
	}
	if c.ID == "" {
		t.Error("ID is empty")
	}
}

func TestAddClientKeepsGivenFirstVisit(t *testing.T) {
	s := newTestStore(Seed{})

	c, err := s.AddClient(models.NewClientInput{
		Name:           "山田さん",
		AgeLabel:       "60代",
		Gender:         "女性",
		FirstVisitDate: "2024-12-01",
		CustomerNumber: "0042",
	})
	if err != nil {
		t.Fatalf("AddClient error = %v, want nil", err)
	}
	if c.FirstVisitDate != "2024-12-01" || c.LastVisit != "2024-12-01" {
		t.Errorf("dates = %q/%q, want 2024-12-01", c.FirstVisitDate, c.LastVisit)
	}
	if c.Gender != "女性" || c.CustomerNumber != "0042" {
		t.Errorf("optional fields not kept: %+v", c)
	}
}

func TestAddClientRequiresNameAndAge(t *testing.T) {
	cases := []models.NewClientInput{
		{},
		{Name: "田中さん"},
		{AgeLabel: "40代"},
	}
	for _, in := range cases {
		s := newTestStore(Seed{})
		_, err := s.AddClient(in)
		if !errors.Is(err, ErrInvalidClient) {
			t.Errorf("AddClient(%+v) error = %v, want ErrInvalidClient", in, err)
		}
		if len(s.Clients()) != 0 {
			t.Errorf("AddClient(%+v) stored a client", in)
		}
	}
}

func TestAddClientInsertsAtFront(t *testing.T) {
	s := newTestStore(Seed{})
	first, _ := s.AddClient(models.NewClientInput{Name: "A", AgeLabel: "20代"})
	second, _ := s.AddClient(models.NewClientInput{Name: "B", AgeLabel: "30代"})

	clients := s.Clients()
	if len(clients) != 2 {
		t.Fatalf("len(Clients) = %d, want 2", len(clients))
	}
	if clients[0].ID != second.ID || clients[1].ID != first.ID {
		t.Errorf("order = %s,%s want newest first", clients[0].ID, clients[1].ID)
	}
}

func TestAddSessionUpdatesClient(t *testing.T) {
	s := newTestStore(Seed{})
	c, _ := s.AddClient(models.NewClientInput{Name: "田中さん", AgeLabel: "40代"})

	stored := s.AddSession(models.Session{ID: "s-x", ClientID: c.ID, Date: "2025-03-05", Menu: "森の深眠スパ90分"})

	got, ok := s.Client(c.ID)
	if !ok {
		t.Fatal("client not found")
	}
	if got.VisitCount != 1 {
		t.Errorf("VisitCount = %d, want 1", got.VisitCount)
	}
	if got.LastVisit != "2025-03-05" {
		t.Errorf("LastVisit = %q, want 2025-03-05", got.LastVisit)
	}
	if stored.VisitNumber != 1 {
		t.Errorf("VisitNumber = %d, want 1", stored.VisitNumber)
	}
}

func TestAddSessionOverwritesLastVisitWithEarlierDate(t *testing.T) {
	s := newTestStore(Seed{})
	c, _ := s.AddClient(models.NewClientInput{Name: "田中さん", AgeLabel: "40代"})

	s.AddSession(models.Session{ClientID: c.ID, Date: "2025-03-10"})
	s.AddSession(models.Session{ClientID: c.ID, Date: "2025-01-01"})

	got, _ := s.Client(c.ID)
	if got.LastVisit != "2025-01-01" {
		t.Errorf("LastVisit = %q, want the last inserted date", got.LastVisit)
	}
	if got.VisitCount != 2 {
		t.Errorf("VisitCount = %d, want 2", got.VisitCount)
	}
}

func TestAddSessionAssignsVisitNumberFromStore(t *testing.T) {
	s := newTestStore(DemoSeed())

	// the caller's ordinal is ignored
	stored := s.AddSession(models.Session{ClientID: "c-1", Date: "2025-03-01", VisitNumber: 99})
	if stored.VisitNumber != 3 {
		t.Errorf("VisitNumber = %d, want 3", stored.VisitNumber)
	}
	other := s.AddSession(models.Session{ClientID: "c-2", Date: "2025-03-01"})
	if other.VisitNumber != 2 {
		t.Errorf("VisitNumber = %d, want 2", other.VisitNumber)
	}
}

func TestAddSessionFillsIDAndDate(t *testing.T) {
	s := newTestStore(Seed{})
	stored := s.AddSession(models.Session{ClientID: "nobody"})
	if stored.ID == "" {
		t.Error("ID not assigned")
	}
	if stored.Date != "2025-03-04" {
		t.Errorf("Date = %q, want today", stored.Date)
	}
}

func TestAddSessionOrphanIsStored(t *testing.T) {
	s := newTestStore(DemoSeed())
	before := s.Clients()

	s.AddSession(models.Session{ID: "s-orphan", ClientID: "missing", Date: "2025-03-01"})

	sessions := s.Sessions()
	if sessions[len(sessions)-1].ID != "s-orphan" {
		t.Errorf("last session = %q, want s-orphan", sessions[len(sessions)-1].ID)
	}
	if !reflect.DeepEqual(before, s.Clients()) {
		t.Error("clients changed after orphan session")
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	s := newTestStore(DemoSeed())
	if !reflect.DeepEqual(s.Clients(), s.Clients()) {
		t.Error("Clients() differs between calls")
	}
	if !reflect.DeepEqual(s.Sessions(), s.Sessions()) {
		t.Error("Sessions() differs between calls")
	}
}

func TestSnapshotsDoNotAliasStore(t *testing.T) {
	s := newTestStore(DemoSeed())
	clients := s.Clients()
	clients[0].Name = "changed"
	if got := s.Clients()[0].Name; got == "changed" {
		t.Error("mutating a snapshot changed the store")
	}
}

func TestNotifierReceivesChanges(t *testing.T) {
	var got []events.Event
	s := newTestStore(Seed{}, WithNotifier(func(e events.Event) { got = append(got, e) }))

	c, _ := s.AddClient(models.NewClientInput{Name: "田中さん", AgeLabel: "40代"})
	s.AddSession(models.Session{ClientID: c.ID, Date: "2025-03-05"})
	s.AddSession(models.Session{ClientID: "missing", Date: "2025-03-05"})

	if len(got) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(got))
	}
	if got[0].Kind != events.ClientCreated || got[0].Client.ID != c.ID {
		t.Errorf("event[0] = %+v", got[0])
	}
	if got[1].Kind != events.SessionRecorded || got[1].Client == nil || got[1].Client.VisitCount != 1 {
		t.Errorf("event[1] = %+v", got[1])
	}
	if got[2].Client != nil || got[2].ClientID() != "missing" {
		t.Errorf("orphan event = %+v", got[2])
	}
	if !got[0].At.Equal(fixedClock()) {
		t.Errorf("At = %v, want clock time", got[0].At)
	}
	for i, e := range got {
		if e.Version != uint64(i+1) {
			t.Errorf("event[%d].Version = %d, want %d", i, e.Version, i+1)
		}
	}
}

func TestVersionCountsChanges(t *testing.T) {
	s := newTestStore(DemoSeed())
	if s.Version() != 0 {
		t.Fatalf("initial Version = %d, want 0", s.Version())
	}
	if _, err := s.AddClient(models.NewClientInput{Name: ""}); err == nil {
		t.Fatal("invalid client accepted")
	}
	if s.Version() != 0 {
		t.Errorf("rejected client bumped Version to %d", s.Version())
	}

	s.AddSession(models.Session{ClientID: "c-1", Date: "2025-03-05"})
	clients, sessions, version := s.Snapshot()
	if version != 1 || len(sessions) != 5 || len(clients) != 3 {
		t.Errorf("Snapshot = %d clients, %d sessions, version %d", len(clients), len(sessions), version)
	}
}

func TestDemoSeedIsConsistent(t *testing.T) {
	seed := DemoSeed()
	counts := map[string]int{}
	last := map[string]string{}
	for _, sess := range seed.Sessions {
		counts[sess.ClientID]++
		last[sess.ClientID] = sess.Date
		if sess.VisitNumber != counts[sess.ClientID] {
			t.Errorf("session %s VisitNumber = %d, want %d", sess.ID, sess.VisitNumber, counts[sess.ClientID])
		}
	}
	for _, c := range seed.Clients {
		if c.VisitCount != counts[c.ID] {
			t.Errorf("client %s VisitCount = %d, want %d", c.ID, c.VisitCount, counts[c.ID])
		}
		if c.LastVisit != last[c.ID] {
			t.Errorf("client %s LastVisit = %q, want %q", c.ID, c.LastVisit, last[c.ID])
		}
	}
}
