// Package query holds the read-side transforms used by the list and detail
// views. Nothing here mutates its input.
package query

import (
	"sort"
	"strings"

	"salon-wellness-backend/models"
	"salon-wellness-backend/utils"
)

// AllClients is the session filter value that disables client filtering.
const AllClients = "all"

// SearchClients keeps clients whose name contains keyword, ignoring case.
// A blank keyword returns clients unchanged.
func SearchClients(clients []models.Client, keyword string) []models.Client {
	return filterClients(clients, keyword, func(c models.Client) string {
		return c.Name
	})
}

// PickClients is the intake picker search: keyword is matched against name,
// age label and customer number run together.
func PickClients(clients []models.Client, keyword string) []models.Client {
	return filterClients(clients, keyword, func(c models.Client) string {
		return c.Name + c.AgeLabel + c.CustomerNumber
	})
}

func filterClients(clients []models.Client, keyword string, haystack func(models.Client) string) []models.Client {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return clients
	}
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(haystack(c)), kw) {
			out = append(out, c)
		}
	}
	return out
}

// FilterSessionsByClient keeps sessions of clientID, or all of them for
// AllClients.
func FilterSessionsByClient(sessions []models.Session, clientID string) []models.Session {
	if clientID == AllClients {
		return sessions
	}
	return SessionsForClient(sessions, clientID)
}

// SessionsForClient returns the sessions of one client in input order.
func SessionsForClient(sessions []models.Session, clientID string) []models.Session {
	out := make([]models.Session, 0)
	for _, s := range sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out
}

// SortByRecency returns a copy of sessions ordered by calendar date, most
// recent first. Sessions on the same date keep their input order; sessions
// with an unparseable date go last.
func SortByRecency(sessions []models.Session) []models.Session {
	type keyed struct {
		session models.Session
		unix    int64
		valid   bool
	}
	items := make([]keyed, len(sessions))
	for i, s := range sessions {
		t, err := utils.ParseDate(s.Date)
		items[i] = keyed{session: s, unix: t.Unix(), valid: err == nil}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].valid != items[j].valid {
			return items[i].valid
		}
		return items[i].unix > items[j].unix
	})
	out := make([]models.Session, len(items))
	for i, it := range items {
		out[i] = it.session
	}
	return out
}

// LatestSession returns the first session of clientID in sessions, which is
// the latest one when sessions are sorted by recency.
func LatestSession(sessions []models.Session, clientID string) (models.Session, bool) {
	for _, s := range sessions {
		if s.ClientID == clientID {
			return s, true
		}
	}
	return models.Session{}, false
}

// ClientIndex maps client ids to clients.
func ClientIndex(clients []models.Client) map[string]models.Client {
	idx := make(map[string]models.Client, len(clients))
	for _, c := range clients {
		idx[c.ID] = c
	}
	return idx
}
