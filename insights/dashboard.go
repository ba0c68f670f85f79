package insights

import (
	"salon-wellness-backend/models"
	"salon-wellness-backend/query"
)

const recentSessionLimit = 5

// UnknownClientName labels sessions whose client does not exist.
const UnknownClientName = "不明な顧客"

type SessionView struct {
	models.Session
	ClientName string   `json:"clientName"`
	HRVDelta   *float64 `json:"hrvDelta,omitempty"`
	Status     Status   `json:"status"`
}

type ClientView struct {
	models.Client
	// LatestSessionDate is the date of the client's most recent session by
	// calendar date, empty without sessions.
	LatestSessionDate string `json:"latestSessionDate"`
}

type Highlight struct {
	ClientName  string   `json:"clientName"`
	AgeLabel    string   `json:"ageLabel"`
	Date        string   `json:"date"`
	Menu        string   `json:"menu"`
	HRVBefore   *float64 `json:"hrvBefore,omitempty"`
	HRVAfter    *float64 `json:"hrvAfter,omitempty"`
	MainConcern string   `json:"mainConcern,omitempty"`
}

type Summary struct {
	TotalClients   int           `json:"totalClients"`
	TotalSessions  int           `json:"totalSessions"`
	AvgHRVChange   *float64      `json:"avgHrvChange"` // nil: not enough data
	HRVSampleCount int           `json:"hrvSampleCount"`
	RecentSessions []SessionView `json:"recentSessions"`
	Clients        []ClientView  `json:"clients"`
	LastSession    *Highlight    `json:"lastSession,omitempty"`
}

// ViewSession decorates a session with its client name and HRV status.
func ViewSession(s models.Session, clients map[string]models.Client) SessionView {
	v := SessionView{Session: s, ClientName: UnknownClientName, Status: Classify(s)}
	if c, ok := clients[s.ClientID]; ok {
		v.ClientName = c.Name
	}
	if d, ok := HRVDelta(s); ok {
		v.HRVDelta = &d
	}
	return v
}

// Dashboard builds the dashboard from the store contents.
func Dashboard(clients []models.Client, sessions []models.Session) Summary {
	recent := query.SortByRecency(sessions)
	idx := query.ClientIndex(clients)

	avg, n := AverageHRVChange(sessions)
	summary := Summary{
		TotalClients:   len(clients),
		TotalSessions:  len(sessions),
		AvgHRVChange:   avg,
		HRVSampleCount: n,
		RecentSessions: make([]SessionView, 0, recentSessionLimit),
		Clients:        make([]ClientView, 0, len(clients)),
	}

	for i, s := range recent {
		if i == recentSessionLimit {
			break
		}
		summary.RecentSessions = append(summary.RecentSessions, ViewSession(s, idx))
	}

	for _, c := range clients {
		v := ClientView{Client: c}
		if latest, ok := query.LatestSession(recent, c.ID); ok {
			v.LatestSessionDate = latest.Date
		}
		summary.Clients = append(summary.Clients, v)
	}

	if len(recent) > 0 {
		last := recent[0]
		if c, ok := idx[last.ClientID]; ok {
			summary.LastSession = &Highlight{
				ClientName:  c.Name,
				AgeLabel:    c.AgeLabel,
				Date:        last.Date,
				Menu:        last.Menu,
				HRVBefore:   last.HRVBefore,
				HRVAfter:    last.HRVAfter,
				MainConcern: last.Pre.MainConcern,
			}
		}
	}
	return summary
}
