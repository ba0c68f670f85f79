package insights

import (
	"sort"
	"time"

	"salon-wellness-backend/models"
	"salon-wellness-backend/utils"
)

const reportTopLimit = 4

// Report is the analytics summary behind the reports page.
type Report struct {
	CurrentMonthSessions   int             `json:"currentMonthSessions"`
	MonthGrowth            float64         `json:"monthGrowth"`
	CurrentQuarterSessions int             `json:"currentQuarterSessions"`
	QuarterGrowth          float64         `json:"quarterGrowth"`
	CurrentYearSessions    int             `json:"currentYearSessions"`
	YearGrowth             float64         `json:"yearGrowth"`
	TopMenus               []MenuSummary   `json:"topMenus"`
	TopClients             []ClientSummary `json:"topClients"`
	TopLifestyleTags       []TagCount      `json:"topLifestyleTags"`
	StatusBreakdown        map[Status]int  `json:"statusBreakdown"`
	Scores                 ScoreAverages   `json:"scores"`
	QuickStats             QuickStatistics `json:"quickStats"`
}

type MenuSummary struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	AvgHRVChange *float64 `json:"avgHrvChange"`
}

type ClientSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Visits    int    `json:"visits"`
	LastVisit string `json:"lastVisit"`
}

type TagCount struct {
	Tag   models.LifestyleTag `json:"tag"`
	Count int                 `json:"count"`
}

// ScoreAverages averages the subjective ratings, nil without sessions.
type ScoreAverages struct {
	Fatigue       *float64 `json:"fatigue"`
	Stress        *float64 `json:"stress"`
	HeadLightness *float64 `json:"headLightness"`
	MentalRelax   *float64 `json:"mentalRelax"`
	Satisfaction  *float64 `json:"satisfaction"`
}

type QuickStatistics struct {
	TotalClients     int     `json:"totalClients"`
	TotalSessions    int     `json:"totalSessions"`
	AvgMonthlyVisits float64 `json:"avgMonthlyVisits"`
	RepeatRate       float64 `json:"repeatRate"` // percent of clients with 2+ visits
}

// BuildReport computes the report for the period containing now. Sessions
// with an unparseable date only count toward the all-time figures.
func BuildReport(clients []models.Client, sessions []models.Session, now time.Time) Report {
	year, month, _ := now.Date()
	loc := now.Location()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	quarterStart := QuarterStart(now)
	firstOfYear := time.Date(year, 1, 1, 0, 0, 0, 0, loc)

	var curMonth, lastMonth, curQuarter, lastQuarter, curYear, lastYear int
	monthly := map[string]int{}
	for _, s := range sessions {
		d, err := utils.ParseDate(s.Date)
		if err != nil {
			continue
		}
		monthly[d.Format("2006-01")]++
		switch {
		case inRange(d, firstOfMonth, firstOfMonth.AddDate(0, 1, 0)):
			curMonth++
		case inRange(d, firstOfMonth.AddDate(0, -1, 0), firstOfMonth):
			lastMonth++
		}
		switch {
		case inRange(d, quarterStart, quarterStart.AddDate(0, 3, 0)):
			curQuarter++
		case inRange(d, quarterStart.AddDate(0, -3, 0), quarterStart):
			lastQuarter++
		}
		switch {
		case inRange(d, firstOfYear, firstOfYear.AddDate(1, 0, 0)):
			curYear++
		case inRange(d, firstOfYear.AddDate(-1, 0, 0), firstOfYear):
			lastYear++
		}
	}

	report := Report{
		CurrentMonthSessions:   curMonth,
		MonthGrowth:            GrowthPercentage(float64(curMonth), float64(lastMonth)),
		CurrentQuarterSessions: curQuarter,
		QuarterGrowth:          GrowthPercentage(float64(curQuarter), float64(lastQuarter)),
		CurrentYearSessions:    curYear,
		YearGrowth:             GrowthPercentage(float64(curYear), float64(lastYear)),
		TopMenus:               topMenus(sessions, reportTopLimit),
		TopClients:             topClients(clients, reportTopLimit),
		TopLifestyleTags:       topTags(sessions, reportTopLimit),
		StatusBreakdown:        map[Status]int{StatusImproved: 0, StatusStable: 0, StatusTired: 0},
		Scores:                 averageScores(sessions),
		QuickStats: QuickStatistics{
			TotalClients:  len(clients),
			TotalSessions: len(sessions),
		},
	}

	for _, s := range sessions {
		report.StatusBreakdown[Classify(s)]++
	}

	if len(monthly) > 0 {
		total := 0
		for _, n := range monthly {
			total += n
		}
		report.QuickStats.AvgMonthlyVisits = RoundTenth(float64(total) / float64(len(monthly)))
	}
	if len(clients) > 0 {
		repeat := 0
		for _, c := range clients {
			if c.VisitCount >= 2 {
				repeat++
			}
		}
		report.QuickStats.RepeatRate = RoundTenth(float64(repeat) / float64(len(clients)) * 100)
	}
	return report
}

func QuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

// GrowthPercentage is the change from previous to current in percent. Growth
// from zero counts as 100.
func GrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return RoundTenth(((current - previous) / previous) * 100)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func topMenus(sessions []models.Session, limit int) []MenuSummary {
	order := []string{}
	byMenu := map[string][]models.Session{}
	for _, s := range sessions {
		if _, seen := byMenu[s.Menu]; !seen {
			order = append(order, s.Menu)
		}
		byMenu[s.Menu] = append(byMenu[s.Menu], s)
	}

	menus := make([]MenuSummary, 0, len(order))
	for _, name := range order {
		avg, _ := AverageHRVChange(byMenu[name])
		menus = append(menus, MenuSummary{Name: name, Count: len(byMenu[name]), AvgHRVChange: avg})
	}
	sort.SliceStable(menus, func(i, j int) bool { return menus[i].Count > menus[j].Count })
	if len(menus) > limit {
		menus = menus[:limit]
	}
	return menus
}

func topClients(clients []models.Client, limit int) []ClientSummary {
	out := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		if c.VisitCount == 0 {
			continue
		}
		out = append(out, ClientSummary{ID: c.ID, Name: c.Name, Visits: c.VisitCount, LastVisit: c.LastVisit})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Visits > out[j].Visits })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func topTags(sessions []models.Session, limit int) []TagCount {
	counts := map[models.LifestyleTag]int{}
	for _, s := range sessions {
		for _, tag := range s.Pre.LifestyleTags {
			counts[tag]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for _, tag := range models.LifestyleTags {
		if counts[tag] > 0 {
			out = append(out, TagCount{Tag: tag, Count: counts[tag]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func averageScores(sessions []models.Session) ScoreAverages {
	if len(sessions) == 0 {
		return ScoreAverages{}
	}
	var fatigue, stress, head, mental, satisfaction float64
	for _, s := range sessions {
		fatigue += float64(s.Pre.Fatigue)
		stress += float64(s.Pre.Stress)
		head += float64(s.Post.HeadLightness)
		mental += float64(s.Post.MentalRelax)
		satisfaction += float64(s.Post.Satisfaction)
	}
	n := float64(len(sessions))
	avg := func(total float64) *float64 {
		v := RoundTenth(total / n)
		return &v
	}
	return ScoreAverages{
		Fatigue:       avg(fatigue),
		Stress:        avg(stress),
		HeadLightness: avg(head),
		MentalRelax:   avg(mental),
		Satisfaction:  avg(satisfaction),
	}
}
