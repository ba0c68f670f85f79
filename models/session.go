package models

type LifestyleTag string

const (
	TagSmartphone   LifestyleTag = "smartphone"
	TagLateCaffeine LifestyleTag = "late_caffeine"
	TagAlcohol      LifestyleTag = "alcohol"
	TagLateWork     LifestyleTag = "late_work"
	TagBath         LifestyleTag = "bath"
	TagStretch      LifestyleTag = "stretch"
	TagNoRoutine    LifestyleTag = "no_routine"
)

// LifestyleTags lists every tag in display order.
var LifestyleTags = []LifestyleTag{
	TagSmartphone,
	TagLateCaffeine,
	TagAlcohol,
	TagLateWork,
	TagBath,
	TagStretch,
	TagNoRoutine,
}

func (t LifestyleTag) Valid() bool {
	for _, known := range LifestyleTags {
		if t == known {
			return true
		}
	}
	return false
}

// PreSessionCheck is the checklist filled in before the treatment.
type PreSessionCheck struct {
	Fatigue             int            `json:"fatigue"`          // 0-10
	Stiffness           int            `json:"stiffness"`        // 0-10
	HeadHeaviness       int            `json:"headHeaviness"`    // 0-10
	Stress              int            `json:"stress"`           // 0-10
	SleepQualityWeek    int            `json:"sleepQualityWeek"` // 1-5
	SleepHoursLastNight string         `json:"sleepHoursLastNight"`
	UsualBedtime        string         `json:"usualBedtime"`
	UsualWakeTime       string         `json:"usualWakeTime"`
	LifestyleTags       []LifestyleTag `json:"lifestyleTags"`
	LifestyleMemo       string         `json:"lifestyleMemo,omitempty"`
	MainConcern         string         `json:"mainConcern,omitempty"`
}

// PostSessionFeeling is what the client reports after the treatment.
type PostSessionFeeling struct {
	HeadLightness int    `json:"headLightness"` // 0-10
	BodyRelax     int    `json:"bodyRelax"`     // 0-10
	MentalRelax   int    `json:"mentalRelax"`   // 0-10
	Satisfaction  int    `json:"satisfaction"`  // 1-5
	Comment       string `json:"comment,omitempty"`
	ActionNote    string `json:"actionNote,omitempty"`
}

// Session is one recorded visit. Measurements are nil when not taken.
type Session struct {
	ID          string   `json:"id"`
	ClientID    string   `json:"clientId"`
	Date        string   `json:"date"`
	Menu        string   `json:"menu"`
	VisitNumber int      `json:"visitNumber"`
	StaffName   string   `json:"staffName,omitempty"`
	HRVBefore   *float64 `json:"hrvBefore,omitempty"` // RMSSD, ms
	HRVAfter    *float64 `json:"hrvAfter,omitempty"`
	HRBefore    *float64 `json:"hrBefore,omitempty"` // bpm
	HRAfter     *float64 `json:"hrAfter,omitempty"`
	HYPBefore   *float64 `json:"hypBefore,omitempty"`

	Pre  PreSessionCheck    `json:"pre"`
	Post PostSessionFeeling `json:"post"`
}

// Float returns a pointer to v, for filling optional measurements.
func Float(v float64) *float64 {
	return &v
}
