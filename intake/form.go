package intake

import (
	"math"
	"strconv"
	"strings"

	"salon-wellness-backend/models"
)

type ClientMode string

const (
	ModeExisting ClientMode = "existing"
	ModeNew      ClientMode = "new"
)

// Form holds the raw values entered across the three steps. Numbers are
// kept as text and converted on submit.
type Form struct {
	ClientID string `json:"clientId"`

	NewClientName           string `json:"newClientName"`
	NewClientAgeLabel       string `json:"newClientAgeLabel"`
	NewClientGender         string `json:"newClientGender"`
	NewClientFirstVisitDate string `json:"newClientFirstVisitDate"`
	NewClientCustomerNumber string `json:"newClientCustomerNumber"`

	StaffName string `json:"staffName"`
	Date      string `json:"date"`
	Menu      string `json:"menu"`

	HYPBefore    string `json:"hypBefore"`
	HRVBefore    string `json:"hrvBefore"`
	HRVBeforeBPM string `json:"hrvBeforeBpm"`
	HRVAfter     string `json:"hrvAfter"`
	HRVAfterBPM  string `json:"hrvAfterBpm"`

	PreFatigue             string                `json:"preFatigue"`
	PreStiffness           string                `json:"preStiffness"`
	PreHeadHeaviness       string                `json:"preHeadHeaviness"`
	PreStress              string                `json:"preStress"`
	PreSleepQualityWeek    string                `json:"preSleepQualityWeek"`
	PreSleepHoursLastNight string                `json:"preSleepHoursLastNight"`
	PreBedtime             string                `json:"preBedtime"`
	PreWakeTime            string                `json:"preWakeTime"`
	PreLifestyleTags       []models.LifestyleTag `json:"preLifestyleTags"`
	PreLifestyleMemo       string                `json:"preLifestyleMemo"`
	MainConcern            string                `json:"mainConcern"`

	PostHeadLightness string `json:"postHeadLightness"`
	PostBodyRelax     string `json:"postBodyRelax"`
	PostMentalRelax   string `json:"postMentalRelax"`
	PostSatisfaction  string `json:"postSatisfaction"`
	PostComment       string `json:"postComment"`
	PostActionNote    string `json:"postActionNote"`
}

// Defaults pre-fills a new form.
type Defaults struct {
	ClientID string
	Today    string
	Staff    string
	Menu     string
}

func NewForm(d Defaults) Form {
	return Form{
		ClientID:                d.ClientID,
		NewClientFirstVisitDate: d.Today,
		StaffName:               d.Staff,
		Date:                    d.Today,
		Menu:                    d.Menu,

		PreFatigue:             "7",
		PreStiffness:           "6",
		PreHeadHeaviness:       "5",
		PreStress:              "6",
		PreSleepQualityWeek:    "3",
		PreSleepHoursLastNight: "5〜6時間",
		PreBedtime:             "24〜1時",
		PreWakeTime:            "6〜7時",
		PreLifestyleTags:       []models.LifestyleTag{models.TagSmartphone},

		PostHeadLightness: "8",
		PostBodyRelax:     "8",
		PostMentalRelax:   "7",
		PostSatisfaction:  "5",
	}
}

// ToggleLifestyleTag adds tag when absent and removes it when present.
func (f *Form) ToggleLifestyleTag(tag models.LifestyleTag) {
	for i, t := range f.PreLifestyleTags {
		if t == tag {
			f.PreLifestyleTags = append(f.PreLifestyleTags[:i:i], f.PreLifestyleTags[i+1:]...)
			return
		}
	}
	f.PreLifestyleTags = append(f.PreLifestyleTags, tag)
}

// NumericField names a rating parsed with ParseRating.
type NumericField string

const (
	FieldFatigue          NumericField = "fatigue"
	FieldStiffness        NumericField = "stiffness"
	FieldHeadHeaviness    NumericField = "headHeaviness"
	FieldStress           NumericField = "stress"
	FieldSleepQualityWeek NumericField = "sleepQualityWeek"
	FieldHeadLightness    NumericField = "headLightness"
	FieldBodyRelax        NumericField = "bodyRelax"
	FieldMentalRelax      NumericField = "mentalRelax"
	FieldSatisfaction     NumericField = "satisfaction"
)

// Fallbacks is the value used when a rating is empty or not a number.
// Fields not listed fall back to 0.
var Fallbacks = map[NumericField]int{
	FieldSleepQualityWeek: 3,
	FieldSatisfaction:     4,
}

// ParseRating converts a rating. Empty or non-numeric text gives the
// field's fallback; out of range values are kept as entered (rounded to the
// nearest integer).
func ParseRating(field NumericField, raw string) int {
	v, ok := parseNumber(raw)
	if !ok {
		return Fallbacks[field]
	}
	return int(math.Round(v))
}

// ParseMeasurement converts an optional measurement. Empty text means not
// measured; non-numeric text is recorded as 0.
func ParseMeasurement(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, ok := parseNumber(raw)
	if !ok {
		v = 0
	}
	return &v
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
