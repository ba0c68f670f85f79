package models

// HRVBand is a guideline range for a resting RMSSD reading.
// Max of 0 means open ended.
type HRVBand struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max,omitempty"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SalonSettings is the read-only configuration the intake screens render from.
type SalonSettings struct {
	Name                string    `json:"name"`
	Menus               []string  `json:"menus"`
	DefaultMenu         string    `json:"defaultMenu"`
	Staff               []string  `json:"staff"`
	HRVBands            []HRVBand `json:"hrvBands"`
	LifestyleTags       []Option  `json:"lifestyleTags"`
	SleepQualityOptions []Option  `json:"sleepQualityOptions"`
	SleepHoursOptions   []string  `json:"sleepHoursOptions"`
	BedtimeOptions      []string  `json:"bedtimeOptions"`
	WakeTimeOptions     []string  `json:"wakeTimeOptions"`
	GenderOptions       []string  `json:"genderOptions"`
}
