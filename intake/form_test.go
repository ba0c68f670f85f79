package intake

import (
	"reflect"
	"testing"

	"salon-wellness-backend/models"
)

func TestParseRating(t *testing.T) {
	cases := []struct {
		field NumericField
		raw   string
		want  int
	}{
		{FieldFatigue, "7", 7},
		{FieldFatigue, "", 0},
		{FieldFatigue, "abc", 0},
		{FieldSleepQualityWeek, "", 3},
		{FieldSleepQualityWeek, "x", 3},
		{FieldSleepQualityWeek, "5", 5},
		{FieldSatisfaction, "", 4},
		{FieldSatisfaction, "2", 2},
		{FieldStress, "11", 11},
		{FieldStress, "6.5", 7},
		{FieldStress, " 4 ", 4},
	}
	for _, tc := range cases {
		if got := ParseRating(tc.field, tc.raw); got != tc.want {
			t.Errorf("ParseRating(%s, %q) = %d, want %d", tc.field, tc.raw, got, tc.want)
		}
	}
}

func TestParseMeasurement(t *testing.T) {
	if got := ParseMeasurement(""); got != nil {
		t.Errorf("ParseMeasurement(\"\") = %v, want nil", *got)
	}
	if got := ParseMeasurement("38.5"); got == nil || *got != 38.5 {
		t.Errorf("ParseMeasurement(38.5) = %v", got)
	}
	if got := ParseMeasurement("n/a"); got == nil || *got != 0 {
		t.Errorf("ParseMeasurement(n/a) = %v, want 0", got)
	}
}

func TestNewFormDefaults(t *testing.T) {
	f := NewForm(Defaults{ClientID: "c-1", Today: "2025-03-04", Staff: "寺島", Menu: "森の深眠スパ90分"})
	if f.Date != "2025-03-04" || f.NewClientFirstVisitDate != "2025-03-04" {
		t.Errorf("dates = %q/%q, want today", f.Date, f.NewClientFirstVisitDate)
	}
	if f.PreSleepQualityWeek != "3" || f.PostSatisfaction != "5" {
		t.Errorf("sleep/satisfaction defaults = %q/%q", f.PreSleepQualityWeek, f.PostSatisfaction)
	}
	if !reflect.DeepEqual(f.PreLifestyleTags, []models.LifestyleTag{models.TagSmartphone}) {
		t.Errorf("PreLifestyleTags = %v", f.PreLifestyleTags)
	}
}

func TestToggleLifestyleTag(t *testing.T) {
	f := Form{PreLifestyleTags: []models.LifestyleTag{models.TagSmartphone, models.TagAlcohol}}

	f.ToggleLifestyleTag(models.TagBath)
	f.ToggleLifestyleTag(models.TagSmartphone)

	want := []models.LifestyleTag{models.TagAlcohol, models.TagBath}
	if !reflect.DeepEqual(f.PreLifestyleTags, want) {
		t.Errorf("PreLifestyleTags = %v, want %v", f.PreLifestyleTags, want)
	}
}
