package insights

import (
	"testing"

	"salon-wellness-backend/models"
)

func sessionWithHRV(before, after *float64) models.Session {
	return models.Session{ID: "s", ClientID: "c", Date: "2025-01-01", HRVBefore: before, HRVAfter: after}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		before *float64
		after  *float64
		want   Status
	}{
		{"delta 15", models.Float(30), models.Float(45), StatusImproved},
		{"delta exactly 10", models.Float(30), models.Float(40), StatusImproved},
		{"delta 9.9", models.Float(30), models.Float(39.9), StatusStable},
		{"delta 0", models.Float(30), models.Float(30), StatusStable},
		{"delta -4.9", models.Float(30), models.Float(25.1), StatusStable},
		{"delta exactly -5", models.Float(30), models.Float(25), StatusTired},
		{"delta -10", models.Float(40), models.Float(30), StatusTired},
		{"missing after", models.Float(30), nil, StatusStable},
		{"missing before", nil, models.Float(30), StatusStable},
		{"missing both", nil, nil, StatusStable},
	}
	for _, tc := range cases {
		got := Classify(sessionWithHRV(tc.before, tc.after))
		if got != tc.want {
			t.Errorf("Classify(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHRVDeltaUndefinedWithoutBothReadings(t *testing.T) {
	if _, ok := HRVDelta(sessionWithHRV(models.Float(30), nil)); ok {
		t.Error("HRVDelta with one reading ok = true, want false")
	}
	d, ok := HRVDelta(sessionWithHRV(models.Float(30), models.Float(45)))
	if !ok || d != 15 {
		t.Errorf("HRVDelta = %v, %v, want 15, true", d, ok)
	}
}

func TestAverageHRVChange(t *testing.T) {
	sessions := []models.Session{
		sessionWithHRV(models.Float(30), models.Float(45)), // 15
		sessionWithHRV(models.Float(40), models.Float(30)), // -10
		sessionWithHRV(models.Float(20), models.Float(21)), // 1
		sessionWithHRV(nil, models.Float(50)),              // ignored
	}
	avg, n := AverageHRVChange(sessions)
	if n != 3 {
		t.Fatalf("sample count = %d, want 3", n)
	}
	if avg == nil || *avg != 2 {
		t.Errorf("avg = %v, want 2", avg)
	}
}

func TestAverageHRVChangeRoundsToOneDecimal(t *testing.T) {
	sessions := []models.Session{
		sessionWithHRV(models.Float(30), models.Float(31)),
		sessionWithHRV(models.Float(30), models.Float(30)),
		sessionWithHRV(models.Float(30), models.Float(30)),
	}
	avg, _ := AverageHRVChange(sessions)
	if avg == nil || *avg != 0.3 {
		t.Errorf("avg = %v, want 0.3", avg)
	}
}

func TestAverageHRVChangeInsufficientData(t *testing.T) {
	avg, n := AverageHRVChange([]models.Session{sessionWithHRV(models.Float(30), nil)})
	if avg != nil || n != 0 {
		t.Errorf("AverageHRVChange = %v, %d, want nil, 0", avg, n)
	}
	avg, n = AverageHRVChange(nil)
	if avg != nil || n != 0 {
		t.Errorf("AverageHRVChange(nil) = %v, %d, want nil, 0", avg, n)
	}
}

func TestRoundTenth(t *testing.T) {
	cases := map[float64]float64{
		1.25:  1.3,
		-1.25: -1.2,
		2.04:  2,
		-0.06: -0.1,
	}
	for in, want := range cases {
		if got := RoundTenth(in); got != want {
			t.Errorf("RoundTenth(%v) = %v, want %v", in, got, want)
		}
	}
}
