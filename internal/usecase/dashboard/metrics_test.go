package dashboard

import (
	"testing"
	"time"
)

func TestSampleMetrics_DailyFormula(t *testing.T) {
	today := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	m := SampleMetrics("octocat", 2, today)

	if m.Username != "octocat" || m.Period != "Last 2 days" {
		t.Errorf("unexpected header: %q %q", m.Username, m.Period)
	}
	if len(m.DailyData) != 2 {
		t.Fatalf("expected 2 days, got %d", len(m.DailyData))
	}

	// Day 3: suggestions = 15 + 21 = 36, acceptances = int(36 * (0.4 + 0.1)) = 18.
	d0 := m.DailyData[0]
	if d0.Date != "2024-03-03" || d0.Suggestions != 36 || d0.Acceptances != 18 || d0.AcceptanceRate != 50 {
		t.Errorf("unexpected first day: %+v", d0)
	}

	// Day 2: suggestions = 15 + 14 = 29, acceptances = int(29 * (0.4 + 2/30)) = 13, rate 44.8.
	d1 := m.DailyData[1]
	if d1.Date != "2024-03-02" || d1.Suggestions != 29 || d1.Acceptances != 13 || d1.AcceptanceRate != 44.8 {
		t.Errorf("unexpected second day: %+v", d1)
	}

	if m.TotalSuggestions != 65 || m.TotalAcceptances != 31 {
		t.Errorf("unexpected totals: %d / %d", m.TotalSuggestions, m.TotalAcceptances)
	}
	if m.AvgAcceptanceRate != 47.7 {
		t.Errorf("AvgAcceptanceRate = %v, want 47.7", m.AvgAcceptanceRate)
	}
	// 31 * 30s = 930s = 0.258h
	if m.TimeSavedHours != 0.3 {
		t.Errorf("TimeSavedHours = %v, want 0.3", m.TimeSavedHours)
	}
}

func TestSampleMetrics_HalfwayHoursRoundLikeDecimalFormatting(t *testing.T) {
	today := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	m := SampleMetrics("u", 9, today)

	// 306 * 30s = 2.55h, stored as 2.5499..., so one decimal gives 2.5 rather than 2.6.
	if m.TotalAcceptances != 306 {
		t.Fatalf("TotalAcceptances = %d, want 306", m.TotalAcceptances)
	}
	if m.TimeSavedHours != 2.5 {
		t.Errorf("TimeSavedHours = %v, want 2.5", m.TimeSavedHours)
	}
	if m.AvgAcceptanceRate != 52.8 {
		t.Errorf("AvgAcceptanceRate = %v, want 52.8", m.AvgAcceptanceRate)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2.55, 2.5},
		{0.35, 0.3},
		{0.25, 0.2},
		{44.827, 44.8},
		{0.258, 0.3},
		{50, 50},
	}
	for _, tt := range tests {
		if got := round1(tt.in); got != tt.want {
			t.Errorf("round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSampleMetrics_CrossesMonthBoundary(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	m := SampleMetrics("u", 2, today)

	if m.DailyData[1].Date != "2024-02-29" {
		t.Errorf("expected leap day, got %s", m.DailyData[1].Date)
	}
}

func TestSampleMetrics_Deterministic(t *testing.T) {
	today := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	a := SampleMetrics("u", 30, today)
	b := SampleMetrics("u", 30, today)

	if a.TotalSuggestions != b.TotalSuggestions || a.TotalAcceptances != b.TotalAcceptances {
		t.Error("expected identical totals for the same date")
	}
	for _, d := range a.DailyData {
		if d.Acceptances > d.Suggestions {
			t.Errorf("%s: acceptances %d exceed suggestions %d", d.Date, d.Acceptances, d.Suggestions)
		}
	}
}

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 30}, {-5, 30}, {1, 1}, {7, 7}, {365, 365}, {366, 30},
	}
	for _, tt := range tests {
		if got := NormalizeDays(tt.in); got != tt.want {
			t.Errorf("NormalizeDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
