package dashboard

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// DefaultDays is the reporting window when none is requested.
	DefaultDays = 30
	// MaxDays caps the reporting window.
	MaxDays = 365

	secondsSavedPerAcceptance = 30
)

// DailyUsage is the suggestion activity of one day.
type DailyUsage struct {
	Date           string  `json:"date"`
	Suggestions    int     `json:"suggestions"`
	Acceptances    int     `json:"acceptances"`
	AcceptanceRate float64 `json:"acceptance_rate"`
}

// Metrics summarizes assistant usage over a reporting window.
type Metrics struct {
	Username          string       `json:"username"`
	Period            string       `json:"period"`
	TotalSuggestions  int          `json:"total_suggestions"`
	TotalAcceptances  int          `json:"total_acceptances"`
	AvgAcceptanceRate float64      `json:"avg_acceptance_rate"`
	TimeSavedHours    float64      `json:"time_saved_hours"`
	DailyData         []DailyUsage `json:"daily_data"`
}

// NormalizeDays maps out-of-range windows to DefaultDays.
func NormalizeDays(days int) int {
	if days < 1 || days > MaxDays {
		return DefaultDays
	}
	return days
}

// SampleMetrics builds deterministic usage data for the days ending at today, newest first.
// Values depend only on the day of month, so a given date always reports the same numbers.
func SampleMetrics(username string, days int, today time.Time) Metrics {
	days = NormalizeDays(days)

	m := Metrics{
		Username:  username,
		Period:    fmt.Sprintf("Last %d days", days),
		DailyData: make([]DailyUsage, 0, days),
	}

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i)
		day := date.Day()

		suggestions := 15 + (day*7)%100
		acceptances := int(float64(suggestions) * (0.4 + float64(day%10)/30))

		m.DailyData = append(m.DailyData, DailyUsage{
			Date:           date.Format(time.DateOnly),
			Suggestions:    suggestions,
			Acceptances:    acceptances,
			AcceptanceRate: percent(acceptances, suggestions),
		})
		m.TotalSuggestions += suggestions
		m.TotalAcceptances += acceptances
	}

	m.AvgAcceptanceRate = percent(m.TotalAcceptances, m.TotalSuggestions)
	m.TimeSavedHours = round1(float64(m.TotalAcceptances*secondsSavedPerAcceptance) / 3600)
	return m
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

// round1 rounds the exact binary value to one decimal, so 2.55 (stored as 2.5499...) gives 2.5.
func round1(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
