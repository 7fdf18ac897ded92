package analytics

import (
	"math"
	"time"

	"alcyxob/fittrack/internal/domain"
)

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Days() int {
	return domain.DaysInRange(w.Start, w.End)
}

// Previous is the window of equal length ending the day before w starts.
func (w Window) Previous() Window {
	n := w.Days()
	end := domain.AddDays(w.Start, -1)
	return Window{Start: domain.AddDays(end, -(n - 1)), End: end}
}

// Trailing returns the n-day window ending on (and including) day.
func Trailing(day time.Time, n int) Window {
	return Window{Start: domain.AddDays(day, -(n - 1)), End: day}
}

// SummaryWindow returns the completed period a summary of the given
// frequency covers when generated on today:
//   - daily: yesterday
//   - weekly: the Monday-Sunday week ending the last Sunday before today
//   - monthly: the previous calendar month
func SummaryWindow(freq domain.SummaryFrequency, today time.Time) (Window, bool) {
	switch freq {
	case domain.SummaryDaily:
		y := domain.AddDays(today, -1)
		return Window{Start: y, End: y}, true
	case domain.SummaryWeekly:
		back := int(today.Weekday()) // Sunday == 0
		if back == 0 {
			back = 7
		}
		end := domain.AddDays(today, -back)
		return Window{Start: domain.AddDays(end, -6), End: end}, true
	case domain.SummaryMonthly:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: firstOfMonth.AddDate(0, -1, 0), End: domain.AddDays(firstOfMonth, -1)}, true
	}
	return Window{}, false
}

// MonthToDate is the current calendar month up to today, and PreviousMonth
// the full month before it.
func MonthToDate(today time.Time) Window {
	return Window{Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), End: today}
}

func PreviousMonth(today time.Time) Window {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: first.AddDate(0, -1, 0), End: domain.AddDays(first, -1)}
}

// MacroSplit is the share of calories from each macronutrient, in percent.
type MacroSplit struct {
	ProteinPct float64 `json:"proteinPct"`
	CarbsPct   float64 `json:"carbsPct"`
	FatsPct    float64 `json:"fatsPct"`
}

// Macros converts grams to calories (4/4/9) and normalises to 100 with one
// decimal. All shares are zero when no macros were logged.
func Macros(proteinG, carbsG, fatsG float64) MacroSplit {
	p, c, f := proteinG*4, carbsG*4, fatsG*9
	total := p + c + f
	if total <= 0 {
		return MacroSplit{}
	}
	return MacroSplit{
		ProteinPct: round1(p / total * 100),
		CarbsPct:   round1(c / total * 100),
		FatsPct:    round1(f / total * 100),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
