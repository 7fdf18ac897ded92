package analytics_test

import (
	"testing"
	"time"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		previous  float64
		threshold float64
		want      analytics.Trend
	}{
		{"both zero", 0, 0, 5, analytics.TrendUnchanged},
		{"zero baseline, positive current", 50, 0, 5, analytics.TrendIncreased},
		{"twenty percent drop", 80, 100, 5, analytics.TrendDecreased},
		{"within threshold up", 104, 100, 5, analytics.TrendUnchanged},
		{"exactly at threshold", 105, 100, 5, analytics.TrendUnchanged},
		{"above threshold", 106, 100, 5, analytics.TrendIncreased},
		{"drop not exceeding alert threshold", 80, 100, 20, analytics.TrendUnchanged},
		{"drop exceeding alert threshold", 79, 100, 20, analytics.TrendDecreased},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analytics.Classify(tt.current, tt.previous, tt.threshold))
		})
	}
}

func TestClassifyPoints_UsesPercentagePoints(t *testing.T) {
	// 80% -> 65% is a 15 point drop; relative change would be -18.75%.
	assert.Equal(t, analytics.TrendDecreased, analytics.ClassifyPoints(65, 80, analytics.ConsistencyThresholdPoints))
	// 50% -> 44% is -12% relative but only 6 points.
	assert.Equal(t, analytics.TrendUnchanged, analytics.ClassifyPoints(44, 50, analytics.ConsistencyThresholdPoints))
	assert.Equal(t, analytics.TrendDecreased, analytics.Classify(44, 50, analytics.ConsistencyThresholdPoints))
	assert.Equal(t, analytics.TrendIncreased, analytics.ClassifyPoints(75, 60, analytics.ConsistencyThresholdPoints))
}

func TestPercentChange(t *testing.T) {
	pct, ok := analytics.PercentChange(80, 100)
	assert.True(t, ok)
	assert.InDelta(t, -20.0, pct, 1e-9)

	_, ok = analytics.PercentChange(10, 0)
	assert.False(t, ok)
}

func TestMacros(t *testing.T) {
	assert.Equal(t, analytics.MacroSplit{}, analytics.Macros(0, 0, 0))

	split := analytics.Macros(100, 200, 50) // 400 + 800 + 450 = 1650
	assert.InDelta(t, 24.2, split.ProteinPct, 1e-9)
	assert.InDelta(t, 48.5, split.CarbsPct, 1e-9)
	assert.InDelta(t, 27.3, split.FatsPct, 1e-9)

	for _, g := range [][3]float64{{1, 1, 1}, {33, 17, 9}, {0, 0, 1}, {12.5, 0.3, 7.7}, {150, 220, 61}} {
		s := analytics.Macros(g[0], g[1], g[2])
		assert.InDelta(t, 100.0, s.ProteinPct+s.CarbsPct+s.FatsPct, 0.1+1e-9)
	}
}

func TestWindows(t *testing.T) {
	w := analytics.Trailing(day(2026, 10, 18), 7)
	assert.Equal(t, day(2026, 10, 12), w.Start)
	assert.Equal(t, 7, w.Days())

	prev := w.Previous()
	assert.Equal(t, day(2026, 10, 5), prev.Start)
	assert.Equal(t, day(2026, 10, 11), prev.End)
}

func TestSummaryWindow(t *testing.T) {
	sunday := day(2026, 10, 18)
	wednesday := day(2026, 10, 14)

	tests := []struct {
		name  string
		freq  domain.SummaryFrequency
		today time.Time
		start time.Time
		end   time.Time
	}{
		{"daily covers yesterday", domain.SummaryDaily, wednesday, day(2026, 10, 13), day(2026, 10, 13)},
		{"weekly midweek", domain.SummaryWeekly, wednesday, day(2026, 10, 5), day(2026, 10, 11)},
		{"weekly on sunday uses the previous week", domain.SummaryWeekly, sunday, day(2026, 10, 5), day(2026, 10, 11)},
		{"weekly on monday", domain.SummaryWeekly, day(2026, 10, 19), day(2026, 10, 12), day(2026, 10, 18)},
		{"monthly", domain.SummaryMonthly, wednesday, day(2026, 9, 1), day(2026, 9, 30)},
		{"monthly across year", domain.SummaryMonthly, day(2027, 1, 3), day(2026, 12, 1), day(2026, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := analytics.SummaryWindow(tt.freq, tt.today)
			assert.True(t, ok)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
		})
	}

	_, ok := analytics.SummaryWindow(domain.SummaryNone, wednesday)
	assert.False(t, ok)
}

func TestConsistencyPct(t *testing.T) {
	assert.InDelta(t, 80.0, analytics.ConsistencyPct(24, 30), 1e-9)
	assert.Zero(t, analytics.ConsistencyPct(3, 0))
}
