package analytics

// Trend is the direction of change between two periods.
type Trend string

const (
	TrendIncreased Trend = "increased"
	TrendDecreased Trend = "decreased"
	TrendUnchanged Trend = "unchanged"
)

// Thresholds used across the engine.
const (
	// DisplayThresholdPct applies to week-over-week volume and macro trends
	// and to the volume trend inside summaries.
	DisplayThresholdPct = 5.0
	// VolumeDropAlertPct is the decrease that raises a training-volume alert.
	VolumeDropAlertPct = 20.0
	// ConsistencyThresholdPoints is in percentage points, not percent.
	ConsistencyThresholdPoints = 10.0
)

// PercentChange returns (current-previous)/previous*100. ok is false when
// previous is zero.
func PercentChange(current, previous float64) (pct float64, ok bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// Classify compares current against previous using a relative threshold in
// percent. A zero baseline is increased by any positive current value.
func Classify(current, previous, thresholdPct float64) Trend {
	pct, ok := PercentChange(current, previous)
	if !ok {
		switch {
		case current > 0:
			return TrendIncreased
		case current < 0:
			return TrendDecreased
		default:
			return TrendUnchanged
		}
	}
	return byThreshold(pct, thresholdPct)
}

// ClassifyPoints compares two values that are already percentages. The
// threshold is an absolute difference in percentage points.
func ClassifyPoints(currentPct, previousPct, thresholdPoints float64) Trend {
	return byThreshold(currentPct-previousPct, thresholdPoints)
}

func byThreshold(delta, threshold float64) Trend {
	switch {
	case delta > threshold:
		return TrendIncreased
	case delta < -threshold:
		return TrendDecreased
	default:
		return TrendUnchanged
	}
}
