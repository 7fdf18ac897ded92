package analytics

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyTrends compares the trailing 7 days with the 7 days before them.
type WeeklyTrends struct {
	Current  PeriodMetrics `json:"current"`
	Previous PeriodMetrics `json:"previous"`
	Volume   Trend         `json:"volume"`
	Protein  Trend         `json:"protein"`
	Carbs    Trend         `json:"carbs"`
	Fats     Trend         `json:"fats"`
}

// Consistency is the share of days with at least one log entry.
type Consistency struct {
	CurrentPct  float64 `json:"currentPct"`
	PreviousPct float64 `json:"previousPct"`
	Trend       Trend   `json:"trend"`
}

// WeeklyTrends classifies volume and macros week over week at 5%.
func (a *Aggregator) WeeklyTrends(ctx context.Context, userID primitive.ObjectID) (*WeeklyTrends, error) {
	cur := Trailing(a.Today(), DefaultWindowDays)
	prev := cur.Previous()

	current, err := a.Aggregate(ctx, userID, cur.Start, cur.End)
	if err != nil {
		return nil, err
	}
	previous, err := a.Aggregate(ctx, userID, prev.Start, prev.End)
	if err != nil {
		return nil, err
	}

	return &WeeklyTrends{
		Current:  current,
		Previous: previous,
		Volume:   Classify(current.WorkoutVolume, previous.WorkoutVolume, DisplayThresholdPct),
		Protein:  Classify(current.ProteinG, previous.ProteinG, DisplayThresholdPct),
		Carbs:    Classify(current.CarbsG, previous.CarbsG, DisplayThresholdPct),
		Fats:     Classify(current.FatsG, previous.FatsG, DisplayThresholdPct),
	}, nil
}

// MonthlyConsistency compares this month so far with the previous month.
// Both sides are percentages, so the comparison is in percentage points.
func (a *Aggregator) MonthlyConsistency(ctx context.Context, userID primitive.ObjectID) (*Consistency, error) {
	today := a.Today()
	curPct, err := a.consistencyPct(ctx, userID, MonthToDate(today))
	if err != nil {
		return nil, err
	}
	prevPct, err := a.consistencyPct(ctx, userID, PreviousMonth(today))
	if err != nil {
		return nil, err
	}
	return &Consistency{
		CurrentPct:  curPct,
		PreviousPct: prevPct,
		Trend:       ClassifyPoints(curPct, prevPct, ConsistencyThresholdPoints),
	}, nil
}

func (a *Aggregator) consistencyPct(ctx context.Context, userID primitive.ObjectID, w Window) (float64, error) {
	logged, err := a.LoggedDays(ctx, userID, w.Start, w.End)
	if err != nil {
		return 0, err
	}
	return ConsistencyPct(logged, w.Days()), nil
}

// ConsistencyPct is logged days over days in period, in percent.
func ConsistencyPct(loggedDays, periodDays int) float64 {
	if periodDays <= 0 {
		return 0
	}
	return round1(float64(loggedDays) / float64(periodDays) * 100)
}
