package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fittrack/internal/analytics"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricsReport is PeriodMetrics plus the calorie share of each macro.
type MetricsReport struct {
	analytics.PeriodMetrics
	Days   int                  `json:"days"`
	Macros analytics.MacroSplit `json:"macros"`
}

type TrendsReport struct {
	Weekly      *analytics.WeeklyTrends `json:"weekly"`
	Consistency *analytics.Consistency  `json:"consistency"`
}

type InsightsService interface {
	// Metrics aggregates [start, end]; zero bounds select the trailing week.
	Metrics(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*MetricsReport, error)
	Trends(ctx context.Context, userID primitive.ObjectID) (*TrendsReport, error)
}

type insightsService struct {
	agg *analytics.Aggregator
}

func NewInsightsService(agg *analytics.Aggregator) InsightsService {
	return &insightsService{agg: agg}
}

func (s *insightsService) Metrics(ctx context.Context, userID primitive.ObjectID, start, end time.Time) (*MetricsReport, error) {
	if start.IsZero() != end.IsZero() {
		return nil, fmt.Errorf("%w: both start and end dates are required", ErrValidationFailed)
	}
	m, err := s.agg.Aggregate(ctx, userID, start, end)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
		}
		return nil, err
	}
	return &MetricsReport{
		PeriodMetrics: m,
		Days:          m.Days(),
		Macros:        analytics.Macros(m.ProteinG, m.CarbsG, m.FatsG),
	}, nil
}

func (s *insightsService) Trends(ctx context.Context, userID primitive.ObjectID) (*TrendsReport, error) {
	weekly, err := s.agg.WeeklyTrends(ctx, userID)
	if err != nil {
		return nil, err
	}
	consistency, err := s.agg.MonthlyConsistency(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TrendsReport{Weekly: weekly, Consistency: consistency}, nil
}
