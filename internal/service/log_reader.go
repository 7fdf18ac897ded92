package service

import (
	"context"
	"time"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type repoLogReader struct {
	meals    repository.MealRepository
	workouts repository.WorkoutRepository
}

// NewLogReader exposes the meal and workout repositories to the aggregator.
func NewLogReader(meals repository.MealRepository, workouts repository.WorkoutRepository) analytics.LogReader {
	return &repoLogReader{meals: meals, workouts: workouts}
}

func (r *repoLogReader) ListMeals(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error) {
	return r.meals.ListByUserAndDateRange(ctx, userID, start, end)
}

func (r *repoLogReader) ListWorkouts(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error) {
	return r.workouts.ListByUserAndDateRange(ctx, userID, start, end)
}
