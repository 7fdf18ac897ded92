package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("a template with this label already exists")
)

// LoggedEntry is the entry created from a template; exactly one field is set.
type LoggedEntry struct {
	Meal    *domain.Meal    `json:"meal,omitempty"`
	Workout *domain.Workout `json:"workout,omitempty"`
}

type TemplateService interface {
	Create(ctx context.Context, userID primitive.ObjectID, t *domain.LogTemplate) (*domain.LogTemplate, error)
	List(ctx context.Context, userID primitive.ObjectID, kind domain.TemplateKind) ([]domain.LogTemplate, error)
	Delete(ctx context.Context, userID, templateID primitive.ObjectID) error
	// Log creates a meal or workout from the template. A zero date means today.
	Log(ctx context.Context, userID, templateID primitive.ObjectID, date time.Time) (*LoggedEntry, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	logs         LogService
}

// NewTemplateService logs through LogService so template entries are
// validated and fire the same triggers as manual ones.
func NewTemplateService(templateRepo repository.TemplateRepository, logs LogService) TemplateService {
	return &templateService{templateRepo: templateRepo, logs: logs}
}

func (s *templateService) Create(ctx context.Context, userID primitive.ObjectID, t *domain.LogTemplate) (*domain.LogTemplate, error) {
	t.UserID = userID
	t.Label = strings.TrimSpace(t.Label)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	if _, err := s.templateRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTemplateExists
		}
		return nil, err
	}
	return t, nil
}

func (s *templateService) List(ctx context.Context, userID primitive.ObjectID, kind domain.TemplateKind) ([]domain.LogTemplate, error) {
	if kind != "" && kind != domain.TemplateMeal && kind != domain.TemplateWorkout {
		return nil, fmt.Errorf("%w: unknown template kind %q", ErrValidationFailed, kind)
	}
	return s.templateRepo.ListByUser(ctx, userID, kind)
}

func (s *templateService) Delete(ctx context.Context, userID, templateID primitive.ObjectID) error {
	if err := s.templateRepo.Delete(ctx, templateID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}

func (s *templateService) Log(ctx context.Context, userID, templateID primitive.ObjectID, date time.Time) (*LoggedEntry, error) {
	t, err := s.templateRepo.GetByID(ctx, templateID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	switch t.Kind {
	case domain.TemplateMeal:
		m := t.Meal
		meal, err := s.logs.CreateMeal(ctx, userID, MealInput{
			Name:     m.Name,
			Calories: m.Calories,
			ProteinG: m.ProteinG,
			CarbsG:   m.CarbsG,
			FatsG:    m.FatsG,
			Date:     date,
		})
		if err != nil {
			return nil, err
		}
		return &LoggedEntry{Meal: meal}, nil

	case domain.TemplateWorkout:
		w := t.Workout
		var burned *int
		if w.CaloriesBurned > 0 {
			burned = &w.CaloriesBurned
		}
		workout, err := s.logs.CreateWorkout(ctx, userID, WorkoutInput{
			Exercise:        w.Exercise,
			Category:        w.Category,
			MuscleGroups:    w.MuscleGroups,
			DurationMinutes: w.DurationMinutes,
			Sets:            w.Sets,
			Reps:            w.Reps,
			Weight:          w.Weight,
			Intensity:       w.Intensity,
			CaloriesBurned:  burned,
			Date:            date,
		})
		if err != nil {
			return nil, err
		}
		return &LoggedEntry{Workout: workout}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrValidationFailed, domain.ErrTemplateShape)
}
