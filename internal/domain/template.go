package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateKind tells which payload of a LogTemplate is populated.
type TemplateKind string

const (
	TemplateMeal    TemplateKind = "meal"
	TemplateWorkout TemplateKind = "workout"
)

// MealTemplate is the full shape of a saved meal.
type MealTemplate struct {
	Name     string  `bson:"name" json:"name"`
	Calories int     `bson:"calories" json:"calories"`
	ProteinG float64 `bson:"proteinG" json:"proteinG"`
	CarbsG   float64 `bson:"carbsG" json:"carbsG"`
	FatsG    float64 `bson:"fatsG" json:"fatsG"`
}

// WorkoutTemplate is the full shape of a saved workout. A zero CaloriesBurned
// is estimated each time the template is logged.
type WorkoutTemplate struct {
	Exercise        string           `bson:"exercise" json:"exercise"`
	Category        ExerciseCategory `bson:"category" json:"category"`
	MuscleGroups    string           `bson:"muscleGroups" json:"muscleGroups"`
	DurationMinutes int              `bson:"durationMinutes" json:"durationMinutes"`
	Sets            int              `bson:"sets" json:"sets"`
	Reps            int              `bson:"reps" json:"reps"`
	Weight          float64          `bson:"weight" json:"weight"`
	Intensity       float64          `bson:"intensity" json:"intensity"`
	CaloriesBurned  int              `bson:"caloriesBurned" json:"caloriesBurned"`
}

// LogTemplate is a user favorite. Exactly one of Meal and Workout is set,
// matching Kind.
type LogTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Label     string             `bson:"label" json:"label"`
	Kind      TemplateKind       `bson:"kind" json:"kind"`
	Meal      *MealTemplate      `bson:"meal,omitempty" json:"meal,omitempty"`
	Workout   *WorkoutTemplate   `bson:"workout,omitempty" json:"workout,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

var ErrTemplateShape = errors.New("template payload does not match its kind")

// Validate checks the template carries exactly the payload its kind names.
func (t *LogTemplate) Validate() error {
	if t.Label == "" {
		return errors.New("template label is required")
	}
	switch t.Kind {
	case TemplateMeal:
		if t.Meal == nil || t.Workout != nil {
			return ErrTemplateShape
		}
		if t.Meal.Name == "" {
			return errors.New("meal template requires a name")
		}
		m := t.Meal
		if err := CheckMealNumbers(m.Calories, m.ProteinG, m.CarbsG, m.FatsG); err != nil {
			return err
		}
	case TemplateWorkout:
		if t.Workout == nil || t.Meal != nil {
			return ErrTemplateShape
		}
		if t.Workout.Exercise == "" || !t.Workout.Category.Valid() {
			return errors.New("workout template requires an exercise and a valid category")
		}
		w := t.Workout
		if err := CheckWorkoutNumbers(w.Category, w.DurationMinutes, w.Sets, w.Reps, w.Weight, w.Intensity); err != nil {
			return err
		}
		if w.CaloriesBurned < 0 {
			return errors.New("calories burned must not be negative")
		}
	default:
		return errors.New("unknown template kind")
	}
	return nil
}
