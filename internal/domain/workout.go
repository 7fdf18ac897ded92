package domain

import (
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory distinguishes load-based from duration-based exercise.
type ExerciseCategory string

const (
	CategoryStrength ExerciseCategory = "strength"
	CategoryCardio   ExerciseCategory = "cardio"
)

func (c ExerciseCategory) Valid() bool {
	return c == CategoryStrength || c == CategoryCardio
}

// Workout is an exercise log entry. For cardio, Sets, Reps and Weight are
// always zero and DurationMinutes is positive.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Exercise        string             `bson:"exercise" json:"exercise"`
	Category        ExerciseCategory   `bson:"category" json:"category"`
	MuscleGroups    string             `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Sets            int                `bson:"sets" json:"sets"`
	Reps            int                `bson:"reps" json:"reps"`
	Weight          float64            `bson:"weight" json:"weight"`
	Intensity       float64            `bson:"intensity" json:"intensity"`
	CaloriesBurned  int                `bson:"caloriesBurned" json:"caloriesBurned"`
	Date            time.Time          `bson:"date" json:"date"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Volume is sets x reps x weight.
func (w *Workout) Volume() float64 {
	return float64(w.Sets) * float64(w.Reps) * w.Weight
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// CheckWorkoutNumbers enforces the per-category shape: cardio carries a
// duration and no load, strength carries non-negative load figures.
func CheckWorkoutNumbers(category ExerciseCategory, durationMinutes, sets, reps int, weight, intensity float64) error {
	if !finite(weight, intensity) {
		return errors.New("weight and intensity must be finite numbers")
	}
	if durationMinutes < 0 || sets < 0 || reps < 0 || weight < 0 || intensity < 0 {
		return errors.New("workout numbers must not be negative")
	}
	if category == CategoryCardio {
		if durationMinutes <= 0 {
			return errors.New("cardio requires a positive duration")
		}
		if sets != 0 || reps != 0 || weight != 0 {
			return errors.New("cardio must not have sets, reps or weight")
		}
	}
	return nil
}
