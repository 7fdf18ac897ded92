package analytics

import (
	"math"

	"alcyxob/fittrack/internal/domain"
)

// maxRepFactor caps the rep-density bonus at 2x.
const maxRepFactor = 2.0

// MaxCalories bounds a single estimate so it always fits the stored int.
const MaxCalories = math.MaxInt32

// ExerciseParams are the inputs of EstimateCalories. CaloriesPer30Minutes
// comes from the exercise catalog.
type ExerciseParams struct {
	Category             domain.ExerciseCategory
	CaloriesPer30Minutes int
	DurationMinutes      int
	Sets                 int
	Reps                 int
	Intensity            float64
}

// EstimateCalories returns the energy estimate for an exercise. The result is
// in [0, MaxCalories] and depends only on p. A NaN intensity yields 0.
//
// Rep factor is 1 + (reps-10)*0.05 capped at 2. It is not clamped from below,
// so low-rep sets are credited with less than the base estimate.
func EstimateCalories(p ExerciseParams) int {
	if p.Category == domain.CategoryStrength && (p.Sets <= 0 || p.Reps <= 0) {
		return 0
	}

	rate := p.CaloriesPer30Minutes
	if rate <= 0 {
		rate = domain.DefaultCaloriesPer30Minutes
	}
	intensity := p.Intensity
	if intensity <= 0 {
		intensity = 1.0
	}

	duration := p.DurationMinutes
	if p.Category == domain.CategoryStrength && duration <= 0 && p.Sets > 0 {
		// one minute per set approximates time under tension
		duration = p.Sets
	}

	calories := math.Floor(float64(rate) * float64(duration) / 30)
	calories = math.Floor(calories * intensity)

	if p.Sets > 0 && p.Reps > 0 {
		factor := math.Min(1+float64(p.Reps-10)*0.05, maxRepFactor)
		calories = math.Floor(calories * factor)
	}

	switch {
	case math.IsNaN(calories), calories < 0:
		return 0
	case calories > MaxCalories:
		return MaxCalories
	}
	return int(calories)
}
