package domain

// ExerciseInfo is a row of the exercise reference dataset.
type ExerciseInfo struct {
	Name                 string           `json:"name"`
	Category             ExerciseCategory `json:"category"`
	MuscleGroups         string           `json:"muscleGroups"`
	CaloriesPer30Minutes int              `json:"caloriesPer30Minutes"`
}

// DefaultCaloriesPer30Minutes is the reference rate for unknown exercises.
const DefaultCaloriesPer30Minutes = 150

// DefaultExerciseInfo is returned for exercises missing from the dataset.
func DefaultExerciseInfo(name string) ExerciseInfo {
	return ExerciseInfo{
		Name:                 name,
		Category:             CategoryStrength,
		MuscleGroups:         "various",
		CaloriesPer30Minutes: DefaultCaloriesPer30Minutes,
	}
}
