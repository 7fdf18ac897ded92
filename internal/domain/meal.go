package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal is a nutrition log entry.
type Meal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Calories  int                `bson:"calories" json:"calories"`
	ProteinG  float64            `bson:"proteinG" json:"proteinG"`
	CarbsG    float64            `bson:"carbsG" json:"carbsG"`
	FatsG     float64            `bson:"fatsG" json:"fatsG"`
	Date      time.Time          `bson:"date" json:"date"` // calendar day, midnight UTC
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BodyWeight is a dated weight measurement. The most recent one drives the
// daily protein target.
type BodyWeight struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	WeightKg  float64            `bson:"weightKg" json:"weightKg"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CheckMealNumbers rejects negative or non-finite nutrition values.
func CheckMealNumbers(calories int, proteinG, carbsG, fatsG float64) error {
	if !finite(proteinG, carbsG, fatsG) {
		return errors.New("macros must be finite numbers")
	}
	if calories < 0 || proteinG < 0 || carbsG < 0 || fatsG < 0 {
		return errors.New("calories and macros must not be negative")
	}
	return nil
}
