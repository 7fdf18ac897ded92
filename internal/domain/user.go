package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SummaryFrequency selects the periodic progress summary a user receives.
type SummaryFrequency string

const (
	SummaryNone    SummaryFrequency = "none"
	SummaryDaily   SummaryFrequency = "daily"
	SummaryWeekly  SummaryFrequency = "weekly"
	SummaryMonthly SummaryFrequency = "monthly"
)

// Valid reports whether f is one of the known frequencies.
func (f SummaryFrequency) Valid() bool {
	switch f {
	case SummaryNone, SummaryDaily, SummaryWeekly, SummaryMonthly:
		return true
	}
	return false
}

// NotificationPreferences are the user's opt-ins for proactive messages.
type NotificationPreferences struct {
	MealReminder     bool             `bson:"mealReminder" json:"mealReminder"`
	WorkoutReminder  bool             `bson:"workoutReminder" json:"workoutReminder"`
	SummaryFrequency SummaryFrequency `bson:"summaryFrequency" json:"summaryFrequency"`
}

// User represents an account owning log entries and notifications.
type User struct {
	ID           primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Name         string                  `bson:"name" json:"name"`
	Email        string                  `bson:"email" json:"email"`    // unique
	PasswordHash string                  `bson:"passwordHash" json:"-"` // never exposed
	Preferences  NotificationPreferences `bson:"preferences" json:"preferences"`
	CreatedAt    time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// DefaultPreferences are applied to new accounts.
func DefaultPreferences() NotificationPreferences {
	return NotificationPreferences{
		MealReminder:     true,
		WorkoutReminder:  true,
		SummaryFrequency: SummaryNone,
	}
}
