package notify

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/fittrack/internal/analytics"
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// ProteinPerKg is the daily protein target per kg of body weight.
	ProteinPerKg = 1.2
	// DefaultProteinTargetG applies when no body weight is on record.
	DefaultProteinTargetG = 50.0
	volumeWindowDays      = 7
)

// Dedup markers. Each rule's message starts with its marker and the dedup
// lookup matches on it.
const (
	markerLowProtein      = "Low protein today"
	markerVolumeDrop      = "Training volume dropped"
	markerMealReminder    = "No meals logged today"
	markerWorkoutReminder = "No workout logged today"
)

func (e *Engine) lowProtein(userID primitive.ObjectID) rule {
	return rule{name: RuleLowProtein, run: func(ctx context.Context) (*domain.Notification, error) {
		today := e.agg.Today()

		protein, err := e.agg.ProteinForDay(ctx, userID, today)
		if err != nil {
			return e.fail(RuleLowProtein, err)
		}
		target, err := e.proteinTarget(ctx, userID)
		if err != nil {
			return e.fail(RuleLowProtein, err)
		}
		if protein >= target {
			return e.skip(RuleLowProtein)
		}

		msg := fmt.Sprintf("%s: %.1f g of your %.1f g target. Add a protein-rich meal.", markerLowProtein, protein, target)
		from, to := e.dayWindow(today, today)
		return e.emit(ctx, RuleLowProtein, userID, markerLowProtein, msg, from, to)
	}}
}

// proteinTarget is latest body weight x 1.2, or 50 g without a weight.
func (e *Engine) proteinTarget(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	bw, err := e.weights.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return DefaultProteinTargetG, nil
		}
		return 0, fmt.Errorf("latest body weight: %w", err)
	}
	if bw == nil || bw.WeightKg <= 0 {
		return DefaultProteinTargetG, nil
	}
	return bw.WeightKg * ProteinPerKg, nil
}

func (e *Engine) volumeDrop(userID primitive.ObjectID) rule {
	return rule{name: RuleVolumeDrop, run: func(ctx context.Context) (*domain.Notification, error) {
		cur := analytics.Trailing(e.agg.Today(), volumeWindowDays)
		prev := cur.Previous()

		current, err := e.agg.Aggregate(ctx, userID, cur.Start, cur.End)
		if err != nil {
			return e.fail(RuleVolumeDrop, err)
		}
		previous, err := e.agg.Aggregate(ctx, userID, prev.Start, prev.End)
		if err != nil {
			return e.fail(RuleVolumeDrop, err)
		}

		if previous.WorkoutVolume <= 0 {
			return e.skip(RuleVolumeDrop)
		}
		if analytics.Classify(current.WorkoutVolume, previous.WorkoutVolume, analytics.VolumeDropAlertPct) != analytics.TrendDecreased {
			return e.skip(RuleVolumeDrop)
		}

		pct, _ := analytics.PercentChange(current.WorkoutVolume, previous.WorkoutVolume)
		msg := fmt.Sprintf("%s by %.0f%% over the last %d days (%.0f vs %.0f). Keep the momentum going.",
			markerVolumeDrop, -pct, volumeWindowDays, current.WorkoutVolume, previous.WorkoutVolume)
		from, to := e.dayWindow(cur.Start, cur.End)
		return e.emit(ctx, RuleVolumeDrop, userID, markerVolumeDrop, msg, from, to)
	}}
}

func (e *Engine) mealReminder(user *domain.User) rule {
	return e.reminder(RuleMealReminder, user, user.Preferences.MealReminder, e.meals,
		markerMealReminder, "Don't forget to track what you eat.")
}

func (e *Engine) workoutReminder(user *domain.User) rule {
	return e.reminder(RuleWorkoutReminder, user, user.Preferences.WorkoutReminder, e.workouts,
		markerWorkoutReminder, "A short session still counts.")
}

func (e *Engine) reminder(name string, user *domain.User, optedIn bool, counter EntryCounter, marker, hint string) rule {
	msg := marker + ". " + hint
	return rule{name: name, run: func(ctx context.Context) (*domain.Notification, error) {
		if !optedIn {
			return e.skip(name)
		}
		today := e.agg.Today()
		count, err := counter.CountByUserAndDate(ctx, user.ID, today)
		if err != nil {
			return e.fail(name, err)
		}
		if count > 0 {
			return e.skip(name)
		}
		from, to := e.dayWindow(today, today)
		return e.emit(ctx, name, user.ID, marker, msg, from, to)
	}}
}

var summaryTitles = map[domain.SummaryFrequency]string{
	domain.SummaryDaily:   "Daily",
	domain.SummaryWeekly:  "Weekly",
	domain.SummaryMonthly: "Monthly",
}

// SummaryLabel names one period instance; it doubles as the dedup marker.
func SummaryLabel(freq domain.SummaryFrequency, w analytics.Window) string {
	return fmt.Sprintf("%s summary %s to %s", summaryTitles[freq],
		w.Start.Format(domain.DateLayout), w.End.Format(domain.DateLayout))
}

func (e *Engine) summary(user *domain.User) rule {
	return rule{name: RuleSummary, run: func(ctx context.Context) (*domain.Notification, error) {
		freq := user.Preferences.SummaryFrequency
		today := e.agg.Today()
		w, ok := analytics.SummaryWindow(freq, today)
		if !ok {
			return e.skip(RuleSummary)
		}

		msg, err := e.summaryMessage(ctx, user.ID, freq, w)
		if err != nil {
			return e.fail(RuleSummary, err)
		}
		// a period instance can only be summarised after it ends
		from, to := e.dayWindow(domain.AddDays(w.End, 1), today)
		return e.emit(ctx, RuleSummary, user.ID, SummaryLabel(freq, w), msg, from, to)
	}}
}

func (e *Engine) summaryMessage(ctx context.Context, userID primitive.ObjectID, freq domain.SummaryFrequency, w analytics.Window) (string, error) {
	cur, err := e.agg.Aggregate(ctx, userID, w.Start, w.End)
	if err != nil {
		return "", err
	}
	prevWindow := w.Previous()
	prev, err := e.agg.Aggregate(ctx, userID, prevWindow.Start, prevWindow.End)
	if err != nil {
		return "", err
	}

	macros := analytics.Macros(cur.ProteinG, cur.CarbsG, cur.FatsG)
	trend := analytics.Classify(cur.WorkoutVolume, prev.WorkoutVolume, analytics.DisplayThresholdPct)

	return fmt.Sprintf(
		"%s: consumed %d kcal, burned %d kcal. Macros: protein %.1f%%, carbs %.1f%%, fats %.1f%%. Workout volume %s vs previous period.",
		SummaryLabel(freq, w), cur.CaloriesConsumed, cur.CaloriesBurned,
		macros.ProteinPct, macros.CarbsPct, macros.FatsPct, trend,
	), nil
}
