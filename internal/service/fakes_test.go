package service_test

import (
	"context"
	"sync"
	"time"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[primitive.ObjectID]domain.User)}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	f.users[u.ID] = *u
	return u.ID, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) UpdatePreferences(_ context.Context, id primitive.ObjectID, prefs domain.NotificationPreferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Preferences = prefs
	f.users[id] = u
	return nil
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

type fakeMeals struct {
	meals []domain.Meal
}

func (f *fakeMeals) Create(_ context.Context, m *domain.Meal) (primitive.ObjectID, error) {
	m.ID = primitive.NewObjectID()
	f.meals = append(f.meals, *m)
	return m.ID, nil
}

func (f *fakeMeals) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	for _, m := range f.meals {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMeals) ListByUserAndDateRange(_ context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error) {
	out := []domain.Meal{}
	for _, m := range f.meals {
		if m.UserID == userID && inRange(m.Date, start, end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeals) ListRecentByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.Meal, error) {
	out := []domain.Meal{}
	for i := len(f.meals) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.meals[i].UserID == userID {
			out = append(out, f.meals[i])
		}
	}
	return out, nil
}

func (f *fakeMeals) CountByUserAndDate(_ context.Context, userID primitive.ObjectID, day time.Time) (int64, error) {
	var n int64
	for _, m := range f.meals {
		if m.UserID == userID && m.Date.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (f *fakeMeals) Update(_ context.Context, m *domain.Meal) error {
	for i := range f.meals {
		if f.meals[i].ID == m.ID && f.meals[i].UserID == m.UserID {
			f.meals[i] = *m
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeMeals) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range f.meals {
		if f.meals[i].ID == id && f.meals[i].UserID == userID {
			f.meals = append(f.meals[:i], f.meals[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeWorkouts struct {
	workouts []domain.Workout
}

func (f *fakeWorkouts) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	w.ID = primitive.NewObjectID()
	f.workouts = append(f.workouts, *w)
	return w.ID, nil
}

func (f *fakeWorkouts) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	for _, w := range f.workouts {
		if w.ID == id {
			cp := w
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkouts) ListByUserAndDateRange(_ context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error) {
	out := []domain.Workout{}
	for _, w := range f.workouts {
		if w.UserID == userID && inRange(w.Date, start, end) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkouts) ListRecentByUser(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	out := []domain.Workout{}
	for i := len(f.workouts) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if f.workouts[i].UserID == userID {
			out = append(out, f.workouts[i])
		}
	}
	return out, nil
}

func (f *fakeWorkouts) CountByUserAndDate(_ context.Context, userID primitive.ObjectID, day time.Time) (int64, error) {
	var n int64
	for _, w := range f.workouts {
		if w.UserID == userID && w.Date.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (f *fakeWorkouts) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range f.workouts {
		if f.workouts[i].ID == id && f.workouts[i].UserID == userID {
			f.workouts = append(f.workouts[:i], f.workouts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeWeights struct {
	weights []domain.BodyWeight
}

func (f *fakeWeights) Create(_ context.Context, bw *domain.BodyWeight) (primitive.ObjectID, error) {
	bw.ID = primitive.NewObjectID()
	f.weights = append(f.weights, *bw)
	return bw.ID, nil
}

func (f *fakeWeights) Latest(_ context.Context, userID primitive.ObjectID) (*domain.BodyWeight, error) {
	var latest *domain.BodyWeight
	for i := range f.weights {
		if f.weights[i].UserID == userID && (latest == nil || !f.weights[i].Date.Before(latest.Date)) {
			latest = &f.weights[i]
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeWeights) ListByUser(_ context.Context, userID primitive.ObjectID, _ int64) ([]domain.BodyWeight, error) {
	out := []domain.BodyWeight{}
	for _, bw := range f.weights {
		if bw.UserID == userID {
			out = append(out, bw)
		}
	}
	return out, nil
}

type fakeNotifications struct {
	items []domain.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *domain.Notification) (primitive.ObjectID, error) {
	n.ID = primitive.NewObjectID()
	f.items = append(f.items, *n)
	return n.ID, nil
}

func (f *fakeNotifications) FindOneContaining(context.Context, primitive.ObjectID, string, time.Time, time.Time) (*domain.Notification, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeNotifications) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Notification, error) {
	for _, n := range f.items {
		if n.ID == id && n.UserID == userID {
			cp := n
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	out := []domain.Notification{}
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) ListUnread(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	all, _ := f.ListByUser(ctx, userID)
	out := []domain.Notification{}
	for _, n := range all {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	unread, _ := f.ListUnread(ctx, userID)
	return int64(len(unread)), nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, userID primitive.ObjectID, at time.Time) error {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			if !f.items[i].Read {
				f.items[i].Read = true
				f.items[i].ReadAt = &at
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID primitive.ObjectID, at time.Time) (int64, error) {
	var n int64
	for i := range f.items {
		if f.items[i].UserID == userID && !f.items[i].Read {
			f.items[i].Read = true
			f.items[i].ReadAt = &at
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotifications) DeleteMany(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	kept := f.items[:0]
	var deleted int64
	for _, n := range f.items {
		if n.UserID == userID && (len(ids) == 0 || wanted[n.ID]) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.items = kept
	return deleted, nil
}

type fakeTemplates struct {
	items []domain.LogTemplate
}

func (f *fakeTemplates) Create(_ context.Context, t *domain.LogTemplate) (primitive.ObjectID, error) {
	for _, existing := range f.items {
		if existing.UserID == t.UserID && existing.Kind == t.Kind && existing.Label == t.Label {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	t.ID = primitive.NewObjectID()
	f.items = append(f.items, *t)
	return t.ID, nil
}

func (f *fakeTemplates) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.LogTemplate, error) {
	for _, t := range f.items {
		if t.ID == id && t.UserID == userID {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTemplates) ListByUser(_ context.Context, userID primitive.ObjectID, kind domain.TemplateKind) ([]domain.LogTemplate, error) {
	out := []domain.LogTemplate{}
	for _, t := range f.items {
		if t.UserID == userID && (kind == "" || t.Kind == kind) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTemplates) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// recordingNotifier counts the events the services raise.
type recordingNotifier struct {
	mu       sync.Mutex
	logins   int
	meals    int
	workouts int
	checks   int
}

func (r *recordingNotifier) OnLogin(context.Context, *domain.User) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins++
	return nil, nil
}

func (r *recordingNotifier) OnMealCreated(context.Context, primitive.ObjectID) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meals++
	return nil, nil
}

func (r *recordingNotifier) OnWorkoutCreated(context.Context, primitive.ObjectID) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workouts++
	return nil, nil
}

func (r *recordingNotifier) RunChecks(_ context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks++
	return []domain.Notification{{UserID: userID, Message: "Low protein today"}}, nil
}
