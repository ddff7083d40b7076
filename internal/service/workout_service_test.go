package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes mirroring the Mongo repository semantics ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	f.users[user.ID] = &cp
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.WorkoutPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.WorkoutPlan)}
}

func (f *fakePlanRepo) Create(_ context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.ID == primitive.NilObjectID {
		plan.ID = primitive.NewObjectID()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	cp := *plan
	f.plans[plan.ID] = &cp
	return plan.ID, nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) GetLatestByUserID(_ context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var latest *domain.WorkoutPlan
	for _, p := range f.plans {
		if p.UserID != userID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	if _, ok := f.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *plan
	f.plans[plan.ID] = &cp
	return nil
}

func (f *fakePlanRepo) Delete(_ context.Context, planID, userID primitive.ObjectID) error {
	p, ok := f.plans[planID]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.plans, planID)
	return nil
}

type fakeExerciseRepo struct {
	exercises []domain.Exercise
}

func (f *fakeExerciseRepo) InsertMany(_ context.Context, exercises []domain.Exercise) error {
	for i := range exercises {
		if exercises[i].ID == primitive.NilObjectID {
			exercises[i].ID = primitive.NewObjectID()
		}
		f.exercises = append(f.exercises, exercises[i])
	}
	return nil
}

func (f *fakeExerciseRepo) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) error {
	kept := f.exercises[:0]
	for _, e := range f.exercises {
		if e.PlanID != planID {
			kept = append(kept, e)
		}
	}
	f.exercises = kept
	return nil
}

func (f *fakeExerciseRepo) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.Exercise, error) {
	for _, e := range f.exercises {
		if e.ID == id && e.UserID == userID {
			cp := e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExerciseRepo) GetByStepID(_ context.Context, stepID string, userID primitive.ObjectID) (*domain.Exercise, error) {
	for _, e := range f.exercises {
		if e.UserID != userID {
			continue
		}
		for _, s := range e.Steps {
			if s.ID == stepID {
				cp := e
				return &cp, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeExerciseRepo) GetOpenByUserOnDate(_ context.Context, userID primitive.ObjectID, dt time.Time) ([]domain.Exercise, error) {
	day := truncateToDay(dt)
	var out []domain.Exercise
	for _, e := range f.exercises {
		if e.UserID == userID && truncateToDay(e.Date).Equal(day) && e.Status != domain.StatusCompleted {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeExerciseRepo) GetPastByUser(_ context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]domain.Exercise, error) {
	cutoff := truncateToDay(before)
	var out []domain.Exercise
	for _, e := range f.exercises {
		if e.UserID == userID && e.Date.Before(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeExerciseRepo) GetByUserInRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range f.exercises {
		if e.UserID == userID && !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeExerciseRepo) GetCompletedInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Exercise, error) {
	all, _ := f.GetByUserInRange(ctx, userID, from, to)
	var out []domain.Exercise
	for _, e := range all {
		if e.Status == domain.StatusCompleted {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) GetByUserSortedDesc(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range f.exercises {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeExerciseRepo) CountCompleted(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, e := range f.exercises {
		if e.UserID == userID && e.Status == domain.StatusCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeExerciseRepo) MarkStepCompleted(_ context.Context, stepID string, userID primitive.ObjectID) error {
	for i := range f.exercises {
		e := &f.exercises[i]
		if e.UserID != userID || e.Status.Terminal() {
			continue
		}
		for j := range e.Steps {
			if e.Steps[j].ID == stepID && !e.Steps[j].Completed {
				e.Steps[j].Completed = true
				e.Status = domain.StatusStarted
				return nil
			}
		}
	}
	return repository.ErrStaleState
}

func (f *fakeExerciseRepo) CompleteIfAllStepsDone(_ context.Context, exerciseID, userID primitive.ObjectID) (bool, error) {
	for i := range f.exercises {
		e := &f.exercises[i]
		if e.ID == exerciseID && e.UserID == userID && !e.Status.Terminal() && e.AllStepsCompleted() {
			e.Status = domain.StatusCompleted
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeExerciseRepo) CompleteExercise(_ context.Context, exerciseID, userID primitive.ObjectID) error {
	for i := range f.exercises {
		e := &f.exercises[i]
		if e.ID == exerciseID && e.UserID == userID && !e.Status.Terminal() && e.AllStepsCompleted() {
			e.Status = domain.StatusCompleted
			return nil
		}
	}
	return repository.ErrStaleState
}

func (f *fakeExerciseRepo) MarkMissedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	day := truncateToDay(cutoff)
	var count int64
	for i := range f.exercises {
		e := &f.exercises[i]
		if e.Date.Before(day) && !e.Status.Terminal() {
			e.Status = domain.StatusMissed
			count++
		}
	}
	return count, nil
}

func (f *fakeExerciseRepo) byID(id primitive.ObjectID) *domain.Exercise {
	for i := range f.exercises {
		if f.exercises[i].ID == id {
			return &f.exercises[i]
		}
	}
	return nil
}

type stubWeather struct {
	snapshot domain.WeatherSnapshot
	err      error
}

func (s *stubWeather) CurrentWeather(context.Context, string) (domain.WeatherSnapshot, error) {
	return s.snapshot, s.err
}

// --- Test harness ---

type workoutServiceFixture struct {
	users     *fakeUserRepo
	plans     *fakePlanRepo
	exercises *fakeExerciseRepo
	weather   *stubWeather
	service   WorkoutService
	userID    primitive.ObjectID
}

func newWorkoutServiceFixture(t *testing.T) *workoutServiceFixture {
	t.Helper()

	users := newFakeUserRepo()
	plans := newFakePlanRepo()
	exercises := &fakeExerciseRepo{}
	weather := &stubWeather{snapshot: domain.WeatherSnapshot{Temperature: 20}}

	user := &domain.User{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Frequency: domain.FrequencyEveryday,
		City:      "Berlin",
		CreatedAt: time.Now().UTC(),
	}
	userID, err := users.Create(context.Background(), user)
	require.NoError(t, err)

	return &workoutServiceFixture{
		users:     users,
		plans:     plans,
		exercises: exercises,
		weather:   weather,
		service:   NewWorkoutService(users, plans, exercises, weather, nil),
		userID:    userID,
	}
}

// seedExercise inserts one exercise with the given steps directly, bypassing
// generation.
func (fx *workoutServiceFixture) seedExercise(t *testing.T, dt time.Time, status domain.ExerciseStatus, stepsCompleted ...bool) domain.Exercise {
	t.Helper()
	steps := make([]domain.Step, len(stepsCompleted))
	for i, done := range stepsCompleted {
		steps[i] = domain.Step{ID: uuid.NewString(), Description: "step", DurationMinutes: 10, Completed: done}
	}
	e := domain.Exercise{
		ID:              primitive.NewObjectID(),
		PlanID:          primitive.NewObjectID(),
		UserID:          fx.userID,
		Name:            "Seeded",
		DurationMinutes: 30,
		Date:            truncateToDay(dt),
		Status:          status,
		Steps:           steps,
	}
	require.NoError(t, fx.exercises.InsertMany(context.Background(), []domain.Exercise{e}))
	return fx.exercises.exercises[len(fx.exercises.exercises)-1]
}

// --- Plan lifecycle ---

func TestWorkoutService_CreatePlan(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()

	plan, err := fx.service.CreatePlan(ctx, fx.userID, domain.PlanLoseWeight)
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, fx.userID, plan.UserID)
	assert.Equal(t, "LoseWeight", plan.Description)

	// Everyday frequency fills the capped four-week grid, two per date.
	require.Len(t, plan.Exercises, 56)
	for _, e := range plan.Exercises {
		assert.Equal(t, plan.ID, e.PlanID)
		assert.Equal(t, domain.StatusScheduled, e.Status)
	}
	assert.Len(t, fx.exercises.exercises, 56)
}

func TestWorkoutService_CreatePlan_SecondInSameMonthConflicts(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()

	_, err := fx.service.CreatePlan(ctx, fx.userID, domain.PlanLoseWeight)
	require.NoError(t, err)

	_, err = fx.service.CreatePlan(ctx, fx.userID, domain.PlanGainMuscle)
	require.ErrorIs(t, err, ErrPlanAlreadyExists)
}

func TestWorkoutService_CreatePlan_UnknownUser(t *testing.T) {
	fx := newWorkoutServiceFixture(t)

	_, err := fx.service.CreatePlan(context.Background(), primitive.NewObjectID(), domain.PlanLoseWeight)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestWorkoutService_CreatePlan_WeatherFailureTolerated(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	fx.weather.err = errors.New("api down")

	plan, err := fx.service.CreatePlan(context.Background(), fx.userID, domain.PlanLoseWeight)
	require.NoError(t, err)
	// Default snapshot lands in the moderate bucket.
	require.NotEmpty(t, plan.Exercises)
	assert.Contains(t, plan.Exercises[0].Name, "Running")
}

func TestWorkoutService_UpdatePlan_ReplacesExercises(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()

	plan, err := fx.service.CreatePlan(ctx, fx.userID, domain.PlanLoseWeight)
	require.NoError(t, err)
	oldIDs := make(map[primitive.ObjectID]struct{})
	for _, e := range plan.Exercises {
		oldIDs[e.ID] = struct{}{}
	}

	updated, err := fx.service.UpdatePlan(ctx, plan.ID, fx.userID, domain.PlanGainMuscle)
	require.NoError(t, err)
	assert.Equal(t, "GainMuscle", updated.Description)
	require.NotEmpty(t, updated.Exercises)

	// Old generation fully replaced, none of the previous IDs survive.
	for _, e := range fx.exercises.exercises {
		_, stale := oldIDs[e.ID]
		assert.False(t, stale)
		assert.Equal(t, plan.ID, e.PlanID)
	}
	assert.Contains(t, updated.Exercises[0].Name, "Weight Lifting")
}

func TestWorkoutService_UpdatePlan_OwnershipEnforced(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()

	plan, err := fx.service.CreatePlan(ctx, fx.userID, domain.PlanLoseWeight)
	require.NoError(t, err)

	otherUser := &domain.User{Email: "eve@example.com", CreatedAt: time.Now().UTC()}
	otherID, err := fx.users.Create(ctx, otherUser)
	require.NoError(t, err)

	_, err = fx.service.UpdatePlan(ctx, plan.ID, otherID, domain.PlanGainMuscle)
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestWorkoutService_DeletePlan(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()

	plan, err := fx.service.CreatePlan(ctx, fx.userID, domain.PlanLoseWeight)
	require.NoError(t, err)

	require.NoError(t, fx.service.DeletePlan(ctx, plan.ID, fx.userID))
	assert.Empty(t, fx.exercises.exercises)

	err = fx.service.DeletePlan(ctx, plan.ID, fx.userID)
	require.ErrorIs(t, err, ErrPlanNotFound)
}

// --- Completion state machine ---

func TestWorkoutService_CompleteStep_MovesExerciseToStarted(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	e := fx.seedExercise(t, time.Now(), domain.StatusScheduled, false, false)

	require.NoError(t, fx.service.CompleteStep(ctx, e.Steps[0].ID, fx.userID))

	stored := fx.exercises.byID(e.ID)
	assert.Equal(t, domain.StatusStarted, stored.Status)
	assert.True(t, stored.Steps[0].Completed)
	assert.False(t, stored.Steps[1].Completed)
}

func TestWorkoutService_CompleteStep_LastStepCascades(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	e := fx.seedExercise(t, time.Now(), domain.StatusStarted, true, false)

	require.NoError(t, fx.service.CompleteStep(ctx, e.Steps[1].ID, fx.userID))

	stored := fx.exercises.byID(e.ID)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.True(t, stored.AllStepsCompleted())
}

func TestWorkoutService_CompleteStep_AlreadyCompleted(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	e := fx.seedExercise(t, time.Now(), domain.StatusStarted, true, false)

	err := fx.service.CompleteStep(ctx, e.Steps[0].ID, fx.userID)
	require.ErrorIs(t, err, ErrStepAlreadyCompleted)
}

func TestWorkoutService_CompleteStep_TerminalExerciseIsFrozen(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	e := fx.seedExercise(t, time.Now(), domain.StatusMissed, false)

	err := fx.service.CompleteStep(ctx, e.Steps[0].ID, fx.userID)
	require.ErrorIs(t, err, ErrExerciseNotFound)

	// The missed status must survive the attempt.
	assert.Equal(t, domain.StatusMissed, fx.exercises.byID(e.ID).Status)
	assert.False(t, fx.exercises.byID(e.ID).Steps[0].Completed)
}

func TestWorkoutService_CompleteStep_UnknownStep(t *testing.T) {
	fx := newWorkoutServiceFixture(t)

	err := fx.service.CompleteStep(context.Background(), uuid.NewString(), fx.userID)
	require.ErrorIs(t, err, ErrStepNotFound)
}

func TestWorkoutService_CompleteExercise_RequiresAllSteps(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	e := fx.seedExercise(t, time.Now(), domain.StatusStarted, true, false)

	err := fx.service.CompleteExercise(ctx, e.ID, fx.userID)
	require.ErrorIs(t, err, ErrStepsNotCompleted)
	assert.Equal(t, domain.StatusStarted, fx.exercises.byID(e.ID).Status)
}

func TestWorkoutService_CompleteExercise(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	e := fx.seedExercise(t, time.Now(), domain.StatusStarted, true, true)

	require.NoError(t, fx.service.CompleteExercise(ctx, e.ID, fx.userID))
	assert.Equal(t, domain.StatusCompleted, fx.exercises.byID(e.ID).Status)

	// Completing twice: the row is terminal now.
	err := fx.service.CompleteExercise(ctx, e.ID, fx.userID)
	require.ErrorIs(t, err, ErrExerciseNotFound)
}

// --- Views and stats ---

func TestWorkoutService_GetExercisesForToday_ExcludesCompleted(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	fx.seedExercise(t, now, domain.StatusScheduled, false)
	fx.seedExercise(t, now, domain.StatusCompleted, true)
	fx.seedExercise(t, now.AddDate(0, 0, -1), domain.StatusScheduled, false)

	today, err := fx.service.GetExercisesForToday(ctx, fx.userID)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, domain.StatusScheduled, today[0].Status)
	assert.Equal(t, truncateToDay(now), today[0].Date)
}

func TestWorkoutService_GetPastWorkouts_LimitedAndNewestFirst(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 1; i <= 8; i++ {
		fx.seedExercise(t, now.AddDate(0, 0, -i), domain.StatusCompleted, true)
	}
	fx.seedExercise(t, now, domain.StatusScheduled, false) // today, excluded

	past, err := fx.service.GetPastWorkouts(ctx, fx.userID)
	require.NoError(t, err)
	require.Len(t, past, pastWorkoutsLimit)
	for i := 1; i < len(past); i++ {
		assert.True(t, past[i].Date.Before(past[i-1].Date))
	}
}

func TestWorkoutService_GetTotalWorkoutsAndStreak(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	today := truncateToDay(time.Now().UTC())

	fx.seedExercise(t, today, domain.StatusCompleted, true)
	fx.seedExercise(t, today.AddDate(0, 0, -1), domain.StatusCompleted, true)
	fx.seedExercise(t, today.AddDate(0, 0, -2), domain.StatusMissed, false)
	fx.seedExercise(t, today.AddDate(0, 0, -3), domain.StatusCompleted, true)

	total, err := fx.service.GetTotalWorkouts(ctx, fx.userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	streak, err := fx.service.GetStreak(ctx, fx.userID)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestWorkoutService_GetGraphData_SevenPoints(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	ctx := context.Background()
	today := truncateToDay(time.Now().UTC())

	fx.seedExercise(t, today, domain.StatusCompleted, true)
	fx.seedExercise(t, today.AddDate(0, 0, -3), domain.StatusCompleted, true)
	fx.seedExercise(t, today.AddDate(0, 0, -10), domain.StatusCompleted, true) // outside window

	points, err := fx.service.GetGraphData(ctx, fx.userID)
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, today.Weekday().String(), points[6].Name)
	assert.Equal(t, 1, points[6].Total)
	assert.Equal(t, 1, points[3].Total)

	sum := 0
	for _, p := range points {
		sum += p.Total
	}
	assert.Equal(t, 2, sum)
}
