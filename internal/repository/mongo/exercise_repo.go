package mongo

import (
	"context"
	"errors"
	"time"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// Statuses an exercise can still be mutated in. Used as the guard of every
// conditional update below; whichever writer observes a terminal status
// first wins, the loser's filter matches nothing.
var nonTerminalStatuses = bson.M{"$in": bson.A{domain.StatusScheduled, domain.StatusStarted}}

// mongoExerciseRepository implements repository.ExerciseRepository.
//
// Steps are embedded in the exercise document, so step completion, the
// completion cascade and the missed sweep are all single-document updates —
// atomic without transactions.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// InsertMany stores a freshly generated batch of exercises.
func (r *mongoExerciseRepository) InsertMany(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	docs := make([]interface{}, len(exercises))
	now := time.Now().UTC()
	for i := range exercises {
		if exercises[i].ID == primitive.NilObjectID {
			exercises[i].ID = primitive.NewObjectID()
		}
		exercises[i].CreatedAt = now
		exercises[i].UpdatedAt = now
		docs[i] = exercises[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// DeleteByPlanID discards every exercise owned by a plan. Used when a plan
// is regenerated (full replacement) or deleted.
func (r *mongoExerciseRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	if planID == primitive.NilObjectID {
		return errors.New("plan ID is required")
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// GetByID retrieves a single exercise owned by the given user.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetByStepID retrieves the exercise embedding the given step, owned by the
// given user.
func (r *mongoExerciseRepository) GetByStepID(ctx context.Context, stepID string, userID primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"steps.id": stepID, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// GetOpenByUserOnDate returns the user's not-yet-completed exercises for a
// calendar date, sorted by name.
func (r *mongoExerciseRepository) GetOpenByUserOnDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.Exercise, error) {
	day := truncateToDay(date)
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": day, "$lt": day.AddDate(0, 0, 1)},
		"status": bson.M{"$ne": domain.StatusCompleted},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

// GetPastByUser returns exercises dated strictly before the cutoff, newest
// first.
func (r *mongoExerciseRepository) GetPastByUser(ctx context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]domain.Exercise, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$lt": truncateToDay(before)},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return r.find(ctx, filter, findOptions)
}

// GetByUserInRange returns every exercise dated in [from, to).
func (r *mongoExerciseRepository) GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Exercise, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

// GetCompletedInRange returns the completed exercises dated in [from, to).
func (r *mongoExerciseRepository) GetCompletedInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Exercise, error) {
	filter := bson.M{
		"userId": userID,
		"status": domain.StatusCompleted,
		"date":   bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

// GetByUserSortedDesc returns the user's exercises ordered by date
// descending, at most limit rows (0 means unbounded).
func (r *mongoExerciseRepository) GetByUserSortedDesc(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"userId": userID}, findOptions)
}

// CountCompleted counts the user's completed exercises.
func (r *mongoExerciseRepository) CountCompleted(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"userId": userID,
		"status": domain.StatusCompleted,
	})
}

// MarkStepCompleted flips one embedded step to completed and moves the
// exercise to started, guarded on the exercise still being mutable and the
// step still incomplete.
func (r *mongoExerciseRepository) MarkStepCompleted(ctx context.Context, stepID string, userID primitive.ObjectID) error {
	filter := bson.M{
		"userId": userID,
		"status": nonTerminalStatuses,
		"steps":  bson.M{"$elemMatch": bson.M{"id": stepID, "completed": false}},
	}
	update := bson.M{
		"$set": bson.M{
			"steps.$.completed": true,
			"status":            domain.StatusStarted,
			"updatedAt":         time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrStaleState
	}
	return nil
}

// CompleteIfAllStepsDone performs the completion cascade: if no incomplete
// step remains, the exercise transitions to completed in one conditional
// write.
func (r *mongoExerciseRepository) CompleteIfAllStepsDone(ctx context.Context, exerciseID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":    exerciseID,
		"userId": userID,
		"status": nonTerminalStatuses,
		"steps":  bson.M{"$not": bson.M{"$elemMatch": bson.M{"completed": false}}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    domain.StatusCompleted,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// CompleteExercise transitions an exercise directly to completed, guarded on
// every step already being completed.
func (r *mongoExerciseRepository) CompleteExercise(ctx context.Context, exerciseID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":    exerciseID,
		"userId": userID,
		"status": nonTerminalStatuses,
		"steps":  bson.M{"$not": bson.M{"$elemMatch": bson.M{"completed": false}}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    domain.StatusCompleted,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrStaleState
	}
	return nil
}

// MarkMissedBefore flips every still-open exercise dated strictly before the
// cutoff to missed. Already-completed and already-missed rows are excluded
// by the filter, so re-running the sweep is harmless.
func (r *mongoExerciseRepository) MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"date":   bson.M{"$lt": truncateToDay(cutoff)},
		"status": nonTerminalStatuses,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    domain.StatusMissed,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Stats and range queries go through (userId, date).
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			// Step completion addresses exercises by embedded step ID.
			Keys:    bson.D{{Key: "steps.id", Value: 1}},
			Options: options.Index(),
		},
		{
			// The sweeper scans by (status, date).
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
