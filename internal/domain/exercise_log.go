package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseLog is a free-form activity entry logged by the user outside of
// any generated plan (e.g. an ad-hoc run).
type ExerciseLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseName    string             `bson:"exerciseName" json:"exerciseName"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	CaloriesBurned  int                `bson:"caloriesBurned" json:"caloriesBurned"`
	LoggedAt        time.Time          `bson:"loggedAt" json:"loggedAt"`
}
