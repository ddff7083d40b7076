package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutFrequency is the user's self-reported workout cadence. The values
// form a small closed set coming from the onboarding questionnaire; anything
// outside the set falls back to a default at schedule generation time.
type WorkoutFrequency string

const (
	FrequencyOneToTwo  WorkoutFrequency = "1-2 times a week"
	FrequencyThreeFour WorkoutFrequency = "3-4 times a week"
	FrequencyFiveSix   WorkoutFrequency = "5-6 times a week"
	FrequencyEveryday  WorkoutFrequency = "Everyday"
)

// User represents an account holder. The registration date and the fitness
// preferences drive schedule generation.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	FitnessGoal  PlanType           `bson:"fitnessGoal,omitempty" json:"fitnessGoal,omitempty"`
	Frequency    WorkoutFrequency   `bson:"workoutFrequency,omitempty" json:"workoutFrequency,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"` // Used for weather lookups
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
