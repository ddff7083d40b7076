package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanType is the fitness goal a workout plan is generated for.
type PlanType string

const (
	PlanLoseWeight          PlanType = "LoseWeight"
	PlanGainMuscle          PlanType = "GainMuscle"
	PlanImproveEndurance    PlanType = "ImproveEndurance"
	PlanIncreaseFlexibility PlanType = "IncreaseFlexibility"
)

// ParsePlanType validates a raw goal string coming from the API layer.
func ParsePlanType(raw string) (PlanType, error) {
	switch pt := PlanType(raw); pt {
	case PlanLoseWeight, PlanGainMuscle, PlanImproveEndurance, PlanIncreaseFlexibility:
		return pt, nil
	default:
		return "", fmt.Errorf("unknown plan type %q", raw)
	}
}

// WorkoutPlan is a month-scoped container of scheduled exercises for one
// user and one fitness goal. At most one plan may be created per user per
// calendar month; the generated exercises live in their own collection and
// reference the plan by ID.
type WorkoutPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Description string             `bson:"description" json:"description"` // The goal label, e.g. "LoseWeight"
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
