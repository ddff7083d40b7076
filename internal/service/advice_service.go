package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthAdviceService serves wellness tips from a fixed pool.
type HealthAdviceService interface {
	GetPersonalisedAdvice(ctx context.Context, userID primitive.ObjectID) ([]domain.HealthAdvice, error)
}

type healthAdviceService struct {
	userRepo repository.UserRepository
}

// NewHealthAdviceService creates a new instance of healthAdviceService.
func NewHealthAdviceService(userRepo repository.UserRepository) HealthAdviceService {
	return &healthAdviceService{userRepo: userRepo}
}

// GetPersonalisedAdvice returns two random tips from the pool.
func (s *healthAdviceService) GetPersonalisedAdvice(ctx context.Context, userID primitive.ObjectID) ([]domain.HealthAdvice, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	picks := rand.Perm(len(advicePool))[:2]
	advice := make([]domain.HealthAdvice, 0, 2)
	for i, p := range picks {
		entry := advicePool[p]
		entry.Img = fmt.Sprintf("Health%d", i+1)
		advice = append(advice, entry)
	}
	return advice, nil
}

var advicePool = []domain.HealthAdvice{
	{Title: "Stay Hydrated", Content: "Drink at least 8 glasses of water daily to stay hydrated.", Category: "General"},
	{Title: "Balanced Diet", Content: "Include a mix of proteins, carbs, and healthy fats in your meals.", Category: "Nutrition"},
	{Title: "Regular Exercise", Content: "Aim for at least 30 minutes of physical activity daily.", Category: "Fitness"},
	{Title: "Sleep Well", Content: "Get 7-8 hours of quality sleep every night.", Category: "Wellness"},
	{Title: "Mental Health", Content: "Practice mindfulness or meditation to reduce stress.", Category: "Mental Health"},
	{Title: "Stretching", Content: "Incorporate stretching exercises to improve flexibility and prevent injuries.", Category: "Fitness"},
	{Title: "Healthy Snacking", Content: "Choose fruits, nuts, or yogurt as healthy snack options.", Category: "Nutrition"},
	{Title: "Posture Check", Content: "Maintain good posture to avoid back and neck pain.", Category: "Wellness"},
	{Title: "Take Breaks", Content: "Take short breaks during work to stay refreshed and focused.", Category: "Mental Health"},
	{Title: "Outdoor Activities", Content: "Spend time outdoors to get fresh air and sunlight.", Category: "Wellness"},
	{Title: "Protein Intake", Content: "Ensure adequate protein intake to support muscle repair and growth.", Category: "Nutrition"},
	{Title: "Cardio Benefits", Content: "Incorporate cardio exercises to improve heart health.", Category: "Fitness"},
	{Title: "Mindful Eating", Content: "Eat slowly and mindfully to improve digestion and avoid overeating.", Category: "Nutrition"},
	{Title: "Strength Training", Content: "Add strength training to your routine to build muscle and bone density.", Category: "Fitness"},
	{Title: "Limit Screen Time", Content: "Reduce screen time to avoid eye strain and improve sleep quality.", Category: "Wellness"},
}
