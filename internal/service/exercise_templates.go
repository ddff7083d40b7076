package service

import (
	"fmt"

	"fitlife/fitness-backend/internal/domain"
)

// weatherBucket is the coarse weather category driving template selection.
type weatherBucket string

const (
	bucketRaining  weatherBucket = "raining"
	bucketHot      weatherBucket = "hot"
	bucketCold     weatherBucket = "cold"
	bucketModerate weatherBucket = "moderate"
)

// bucketForWeather classifies a snapshot. Priority order matters: rain wins
// over temperature, so a rainy 35° day still lands in the raining bucket.
func bucketForWeather(w domain.WeatherSnapshot) weatherBucket {
	switch {
	case w.IsRaining:
		return bucketRaining
	case w.Temperature > 30:
		return bucketHot
	case w.Temperature < 10:
		return bucketCold
	default:
		return bucketModerate
	}
}

type stepTemplate struct {
	description string
	minutes     int
}

type exerciseTemplate struct {
	name        string
	description string
	minutes     int
	steps       []stepTemplate
}

// templatePair is the two exercises emitted for one selected date.
type templatePair [2]exerciseTemplate

// templatePairFor resolves the 2-D lookup {weather bucket} x {goal}.
func templatePairFor(bucket weatherBucket, goal domain.PlanType) (templatePair, error) {
	goals, ok := scheduleTemplates[bucket]
	if !ok {
		return templatePair{}, fmt.Errorf("%w: no templates for weather bucket %q", ErrInvalidPlanType, bucket)
	}
	pair, ok := goals[goal]
	if !ok {
		return templatePair{}, fmt.Errorf("%w: %q", ErrInvalidPlanType, goal)
	}
	return pair, nil
}

// scheduleTemplates is the static 4x4 table of template pairs. The content
// is data; the selection logic above is the contract.
var scheduleTemplates = map[weatherBucket]map[domain.PlanType]templatePair{
	bucketRaining: {
		domain.PlanLoseWeight: {
			{
				name:        "Indoor Cardio Circuit",
				description: "A high-energy indoor cardio session to burn calories while it pours outside.",
				minutes:     30,
				steps: []stepTemplate{
					{"Warm up with light movement", 5},
					{"Jumping jacks and high knees", 10},
					{"Burpee intervals", 10},
					{"Cool down and stretch", 5},
				},
			},
			{
				name:        "Fat Burn Yoga Flow",
				description: "A flowing yoga session that keeps the heart rate up and the joints happy.",
				minutes:     30,
				steps: []stepTemplate{
					{"Sun salutations to warm up", 10},
					{"Standing flow sequence", 15},
					{"Relaxation poses", 5},
				},
			},
		},
		domain.PlanGainMuscle: {
			{
				name:        "Indoor Strength Circuit",
				description: "Bodyweight and dumbbell strength work for a rainy day.",
				minutes:     45,
				steps: []stepTemplate{
					{"Warm up with light weights", 10},
					{"Push-up and row supersets", 20},
					{"Core finisher", 10},
					{"Cool down with stretches", 5},
				},
			},
			{
				name:        "Power Yoga Session",
				description: "Strength-oriented yoga holds to build stability and muscle control.",
				minutes:     35,
				steps: []stepTemplate{
					{"Warm up with gentle flows", 10},
					{"Hold strength poses", 20},
					{"Wind down", 5},
				},
			},
		},
		domain.PlanImproveEndurance: {
			{
				name:        "Indoor Cardio Endurance",
				description: "A steady-state indoor cardio block to build aerobic capacity.",
				minutes:     40,
				steps: []stepTemplate{
					{"Warm up on the spot", 5},
					{"Steady cardio at conversational pace", 30},
					{"Cool down", 5},
				},
			},
			{
				name:        "Yoga Breathing Session",
				description: "Breath-led yoga to train lung capacity and recovery.",
				minutes:     30,
				steps: []stepTemplate{
					{"Seated breathing drills", 10},
					{"Slow flow with breath holds", 15},
					{"Final relaxation", 5},
				},
			},
		},
		domain.PlanIncreaseFlexibility: {
			{
				name:        "Indoor Mobility Cardio",
				description: "Light cardio mixed with dynamic mobility drills.",
				minutes:     25,
				steps: []stepTemplate{
					{"Gentle warm up", 5},
					{"Dynamic mobility circuit", 15},
					{"Easy cool down", 5},
				},
			},
			{
				name:        "Deep Stretch Yoga",
				description: "A long-hold yoga session to open hips, hamstrings and shoulders.",
				minutes:     60,
				steps: []stepTemplate{
					{"Start with basic poses", 20},
					{"Hold each pose for 30 seconds", 30},
					{"End with relaxation poses", 10},
				},
			},
		},
	},
	bucketHot: {
		domain.PlanLoseWeight: {
			{
				name:        "Swimming - Calorie Burner",
				description: "Beat the heat with a calorie-burning swim.",
				minutes:     30,
				steps: []stepTemplate{
					{"Warm up with easy laps", 5},
					{"Interval laps at a brisk pace", 20},
					{"Cool down with slow strokes", 5},
				},
			},
			{
				name:        "Early Morning Fat-Burn Run",
				description: "A run before the heat sets in, focused on steady calorie burn.",
				minutes:     30,
				steps: []stepTemplate{
					{"Warm up for 5 minutes", 5},
					{"Run at a steady pace", 20},
					{"Cool down for 5 minutes", 5},
				},
			},
		},
		domain.PlanGainMuscle: {
			{
				name:        "Resistance Swimming",
				description: "Swimming with resistance focus to load the upper body.",
				minutes:     45,
				steps: []stepTemplate{
					{"Warm up with light swimming", 10},
					{"Paddle and pull-buoy sets", 25},
					{"Core work at the pool edge", 5},
					{"Cool down", 5},
				},
			},
			{
				name:        "Early Morning Hill Run",
				description: "Short hill repeats to build leg strength before the heat.",
				minutes:     35,
				steps: []stepTemplate{
					{"Warm up jog", 10},
					{"Hill repeats", 20},
					{"Cool down walk", 5},
				},
			},
		},
		domain.PlanImproveEndurance: {
			{
				name:        "Endurance Swimming",
				description: "Long continuous swimming to improve cardiovascular health.",
				minutes:     40,
				steps: []stepTemplate{
					{"Warm up with light swimming", 10},
					{"Swim at a steady pace", 25},
					{"Cool down with slow strokes", 5},
				},
			},
			{
				name:        "Early Morning Distance Run",
				description: "An easy long run in the cool morning hours.",
				minutes:     45,
				steps: []stepTemplate{
					{"Warm up for 5 minutes", 5},
					{"Long run at an easy pace", 35},
					{"Cool down for 5 minutes", 5},
				},
			},
		},
		domain.PlanIncreaseFlexibility: {
			{
				name:        "Gentle Swimming",
				description: "Low-impact swimming to loosen up the whole body.",
				minutes:     30,
				steps: []stepTemplate{
					{"Easy laps to warm up", 10},
					{"Mixed-stroke relaxed swimming", 15},
					{"Floating and stretching", 5},
				},
			},
			{
				name:        "Early Morning Run and Stretch",
				description: "A short run followed by a full-body stretch routine.",
				minutes:     35,
				steps: []stepTemplate{
					{"Easy run", 15},
					{"Standing stretch series", 10},
					{"Floor stretch series", 10},
				},
			},
		},
	},
	bucketCold: {
		domain.PlanLoseWeight: {
			{
				name:        "Indoor HIIT Burn",
				description: "Short, intense indoor intervals to stay warm and burn fat.",
				minutes:     30,
				steps: []stepTemplate{
					{"Warm up thoroughly", 8},
					{"HIIT intervals 30s on / 30s off", 17},
					{"Cool down and stretch", 5},
				},
			},
			{
				name:        "Strength Training - Light Weights",
				description: "High-rep light-weight circuit to keep the heart rate elevated.",
				minutes:     35,
				steps: []stepTemplate{
					{"Warm up with light weights", 10},
					{"Circuit of 4 exercises, 3 rounds", 20},
					{"Cool down with stretches", 5},
				},
			},
		},
		domain.PlanGainMuscle: {
			{
				name:        "Indoor HIIT Power",
				description: "Explosive bodyweight intervals for power development.",
				minutes:     30,
				steps: []stepTemplate{
					{"Long warm up for cold muscles", 10},
					{"Explosive interval sets", 15},
					{"Cool down", 5},
				},
			},
			{
				name:        "Strength Training - Heavy Compounds",
				description: "A strength training session built around heavy compound lifts.",
				minutes:     45,
				steps: []stepTemplate{
					{"Warm up with light weights", 10},
					{"Perform 3 sets of 10 reps", 30},
					{"Cool down with stretches", 5},
				},
			},
		},
		domain.PlanImproveEndurance: {
			{
				name:        "Indoor HIIT Endurance",
				description: "Longer intervals with short rests to push aerobic limits.",
				minutes:     40,
				steps: []stepTemplate{
					{"Warm up", 8},
					{"2-minute intervals, 1-minute rests", 27},
					{"Cool down", 5},
				},
			},
			{
				name:        "Strength Training - High Reps",
				description: "Endurance-oriented strength work with minimal rest.",
				minutes:     40,
				steps: []stepTemplate{
					{"Warm up with light weights", 10},
					{"High-rep sets with short rests", 25},
					{"Cool down with stretches", 5},
				},
			},
		},
		domain.PlanIncreaseFlexibility: {
			{
				name:        "Indoor HIIT Mobility",
				description: "Gentle intervals interleaved with mobility work.",
				minutes:     30,
				steps: []stepTemplate{
					{"Warm up with joint circles", 8},
					{"Alternate cardio and mobility drills", 17},
					{"Cool down", 5},
				},
			},
			{
				name:        "Strength Training and Stretch",
				description: "Light strength work paired with long stretching blocks.",
				minutes:     40,
				steps: []stepTemplate{
					{"Warm up", 8},
					{"Light full-body strength circuit", 17},
					{"Long stretch session", 15},
				},
			},
		},
	},
	bucketModerate: {
		domain.PlanLoseWeight: {
			{
				name:        "Running",
				description: "A cardio-focused exercise to help burn calories and lose weight.",
				minutes:     30,
				steps: []stepTemplate{
					{"Warm up for 5 minutes", 5},
					{"Run at a steady pace", 20},
					{"Cool down for 5 minutes", 5},
				},
			},
			{
				name:        "Cycling - Fat Burn",
				description: "A moderate-intensity ride to maximize calorie burn.",
				minutes:     40,
				steps: []stepTemplate{
					{"Easy spin to warm up", 10},
					{"Ride at a moderate pace", 25},
					{"Easy spin to cool down", 5},
				},
			},
		},
		domain.PlanGainMuscle: {
			{
				name:        "Weight Lifting",
				description: "A strength training exercise to build muscle mass.",
				minutes:     45,
				steps: []stepTemplate{
					{"Warm up with light weights", 10},
					{"Perform 3 sets of 10 reps", 30},
					{"Cool down with stretches", 5},
				},
			},
			{
				name:        "Cycling - Hill Intervals",
				description: "Hill efforts on the bike to build leg strength.",
				minutes:     40,
				steps: []stepTemplate{
					{"Easy spin to warm up", 10},
					{"Hill interval efforts", 25},
					{"Easy spin to cool down", 5},
				},
			},
		},
		domain.PlanImproveEndurance: {
			{
				name:        "Swimming",
				description: "An endurance exercise to improve cardiovascular health.",
				minutes:     40,
				steps: []stepTemplate{
					{"Warm up with light swimming", 10},
					{"Swim at a steady pace", 25},
					{"Cool down with slow strokes", 5},
				},
			},
			{
				name:        "Cycling - Long Ride",
				description: "A steady long ride to build aerobic endurance.",
				minutes:     60,
				steps: []stepTemplate{
					{"Easy spin to warm up", 10},
					{"Steady ride at endurance pace", 45},
					{"Easy spin to cool down", 5},
				},
			},
		},
		domain.PlanIncreaseFlexibility: {
			{
				name:        "Yoga",
				description: "A flexibility-focused exercise to improve range of motion and reduce stress.",
				minutes:     60,
				steps: []stepTemplate{
					{"Start with basic poses", 20},
					{"Hold each pose for 30 seconds", 30},
					{"End with relaxation poses", 10},
				},
			},
			{
				name:        "Cycling - Recovery Ride",
				description: "A gentle ride followed by stretching to aid mobility.",
				minutes:     35,
				steps: []stepTemplate{
					{"Very easy spin", 20},
					{"Off-bike stretch routine", 15},
				},
			},
		},
	},
}
