// Package training computes distance, speed and calorie summaries for sensor-tracked workouts.
package training

import "fmt"

const (
	lenStep = 0.65
	mInKm   = 1000
	minInH  = 60
)

// Training is a workout that can report its derived metrics.
type Training interface {
	// Distance returns the covered distance in kilometres.
	Distance() float64
	// MeanSpeed returns the average speed in km/h.
	MeanSpeed() float64
	// SpentCalories returns the energy burned over the whole workout.
	SpentCalories() float64
	// ShowTrainingInfo assembles the report for the workout.
	ShowTrainingInfo() InfoMessage
}

// training holds the readings shared by every workout type. It does not
// implement SpentCalories and therefore never satisfies Training on its own.
type training struct {
	action   int
	duration float64
	weight   float64
}

func newTraining(action int, duration, weight float64) (training, error) {
	if duration == 0 {
		return training{}, ErrZeroDuration
	}
	return training{action: action, duration: duration, weight: weight}, nil
}

func (t training) distance(step float64) float64 {
	return float64(t.action) * step / mInKm
}

// Duration returns the workout length in hours.
func (t training) Duration() float64 {
	return t.duration
}

// Action returns the raw step or stroke count.
func (t training) Action() int {
	return t.action
}

// Weight returns the athlete weight in kilograms.
func (t training) Weight() float64 {
	return t.weight
}

func info(name string, t training, tr Training) InfoMessage {
	return InfoMessage{
		TrainingType: name,
		Duration:     t.duration,
		Distance:     tr.Distance(),
		Speed:        tr.MeanSpeed(),
		Calories:     tr.SpentCalories(),
	}
}

// InfoMessage is the read-only summary of a completed workout.
type InfoMessage struct {
	TrainingType string
	Duration     float64
	Distance     float64
	Speed        float64
	Calories     float64
}

const messageFormat = "Workout type: %s; Duration: %.3f h; Distance: %.3f km; Mean speed: %.3f km/h; Calories burned: %.3f."

// Message renders the summary line printed for a workout.
func (m InfoMessage) Message() string {
	return fmt.Sprintf(messageFormat, m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories)
}

// String implements fmt.Stringer.
func (m InfoMessage) String() string {
	return m.Message()
}
