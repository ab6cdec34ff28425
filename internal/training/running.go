package training

const (
	runningCaloriesMeanSpeedMultiplier = 18
	runningCaloriesMeanSpeedShift      = 1.79
)

// Running is a run tracked by step count.
type Running struct {
	training
}

// NewRunning builds a Running workout.
func NewRunning(action int, duration, weight float64) (*Running, error) {
	base, err := newTraining(action, duration, weight)
	if err != nil {
		return nil, err
	}
	return &Running{training: base}, nil
}

// Distance implements Training.
func (r *Running) Distance() float64 {
	return r.distance(lenStep)
}

// MeanSpeed implements Training.
func (r *Running) MeanSpeed() float64 {
	return r.Distance() / r.duration
}

// SpentCalories implements Training.
func (r *Running) SpentCalories() float64 {
	return (runningCaloriesMeanSpeedMultiplier*r.MeanSpeed() + runningCaloriesMeanSpeedShift) *
		(r.weight / mInKm) * (r.duration * minInH)
}

// ShowTrainingInfo implements Training.
func (r *Running) ShowTrainingInfo() InfoMessage {
	return info("Running", r.training, r)
}
