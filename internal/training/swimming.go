package training

const (
	swimmingLenStep                  = 1.38
	swimmingCaloriesMeanSpeedShift   = 1.1
	swimmingCaloriesWeightMultiplier = 2
)

// Swimming is a pool session; speed comes from pool length and lap count
// rather than from the stroke count.
type Swimming struct {
	training
	lengthPool float64
	countPool  int
}

// NewSwimming builds a Swimming workout. lengthPool is in metres.
func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) (*Swimming, error) {
	base, err := newTraining(action, duration, weight)
	if err != nil {
		return nil, err
	}
	return &Swimming{training: base, lengthPool: lengthPool, countPool: countPool}, nil
}

// LengthPool returns the pool length in metres.
func (s *Swimming) LengthPool() float64 {
	return s.lengthPool
}

// CountPool returns the number of laps swum.
func (s *Swimming) CountPool() int {
	return s.countPool
}

// Distance implements Training.
func (s *Swimming) Distance() float64 {
	return s.distance(swimmingLenStep)
}

// MeanSpeed implements Training.
func (s *Swimming) MeanSpeed() float64 {
	return s.lengthPool * float64(s.countPool) / mInKm / s.duration
}

// SpentCalories implements Training.
func (s *Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimmingCaloriesMeanSpeedShift) *
		swimmingCaloriesWeightMultiplier * s.weight * s.duration
}

// ShowTrainingInfo implements Training.
func (s *Swimming) ShowTrainingInfo() InfoMessage {
	return info("Swimming", s.training, s)
}
