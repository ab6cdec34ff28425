package training

const (
	walkingCaloriesWeightMultiplier = 0.035
	walkingSpeedHeightMultiplier    = 0.029
	kmhInMsec                       = 0.278
	cmInM                           = 100
)

// SportsWalking is a race-walking session; calories depend on the athlete's height.
type SportsWalking struct {
	training
	height float64
}

// NewSportsWalking builds a SportsWalking workout. height is in centimetres.
func NewSportsWalking(action int, duration, weight, height float64) (*SportsWalking, error) {
	base, err := newTraining(action, duration, weight)
	if err != nil {
		return nil, err
	}
	return &SportsWalking{training: base, height: height}, nil
}

// Height returns the athlete height in centimetres.
func (w *SportsWalking) Height() float64 {
	return w.height
}

// Distance implements Training.
func (w *SportsWalking) Distance() float64 {
	return w.distance(lenStep)
}

// MeanSpeed implements Training.
func (w *SportsWalking) MeanSpeed() float64 {
	return w.Distance() / w.duration
}

// SpentCalories implements Training.
func (w *SportsWalking) SpentCalories() float64 {
	speedMsec := w.MeanSpeed() * kmhInMsec
	return (walkingCaloriesWeightMultiplier*w.weight +
		(speedMsec*speedMsec/(w.height/cmInM))*walkingSpeedHeightMultiplier*w.weight) *
		w.duration * minInH
}

// ShowTrainingInfo implements Training.
func (w *SportsWalking) ShowTrainingInfo() InfoMessage {
	return info("SportsWalking", w.training, w)
}
