package training

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrUnknownWorkout is returned when a package carries a workout code that is not registered.
	ErrUnknownWorkout = errors.New("unknown workout type")
	// ErrArityMismatch indicates the sensor data does not match the workout's field count.
	ErrArityMismatch = errors.New("sensor data does not match workout fields")
	// ErrZeroDuration rejects workouts whose duration would be used as a zero divisor.
	ErrZeroDuration = errors.New("workout duration must be non-zero")
)

type constructor struct {
	arity int
	build func(data []float64) (Training, error)
}

var workouts = map[string]constructor{
	"SWM": {
		arity: 5,
		build: func(d []float64) (Training, error) {
			return NewSwimming(int(d[0]), d[1], d[2], d[3], int(d[4]))
		},
	},
	"RUN": {
		arity: 3,
		build: func(d []float64) (Training, error) {
			return NewRunning(int(d[0]), d[1], d[2])
		},
	},
	"WLK": {
		arity: 4,
		build: func(d []float64) (Training, error) {
			return NewSportsWalking(int(d[0]), d[1], d[2], d[3])
		},
	},
}

// ReadPackage builds the workout identified by code from positional sensor data.
func ReadPackage(code string, data []float64) (Training, error) {
	c, ok := workouts[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkout, code)
	}
	if len(data) != c.arity {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d", ErrArityMismatch, code, c.arity, len(data))
	}
	t, err := c.build(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", code, err)
	}
	return t, nil
}

// Codes lists the registered workout codes in sorted order.
func Codes() []string {
	return slices.Sorted(maps.Keys(workouts))
}

// Package pairs a workout code with its raw sensor readings.
type Package struct {
	Code string
	Data []float64
}
