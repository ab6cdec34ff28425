// Package summary publishes computed training summaries to Kafka.
package summary

import (
	"time"

	"github.com/google/uuid"

	"example.com/fittracker/internal/training"
)

// EventType is the event_type header value for summary events.
const EventType = "training.summarized"

// Summarized is the payload emitted whenever a training summary is computed.
type Summarized struct {
	ReportID     string    `json:"report_id"`
	TenantID     string    `json:"tenant_id"`
	Subject      string    `json:"subject"`
	WorkoutCode  string    `json:"workout_code"`
	WorkoutType  string    `json:"workout_type"`
	DurationH    float64   `json:"duration_h"`
	DistanceKm   float64   `json:"distance_km"`
	MeanSpeedKmh float64   `json:"mean_speed_kmh"`
	Calories     float64   `json:"calories"`
	ComputedAt   time.Time `json:"computed_at"`
}

// NewSummarized builds the event for a computed summary with a fresh report id.
func NewSummarized(tenantID, subject, code string, msg training.InfoMessage, at time.Time) Summarized {
	return Summarized{
		ReportID:     uuid.NewString(),
		TenantID:     tenantID,
		Subject:      subject,
		WorkoutCode:  code,
		WorkoutType:  msg.TrainingType,
		DurationH:    msg.Duration,
		DistanceKm:   msg.Distance,
		MeanSpeedKmh: msg.Speed,
		Calories:     msg.Calories,
		ComputedAt:   at.UTC(),
	}
}

const summarizedSchema = `{
  "type": "object",
  "title": "TrainingSummarized",
  "properties": {
    "report_id": {"type": "string"},
    "tenant_id": {"type": "string"},
    "subject": {"type": "string"},
    "workout_code": {"type": "string", "enum": ["RUN", "SWM", "WLK"]},
    "workout_type": {"type": "string"},
    "duration_h": {"type": "number"},
    "distance_km": {"type": "number"},
    "mean_speed_kmh": {"type": "number"},
    "calories": {"type": "number"},
    "computed_at": {"type": "string", "format": "date-time"}
  },
  "required": ["report_id", "tenant_id", "workout_code", "workout_type", "duration_h", "distance_km", "mean_speed_kmh", "calories", "computed_at"],
  "additionalProperties": false
}`
