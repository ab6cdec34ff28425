package summary

import (
	"context"
	"errors"
	"time"

	"example.com/fittracker/internal/observability"
	"example.com/fittracker/internal/training"
)

// Request is a single sensor package submitted for summarising.
type Request struct {
	TenantID string
	Subject  string
	Code     string
	Data     []float64
}

// Result is a computed summary together with its published event.
type Result struct {
	Info  training.InfoMessage
	Event Summarized
}

// DefaultPublishTimeout caps how long Summarize waits on the publisher.
const DefaultPublishTimeout = 2 * time.Second

// Service turns sensor packages into summaries and publishes them.
type Service struct {
	publisher      Publisher
	publishTimeout time.Duration
	now            func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPublishTimeout overrides DefaultPublishTimeout. Non-positive values are ignored.
func WithPublishTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// NewService constructs a Service. A nil publisher disables publishing.
func NewService(publisher Publisher, opts ...ServiceOption) *Service {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	s := &Service{publisher: publisher, publishTimeout: DefaultPublishTimeout, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize computes the summary for req. Publishing is best effort: delivery
// failures are logged and counted by the publisher and never fail the call.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	t, err := training.ReadPackage(req.Code, req.Data)
	if err != nil {
		observability.RecordRejected(rejectionReason(err))
		return Result{}, err
	}

	info := t.ShowTrainingInfo()
	computedAt := s.now()
	observability.RecordReport(info, computedAt)

	event := NewSummarized(req.TenantID, req.Subject, req.Code, info, computedAt)
	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	_ = s.publisher.Publish(publishCtx, event)

	return Result{Info: info, Event: event}, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, training.ErrUnknownWorkout):
		return observability.ReasonUnknownWorkout
	case errors.Is(err, training.ErrArityMismatch):
		return observability.ReasonArityMismatch
	case errors.Is(err, training.ErrZeroDuration):
		return observability.ReasonZeroDuration
	default:
		return observability.ReasonInvalidRequest
	}
}
