package service

import (
	"time"

	"github.com/okian/slotcap/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClock sets the time source supplying the run's snapshot.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithWindowWeeks sets the review window length in weeks.
func WithWindowWeeks(weeks int) Option {
	return func(s *Service) {
		if weeks > 0 {
			s.windowWeeks = weeks
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
