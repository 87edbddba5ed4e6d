package mirror

import (
	"errors"

	"github.com/TaffarelJr/OnionSeed.Data-sub000/repository"
)

var (
	// ErrNilTap is returned when a decorator is constructed around a nil
	// tap.
	ErrNilTap = errors.New("nil tap supplied")

	// ErrInvalidMode is returned when an unknown Mode is supplied.
	ErrInvalidMode = errors.New("invalid mirroring mode supplied")
)

// settings carries the collaborators shared by all decorators in this
// package. The logger is optional; without one, tap failures are discarded
// silently.
type settings struct {
	logger repository.Logger
	mode   Mode
}

// Option defines a functional option for configuring a mirror decorator.
type Option func(*settings) error

// WithLogger sets the logger that receives a warning for every tap failure.
func WithLogger(logger repository.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return repository.ErrNilLogger
		}

		s.logger = logger

		return nil
	}
}

// WithMode sets the mirroring mode. The default is Sequential.
func WithMode(mode Mode) Option {
	return func(s *settings) error {
		switch mode {
		case Sequential, Concurrent:
			s.mode = mode
			return nil
		default:
			return ErrInvalidMode
		}
	}
}

func newSettings(options []Option) (settings, error) {
	s := settings{mode: Sequential}

	for _, option := range options {
		if err := option(&s); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}
