package dnd

import (
	"log/slog"

	"github.com/thenoetrevino/pilar/internal/services/column"
)

// Service applies planned drops to an editor
type Service interface {
	// Drop plans and dispatches drop. It reports false when the drop was
	// rejected; the document is then untouched.
	Drop(drop Drop) bool
}

// Option is a functional option for configuring the drop service
type Option func(*service)

// WithGate injects the policy that can lock drops together with the column
// commands
func WithGate(g column.Gate) Option {
	return func(s *service) {
		s.gate = g
	}
}

// WithLogger sets the logger for rejected drops
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

type service struct {
	host   column.Host
	gate   column.Gate
	logger *slog.Logger
}

// NewService creates a new drop service
func NewService(host column.Host, opts ...Option) Service {
	s := &service{
		host:   host,
		gate:   column.StaticGate(false),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Drop(drop Drop) bool {
	if s.gate.Locked() {
		s.logger.Debug("drop rejected", "error", column.ErrLocked)
		return false
	}
	tr, err := Plan(s.host.State(), drop)
	if err != nil {
		s.logger.Debug("drop rejected",
			"dragged", drop.Dragged,
			"target", drop.Target,
			"side", drop.Side,
			"error", err)
		return false
	}
	if err := s.host.Dispatch(tr); err != nil {
		s.logger.Warn("drop failed", "dragged", drop.Dragged, "error", err)
		return false
	}
	return true
}
