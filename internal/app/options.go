package app

import (
	"log/slog"

	"github.com/thenoetrevino/pilar/internal/config"
	"github.com/thenoetrevino/pilar/internal/document"
	"github.com/thenoetrevino/pilar/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	config      *config.Config
	docID       string
	peerID      string
	selection   *document.Selection
}

// WithEventPublisher connects the editor to the sync transport
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithConfig sets the user configuration
func WithConfig(c *config.Config) Option {
	return func(cfg *appConfig) {
		cfg.config = c
	}
}

// WithDocID names the shared document
func WithDocID(id string) Option {
	return func(cfg *appConfig) {
		cfg.docID = id
	}
}

// WithPeerID sets the id the editor publishes under
func WithPeerID(id string) Option {
	return func(cfg *appConfig) {
		cfg.peerID = id
	}
}

// WithSelection sets the initial selection
func WithSelection(sel document.Selection) Option {
	return func(cfg *appConfig) {
		cfg.selection = &sel
	}
}
