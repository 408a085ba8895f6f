// Package sources reads dotenv files into the internal variable model.
package sources

import (
	"go.uber.org/zap"

	"github.com/nvinuesa/envporter/internal/model"
)

// Source defines the interface for variable source adapters.
type Source interface {
	// Name returns the unique identifier for this source (e.g., "dotenv").
	Name() string

	// Description returns a human-readable description of the source.
	Description() string

	// Open initializes the source with the given path and options.
	Open(path string, opts OpenOptions) error

	// Read returns all variables from the source, in file order.
	// May be called multiple times; returns the same results.
	Read() (model.Variables, error)

	// Close releases any resources held by the source.
	Close() error
}

// OpenOptions provides configuration for opening a source.
type OpenOptions struct {
	// ParseComments keeps inline comments as variable comments.
	ParseComments bool

	// LeadingComments runs AttachLeadingComments before parsing, so a comment
	// line directly above an assignment becomes its comment.
	// Has no visible effect unless ParseComments is also set.
	LeadingComments bool

	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger
}

func (o OpenOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
