package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithBufferOptions passes options through to the underlying buffer.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(e *Engine) {
		e.bufOpts = append(e.bufOpts, opts...)
	}
}

// WithMatchCase sets whether Find compares case-sensitively.
func WithMatchCase(matchCase bool) Option {
	return func(e *Engine) {
		e.matchCase = matchCase
	}
}

// WithRegexp makes Find treat its pattern as a regular expression.
func WithRegexp(enabled bool) Option {
	return func(e *Engine) {
		e.useRegexp = enabled
	}
}

// WithLogger sets the logger for the engine and its buffer.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
