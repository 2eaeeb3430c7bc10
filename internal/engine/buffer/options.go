package buffer

import "go.uber.org/zap"

// Default configuration values.
const (
	DefaultCapacity     = 1024
	DefaultLineCapacity = 64
	DefaultGrowthFactor = 2.0
	DefaultGrowthSlack  = 64
)

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithCapacity sets the initial capacity in code units.
func WithCapacity(n int) Option {
	return func(b *Buffer) {
		if n >= 0 {
			b.capacity = n
		}
	}
}

// WithLineCapacity sets the initial capacity of the line index.
func WithLineCapacity(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.lineCapacity = n
		}
	}
}

// WithGrowthFactor sets the capacity multiplier used when the text storage
// runs out of room. Values below 1 are ignored.
func WithGrowthFactor(f float64) Option {
	return func(b *Buffer) {
		if f >= 1 {
			b.growthFactor = f
		}
	}
}

// WithGrowthSlack sets the number of extra code units added on each
// reallocation.
func WithGrowthSlack(n int) Option {
	return func(b *Buffer) {
		if n >= 0 {
			b.growthSlack = n
		}
	}
}

// WithLogger sets the logger used for edit tracing and invariant reports.
func WithLogger(log *zap.Logger) Option {
	return func(b *Buffer) {
		if log != nil {
			b.log = log
		}
	}
}
