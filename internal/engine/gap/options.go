package gap

// Default tuning values.
const (
	DefaultCapacity     = 32
	DefaultGrowthFactor = 2.0
	DefaultGrowthSlack  = 16
)

type config struct {
	capacity     int
	growthFactor float64
	slack        int
}

func defaultConfig() config {
	return config{
		capacity:     DefaultCapacity,
		growthFactor: DefaultGrowthFactor,
		slack:        DefaultGrowthSlack,
	}
}

// Option configures a Buffer during creation.
type Option func(*config)

// WithCapacity sets the initial capacity.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.capacity = n
		}
	}
}

// WithGrowthFactor sets the multiplier applied to the capacity when the gap
// is exhausted. Values below 1 are ignored.
func WithGrowthFactor(f float64) Option {
	return func(c *config) {
		if f >= 1 {
			c.growthFactor = f
		}
	}
}

// WithGrowthSlack sets the number of extra slots added on each reallocation.
func WithGrowthSlack(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.slack = n
		}
	}
}
