package store

// Config holds configuration for the Store.
type Config struct {
	// InitialCapacity is the number of record slots allocated up front.
	// The capacity doubles every time an append finds the store full.
	// Default: 16 (also used when the value is not positive)
	InitialCapacity int
}

// DefaultConfig returns sensible defaults for small rosters.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: 16,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.InitialCapacity < 1 {
		c.InitialCapacity = 16
	}
}
