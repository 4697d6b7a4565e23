package mirror

import "github.com/google/uuid"

// Config holds configuration for the Mirror.
type Config struct {
	// Table is the name of the DynamoDB table holding mirrored records.
	// The table needs a string partition key "pk" and string sort key "sk".
	// Default: "roster_records"
	Table string

	// StoreID identifies the mirrored store; every record item of the store
	// shares this ID in its partition key.
	// Default: a random UUID
	StoreID string

	// NumShards is the number of partitions a store's records are spread over.
	// Higher values increase write throughput but Load issues one query per shard.
	// Default: 1 (no sharding, single query)
	// Max: 256
	NumShards int
}

// DefaultConfig returns sensible defaults for a single small store.
func DefaultConfig() Config {
	return Config{
		Table:     "roster_records",
		NumShards: 1,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "roster_records"
	}
	if c.StoreID == "" {
		c.StoreID = uuid.NewString()
	}
	if c.NumShards < 1 {
		c.NumShards = 1
	}
	if c.NumShards > 256 {
		c.NumShards = 256
	}
}
