package mirror

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/roster/internal/shard"
	"github.com/jacentio/roster/store"
)

// Item is the DynamoDB representation of a mirrored record.
type Item struct {
	PK        string `dynamodbav:"pk"`
	SK        string `dynamodbav:"sk"`
	Key       string `dynamodbav:"key"`
	Name      string `dynamodbav:"name"`
	Branch    string `dynamodbav:"branch"`
	Level     int    `dynamodbav:"level"`
	Scores    []int  `dynamodbav:"scores"`
	Version   int64  `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// Record rebuilds the record through the usual validation.
func (it Item) Record() (*store.Record, error) {
	r, err := store.NewRecordN(it.Key, it.Name, it.Branch, store.Level(it.Level), len(it.Scores), it.Scores)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptItem, it.SK, err)
	}
	return r, nil
}

// newItem builds the item for r at version 1.
func (m *Mirror) newItem(r *store.Record, nowISO string) Item {
	return Item{
		PK:        shard.RecordPK(m.config.StoreID, r.Key(), m.config.NumShards),
		SK:        shard.RecordSK(r.Key()),
		Key:       r.Key(),
		Name:      r.Name(),
		Branch:    r.Branch(),
		Level:     int(r.Level()),
		Scores:    r.Scores(),
		Version:   1,
		CreatedAt: nowISO,
		UpdatedAt: nowISO,
	}
}

// primaryKey returns the DynamoDB key of the item mirroring key.
func (m *Mirror) primaryKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: shard.RecordPK(m.config.StoreID, key, m.config.NumShards)},
		"sk": &types.AttributeValueMemberS{Value: shard.RecordSK(key)},
	}
}
