// Package mirror copies the records of an in-memory store to DynamoDB and
// rebuilds stores from it.
//
// Each record becomes one item keyed by store ID and record key. Key
// uniqueness is enforced by DynamoDB with a conditional put, so a key that is
// already mirrored is reported as store.ErrDuplicateKey, the same error the
// in-memory store returns. Score updates use optimistic locking on a version
// attribute.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/roster/internal/shard"
	"github.com/jacentio/roster/store"
)

// API is the subset of the DynamoDB client used by Mirror.
type API interface {
	dynamodb.QueryAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Mirror writes records of one store to a DynamoDB table.
type Mirror struct {
	client API
	config Config
	logger *slog.Logger
}

// New creates a new Mirror instance.
func New(client API, config Config, logger *slog.Logger) *Mirror {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		client: client,
		config: config,
		logger: logger,
	}
}

// StoreID returns the ID under which records are mirrored.
func (m *Mirror) StoreID() string { return m.config.StoreID }

// Put mirrors a single record. It fails with store.ErrDuplicateKey when the
// key is already mirrored for this store.
func (m *Mirror) Put(ctx context.Context, r *store.Record) error {
	nowISO := time.Now().UTC().Format(time.RFC3339)

	av, err := attributevalue.MarshalMap(m.newItem(r, nowISO))
	if err != nil {
		return fmt.Errorf("marshal record %q: %w", r.Key(), err)
	}

	_, err = m.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(m.config.Table),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(pk)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("%w: %q", store.ErrDuplicateKey, r.Key())
		}
		return err
	}
	return nil
}

// PutAll mirrors every record of s in position order and returns the number
// written. Records already mirrored are logged and skipped.
func (m *Mirror) PutAll(ctx context.Context, s *store.Store) (int, error) {
	written := 0
	for _, r := range s.All() {
		err := m.Put(ctx, r)
		if errors.Is(err, store.ErrDuplicateKey) {
			m.logger.Warn("record already mirrored",
				"storeID", m.config.StoreID,
				"key", r.Key(),
			)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("put %q: %w", r.Key(), err)
		}
		written++
	}

	m.logger.Info("store mirrored",
		"storeID", m.config.StoreID,
		"records", s.Len(),
		"written", written,
	)
	return written, nil
}

// Get returns the mirrored record for key and its version.
func (m *Mirror) Get(ctx context.Context, key string) (*store.Record, int64, error) {
	result, err := m.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(m.config.Table),
		Key:       m.primaryKey(key),
	})
	if err != nil {
		return nil, 0, err
	}
	if result.Item == nil {
		return nil, 0, fmt.Errorf("%w: key %q", store.ErrNotFound, key)
	}

	var it Item
	if err := attributevalue.UnmarshalMap(result.Item, &it); err != nil {
		return nil, 0, fmt.Errorf("unmarshal %q: %w", key, err)
	}
	r, err := it.Record()
	if err != nil {
		return nil, 0, err
	}
	return r, it.Version, nil
}

// UpdateScores overwrites the mirrored scores of r with optimistic locking.
// It returns ErrConcurrentModification when the mirrored version is not
// expectedVersion, or the record is not mirrored at all.
func (m *Mirror) UpdateScores(ctx context.Context, r *store.Record, expectedVersion int64) error {
	now := time.Now().UTC().Format(time.RFC3339)

	scores, err := attributevalue.Marshal(r.Scores())
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	_, err = m.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(m.config.Table),
		Key:                 m.primaryKey(r.Key()),
		UpdateExpression:    aws.String("SET #scores = :scores, #updated_at = :updated_at, #version = #version + :one"),
		ConditionExpression: aws.String("attribute_exists(pk) AND #version = :expected_version"),
		ExpressionAttributeNames: map[string]string{
			"#scores":     "scores",
			"#updated_at": "updated_at",
			"#version":    "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":scores":           scores,
			":updated_at":       &types.AttributeValueMemberS{Value: now},
			":one":              &types.AttributeValueMemberN{Value: "1"},
			":expected_version": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return err
	}
	return nil
}

// Load rebuilds a store from every record mirrored under this store ID.
// Records are appended in ascending key order.
func (m *Mirror) Load(ctx context.Context, cfg store.Config) (*store.Store, error) {
	items, err := m.queryAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b Item) int { return strings.Compare(a.Key, b.Key) })

	s := store.New(cfg)
	for _, it := range items {
		r, err := it.Record()
		if err != nil {
			return nil, err
		}
		if err := s.Append(r); err != nil {
			return nil, fmt.Errorf("append %q: %w", it.Key, err)
		}
	}

	m.logger.Info("store loaded",
		"storeID", m.config.StoreID,
		"records", s.Len(),
	)
	return s, nil
}

// queryAll returns the record items of every shard.
func (m *Mirror) queryAll(ctx context.Context) ([]Item, error) {
	numShards := m.config.NumShards

	// Fast path for single shard (default)
	if numShards == 1 {
		return m.queryShard(ctx, 0)
	}

	// Multi-shard fan-out
	var mu sync.Mutex
	var all []Item
	var wg sync.WaitGroup
	errs := make(chan error, numShards)

	for shardNum := 0; shardNum < numShards; shardNum++ {
		wg.Add(1)
		go func(shardNum int) {
			defer wg.Done()

			items, err := m.queryShard(ctx, shardNum)
			if err != nil {
				errs <- fmt.Errorf("shard %02x: %w", shardNum, err)
				return
			}

			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
		}(shardNum)
	}

	go func() {
		wg.Wait()
		close(errs)
	}()

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return all, nil
}

func (m *Mirror) queryShard(ctx context.Context, shardNum int) ([]Item, error) {
	var items []Item

	paginator := dynamodb.NewQueryPaginator(m.client, &dynamodb.QueryInput{
		TableName:              aws.String(m.config.Table),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :record)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: shard.ShardPK(m.config.StoreID, shardNum)},
			":record": &types.AttributeValueMemberS{Value: shard.RecordSK("")},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var pageItems []Item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("unmarshal page: %w", err)
		}
		items = append(items, pageItems...)
	}

	return items, nil
}
