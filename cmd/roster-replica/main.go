// Command roster-replica is an AWS Lambda function that keeps an in-memory
// replica of a mirrored store up to date from the table's DynamoDB stream.
//
// Environment:
//
//	ROSTER_STORE_ID  only replicate this store (default: every store)
//	ROSTER_TABLE     when set together with ROSTER_STORE_ID, load the store
//	                 from this table on cold start
//	ROSTER_SHARDS    shard count used when the store was pushed (default 1)
//	LOG_LEVEL        debug, info, warn or error (default info)
package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/roster/mirror"
	"github.com/jacentio/roster/store"
	"github.com/jacentio/roster/stream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	storeID := os.Getenv("ROSTER_STORE_ID")
	replica, err := initialReplica(context.Background(), storeID, logger)
	if err != nil {
		logger.Error("failed to load replica", "error", err)
		os.Exit(1)
	}

	h := stream.NewHandler(replica, storeID, logger)
	lambda.Start(h.HandleRecordStream)
}

func initialReplica(ctx context.Context, storeID string, logger *slog.Logger) (*store.Store, error) {
	table := os.Getenv("ROSTER_TABLE")
	if table == "" || storeID == "" {
		return store.New(store.DefaultConfig()), nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	shards, _ := strconv.Atoi(os.Getenv("ROSTER_SHARDS"))

	m := mirror.New(dynamodb.NewFromConfig(cfg), mirror.Config{
		Table:     table,
		StoreID:   storeID,
		NumShards: shards,
	}, logger)
	return m.Load(ctx, store.DefaultConfig())
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}
