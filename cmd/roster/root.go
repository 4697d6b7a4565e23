package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"github.com/jacentio/roster/mirror"
	"github.com/jacentio/roster/store"
)

// app holds the flag values and collaborators shared by every subcommand.
type app struct {
	file     string
	capacity int
	verbose  bool
	region   string

	logger *slog.Logger

	// newClient builds the DynamoDB client used by push and pull.
	newClient func(ctx context.Context, region string) (mirror.API, error)
}

func newApp() *app {
	return &app{newClient: defaultClient}
}

func defaultClient(ctx context.Context, region string) (mirror.API, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "roster",
		Short: "Manage academic record files",
		Long: `roster loads a YAML file of academic records into an in-memory store,
validates every record, and lists, sorts and searches it.

Records can be mirrored to a DynamoDB table with push and read back with pull.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.file, "file", "f", "roster.yaml", "Record file")
	root.PersistentFlags().IntVar(&a.capacity, "capacity", store.DefaultConfig().InitialCapacity, "Initial store capacity")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&a.region, "region", "", "AWS region (default: from environment)")

	root.AddCommand(
		newListCmd(a),
		newSortCmd(a),
		newNamesCmd(a),
		newSetScoreCmd(a),
		newPushCmd(a),
		newPullCmd(a),
	)
	return root
}

func (a *app) storeConfig() store.Config {
	return store.Config{InitialCapacity: a.capacity}
}

// load reads the record file into a new store. Invalid records are reported
// on the command's error stream and skipped.
func (a *app) load(cmd *cobra.Command) (*store.Store, error) {
	entries, err := readEntries(a.file)
	if err != nil {
		return nil, err
	}

	s := store.New(a.storeConfig())
	for i, e := range entries {
		if _, err := e.add(s); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping record %d (%s): %v\n", i+1, e.Key, err)
			a.logger.Debug("record rejected",
				"index", i,
				"key", e.Key,
				"kind", store.KindOf(err).String(),
			)
		}
	}

	a.logger.Debug("store loaded",
		"file", a.file,
		"records", s.Len(),
		"capacity", s.Cap(),
	)
	return s, nil
}
