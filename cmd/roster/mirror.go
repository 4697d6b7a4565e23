package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacentio/roster/mirror"
)

type mirrorFlags struct {
	table     string
	storeID   string
	numShards int
}

func (f *mirrorFlags) register(cmd *cobra.Command) {
	def := mirror.DefaultConfig()
	cmd.Flags().StringVar(&f.table, "table", def.Table, "DynamoDB table name")
	cmd.Flags().StringVar(&f.storeID, "store-id", "", "Store ID under which records are mirrored")
	cmd.Flags().IntVar(&f.numShards, "shards", def.NumShards, "Number of partition key shards")
}

func (f *mirrorFlags) config() mirror.Config {
	return mirror.Config{
		Table:     f.table,
		StoreID:   f.storeID,
		NumShards: f.numShards,
	}
}

func (a *app) mirror(cmd *cobra.Command, f *mirrorFlags) (*mirror.Mirror, error) {
	client, err := a.newClient(cmd.Context(), a.region)
	if err != nil {
		return nil, err
	}
	return mirror.New(client, f.config(), a.logger), nil
}

func newPushCmd(a *app) *cobra.Command {
	var f mirrorFlags
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Mirror the record file to DynamoDB",
		Long: `push writes every valid record of the file to DynamoDB under a store ID.
Records already mirrored under that ID are left untouched. Without --store-id a
new ID is generated and printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}
			m, err := a.mirror(cmd, &f)
			if err != nil {
				return err
			}
			written, err := m.PutAll(cmd.Context(), s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d of %d records to store %s\n", written, s.Len(), m.StoreID())
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newPullCmd(a *app) *cobra.Command {
	var (
		f   mirrorFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Load a mirrored store from DynamoDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.storeID == "" {
				return fmt.Errorf("--store-id is required")
			}
			m, err := a.mirror(cmd, &f)
			if err != nil {
				return err
			}
			s, err := m.Load(cmd.Context(), a.storeConfig())
			if err != nil {
				return err
			}
			if out != "" {
				if err := writeEntries(out, s); err != nil {
					return err
				}
			}
			printSummaries(cmd.OutOrStdout(), s.Summaries())
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the pulled records to this file")
	return cmd
}
