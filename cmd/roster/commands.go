package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacentio/roster/store"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List records in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}
			printSummaries(cmd.OutOrStdout(), s.Summaries())
			return nil
		},
	}
}

func newSortCmd(a *app) *cobra.Command {
	sortCmd := &cobra.Command{
		Use:   "sort",
		Short: "List records in sorted order",
	}

	sortCmd.AddCommand(&cobra.Command{
		Use:   "key",
		Short: "Sort records by key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}
			s.SortByKey()
			printSummaries(cmd.OutOrStdout(), s.Summaries())
			return nil
		},
	})

	var index int
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Sort records by one score component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}
			if err := s.SortByScore(index); err != nil {
				return err
			}
			printSummaries(cmd.OutOrStdout(), s.Summaries())
			return nil
		},
	}
	scoreCmd.Flags().IntVarP(&index, "index", "i", 0, "Score component to sort by")
	sortCmd.AddCommand(scoreCmd)

	return sortCmd
}

func newNamesCmd(a *app) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "names",
		Short: "List records in name order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}
			idx := s.BuildNameIndex()
			if prefix == "" {
				printSummaries(cmd.OutOrStdout(), idx.Summaries())
				return nil
			}
			var rows []store.Summary
			for r := range idx.WithPrefix(prefix) {
				rows = append(rows, r.Summary())
			}
			printSummaries(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only names starting with this prefix")
	return cmd
}

func newSetScoreCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "set-score KEY INDEX VALUE",
		Short: "Change one score of a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			value, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[2], err)
			}

			s, err := a.load(cmd)
			if err != nil {
				return err
			}
			if err := s.SetScore(args[0], idx, value); err != nil {
				return err
			}
			if save {
				if err := writeEntries(a.file, s); err != nil {
					return err
				}
			}
			printSummaries(cmd.OutOrStdout(), s.Summaries())
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Write the updated records back to the file")
	return cmd
}
