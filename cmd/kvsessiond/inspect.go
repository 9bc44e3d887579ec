package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zdnscloud/kvsession"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <database> [collection]",
	Short: "Print the schema version of a database, and the items of a collection",
	Long: `Print the schema version of a database. A database that doesn't exist is
created at version 1. With a collection, also print its items in key order.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store kvsession.Store) error {
			version, err := store.CurrentVersion(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %d\n", args[0], version)

			if len(args) == 1 {
				return nil
			}
			items, err := store.ReadAll(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			for _, item := range items {
				fmt.Fprintln(cmd.OutOrStdout(), string(item))
			}
			return nil
		})
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop <database>",
	Short: "Delete a database and all its collections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store kvsession.Store) error {
			if err := store.DeleteDatabase(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted\n", args[0])
			return nil
		})
	},
}
