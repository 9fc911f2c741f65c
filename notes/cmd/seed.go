package main

import (
	"context"
	"time"

	"notes/notes/seed"
	"notes/notes/sources/psql"
	"notes/notes/sources/psql/dao"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample notes if none exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		db, err := psql.NewDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		_, err = seed.Run(ctx, dao.NewNoteDAO(db.DB), cmd.OutOrStdout(), time.Now().UTC())
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
