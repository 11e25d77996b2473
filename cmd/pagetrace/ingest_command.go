package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagetrace/internal/config"
	"pagetrace/internal/ingest"
	"pagetrace/internal/report"
	"pagetrace/internal/store"

	"log/slog"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var opts ingest.Options

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Walk the input directory and extract per-page observations",
		Long: `Ingest parses page identities from filenames, hashes the source PDFs,
computes preview features, runs slate and marker OCR, applies seeded
assignments and writes everything to the database. Reingesting is
idempotent; a page-ID window narrows the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, logger *slog.Logger, st *store.Store) error {
				pipeline, err := ingest.New(cfg, st, logger)
				if err != nil {
					return err
				}
				run, err := pipeline.Run(cmd.Context(), opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Run(run))
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&opts.StartID, "start", 0, "Lowest page ID to ingest (0 = unbounded)")
	cmd.Flags().Int64Var(&opts.EndID, "end", 0, "Highest page ID to ingest (0 = unbounded)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum number of pages to ingest (0 = all)")

	return cmd
}
