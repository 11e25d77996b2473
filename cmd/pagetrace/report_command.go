package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"pagetrace/internal/config"
	"pagetrace/internal/report"
	"pagetrace/internal/store"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var topMarkers int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the database: assignments, markers, segments, last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, logger *slog.Logger, st *store.Store) error {
				out := cmd.OutOrStdout()
				cctx := cmd.Context()

				run, err := st.LastRun(cctx)
				switch {
				case errors.Is(err, store.ErrNoRuns):
					fmt.Fprintln(out, "no ingest runs recorded")
				case err != nil:
					return err
				default:
					fmt.Fprintln(out, report.Run(run))
				}

				groups, err := st.AssignmentSummary(cctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, report.Assignments(groups))

				markers, err := st.TopMarkers(cctx, topMarkers)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, report.Markers(markers))

				segments, err := st.Segments(cctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, report.Segments(segments))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&topMarkers, "top-markers", 20, "How many markers to list")

	return cmd
}
