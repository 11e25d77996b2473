package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"pagetrace/internal/config"
	"pagetrace/internal/report"
	"pagetrace/internal/segment"
	"pagetrace/internal/store"
)

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "segment",
		Short: "Rebuild room segments from the ordered page stream",
		Long: `Segment folds the ordered page stream into contiguous (location, shoot,
marker) runs. The segment relation is always rebuilt from scratch, so it
stays consistent with the latest observations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, logger *slog.Logger, st *store.Store) error {
				stream, err := st.OrderedStream(cmd.Context())
				if err != nil {
					return err
				}
				if len(stream) == 0 {
					return fmt.Errorf("no pages ingested yet")
				}

				pages := make([]segment.PageObs, len(stream))
				for i, r := range stream {
					pages[i] = segment.PageObs{
						PageID:    r.PageID,
						FileID:    r.FileID,
						Location:  r.Location,
						Shoot:     r.Shoot,
						IsSlate:   r.IsSlate,
						HasMarker: r.HasMarker,
						Marker:    r.Marker,
					}
				}

				segments := segment.Build(pages, segment.Options{
					MinRun:       cfg.Segments.MinRun,
					KeepUnmarked: cfg.Segments.KeepUnmarked,
				})
				if err := st.ReplaceSegments(cmd.Context(), segments); err != nil {
					return err
				}
				logger.Info("segments rebuilt", "pages", len(pages), "segments", len(segments))

				fmt.Fprintln(cmd.OutOrStdout(), report.Segments(segments))
				return nil
			})
		},
	}
}
