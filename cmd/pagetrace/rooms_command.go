package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"pagetrace/internal/config"
	"pagetrace/internal/imaging"
	"pagetrace/internal/report"
	"pagetrace/internal/roomgraph"
	"pagetrace/internal/similarity"
	"pagetrace/internal/store"
)

func newRoomsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "Cluster pages by visual similarity",
		Long: `Rooms extracts keypoint features from every stored preview, scores all
page pairs by verified-inlier count and reports the connected components
of the similarity graph as candidate rooms. This signal is independent
of the marker-driven segments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, logger *slog.Logger, st *store.Store) error {
				previews, err := st.Previews(cmd.Context())
				if err != nil {
					return err
				}
				if len(previews) == 0 {
					return fmt.Errorf("no previews stored yet")
				}

				scorer := similarity.NewScorer()
				defer scorer.Close()

				features := make(map[int64]*similarity.PageFeatures, len(previews))
				defer func() {
					for _, f := range features {
						f.Close()
					}
				}()

				pageIDs := make([]int64, 0, len(previews))
				for id, path := range previews {
					gray := gocv.IMRead(path, gocv.IMReadGrayScale)
					if gray.Empty() {
						img, err := imaging.LoadPreview(path)
						if err != nil {
							logger.Warn("unreadable preview", "page_id", id, "path", path, "error", err)
							continue
						}
						gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
						img.Close()
					}
					f := scorer.Extract(id, gray)
					gray.Close()
					features[id] = &f
					pageIDs = append(pageIDs, id)
				}
				sort.Slice(pageIDs, func(i, j int) bool { return pageIDs[i] < pageIDs[j] })
				logger.Info("features extracted", "pages", len(pageIDs))

				result := roomgraph.Build(pageIDs, func(a, b int64) int {
					return scorer.Score(features[a], features[b])
				}, roomgraph.Options{
					InlierThreshold: cfg.Similarity.InlierThreshold,
					MaxPairs:        cfg.Similarity.MaxPairs,
				})
				logger.Info("similarity graph built",
					"pairs", result.Pairs, "edges", result.Edges, "clusters", len(result.Clusters))

				fmt.Fprintln(cmd.OutOrStdout(), report.Clusters(result))
				return nil
			})
		},
	}
}
