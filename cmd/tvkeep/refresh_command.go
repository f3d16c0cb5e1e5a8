package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tvkeep/internal/catalog"
	"tvkeep/internal/episodes"
	"tvkeep/internal/services"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "refresh [series-id]",
		Short: "Fetch TVDB metadata and merge it into the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("provide a series id or --all, not both")
			}

			return ctx.withRefreshLock(func() error {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				logger, err := ctx.newLogger()
				if err != nil {
					return err
				}
				source, err := ctx.newSource()
				if err != nil {
					return err
				}
				provider := episodes.NewProvider(store, source, logger)

				var targets []*catalog.Series
				if all {
					list, err := store.ListSeries(cmd.Context())
					if err != nil {
						return err
					}
					for _, series := range list {
						if series.Monitored {
							targets = append(targets, series)
						}
					}
					if len(targets) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No monitored series to refresh")
						return nil
					}
				} else {
					seriesID, err := strconv.ParseInt(args[0], 10, 64)
					if err != nil {
						return fmt.Errorf("invalid series id %q", args[0])
					}
					series, err := store.SeriesByID(cmd.Context(), seriesID)
					if err != nil {
						return err
					}
					if series == nil {
						return fmt.Errorf("series %d not found", seriesID)
					}
					targets = append(targets, series)
				}

				out := cmd.OutOrStdout()
				var firstErr error
				for _, series := range targets {
					runCtx := services.WithRequestID(cmd.Context(), uuid.NewString())
					runCtx = services.WithSeriesID(runCtx, series.ID)

					result, err := provider.RefreshEpisodeInfo(runCtx, series.ID)
					if err != nil {
						fmt.Fprintf(out, "Refresh of %q failed: %v\n", series.Title, err)
						if firstErr == nil {
							firstErr = err
						}
						continue
					}
					fmt.Fprintf(out, "Refreshed %q: %d created, %d updated, %d failed\n",
						series.Title, result.Created, result.Updated, result.Failed)
				}
				return firstErr
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Refresh every monitored series")
	return cmd
}
