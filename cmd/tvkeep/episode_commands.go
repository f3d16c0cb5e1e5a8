package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvkeep/internal/catalog"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var seasonNumber int

	cmd := &cobra.Command{
		Use:   "episodes <series-id>",
		Short: "List stored episodes for a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seriesID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid series id %q", args[0])
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			series, err := store.SeriesByID(cmd.Context(), seriesID)
			if err != nil {
				return err
			}
			if series == nil {
				return fmt.Errorf("series %d not found", seriesID)
			}

			var list []*catalog.Episode
			if cmd.Flags().Changed("season") {
				list, err = store.EpisodesBySeason(cmd.Context(), seriesID, seasonNumber)
			} else {
				list, err = store.EpisodesBySeries(cmd.Context(), seriesID)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headline(out, series.Title))
			if len(list) == 0 {
				fmt.Fprintln(out, "No episodes stored")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, episode := range list {
				held := "-"
				proper := ""
				if episode.HasFile() {
					held = episode.File.Quality.String()
					proper = yesNo(episode.File.Proper)
				}
				rows = append(rows, []string{
					episode.Key(),
					episode.Title,
					formatAirDate(episode.AirDate),
					episode.Language,
					held,
					proper,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Episode", "Title", "Aired", "Lang", "Held", "Proper"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&seasonNumber, "season", 0, "Limit the listing to one season")
	return cmd
}
