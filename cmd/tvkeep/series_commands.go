package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvkeep/internal/catalog"
	"tvkeep/internal/quality"
)

func newSeriesCommand(ctx *commandContext) *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Tracked series utilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeriesList(ctx, cmd)
		},
	}

	seriesCmd.AddCommand(newSeriesAddCommand(ctx))
	return seriesCmd
}

func runSeriesList(ctx *commandContext, cmd *cobra.Command) error {
	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListSeries(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No series tracked")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, series := range list {
		stats, err := store.StatsBySeries(cmd.Context(), series.ID)
		if err != nil {
			return err
		}
		cutoff := "-"
		if profile, err := store.ProfileByID(cmd.Context(), series.ProfileID); err != nil {
			return err
		} else if profile != nil {
			cutoff = profile.Cutoff.String()
		}
		rows = append(rows, []string{
			strconv.FormatInt(series.ID, 10),
			series.Title,
			strconv.FormatInt(series.TVDBID, 10),
			cutoff,
			fmt.Sprintf("%d/%d", stats.WithFile, stats.Episodes),
			yesNo(series.Monitored),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Title", "TVDB", "Cutoff", "Held", "Monitored"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	))
	return nil
}

func newSeriesAddCommand(ctx *commandContext) *cobra.Command {
	var tvdbID int64
	var title string
	var cutoffName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new series",
		RunE: func(cmd *cobra.Command, args []string) error {
			cutoff, ok := quality.Parse(cutoffName)
			if !ok {
				return fmt.Errorf("unknown quality %q (known: %s)", cutoffName, knownQualities())
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			existing, err := store.SeriesByTVDBID(cmd.Context(), tvdbID)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("series with TVDB id %d already tracked as %q", tvdbID, existing.Title)
			}

			profile := &catalog.Profile{Name: title, Cutoff: cutoff}
			if err := store.AddProfile(cmd.Context(), profile); err != nil {
				return err
			}
			series := &catalog.Series{
				TVDBID:    tvdbID,
				Title:     title,
				ProfileID: profile.ID,
				Monitored: true,
			}
			if err := store.AddSeries(cmd.Context(), series); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tracking %q (series %d, cutoff %s)\n", title, series.ID, cutoff)
			fmt.Fprintf(cmd.OutOrStdout(), "Run `tvkeep refresh %d` to pull episode metadata.\n", series.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&tvdbID, "tvdb-id", 0, "TVDB series identifier")
	cmd.Flags().StringVar(&title, "title", "", "Series title")
	cmd.Flags().StringVar(&cutoffName, "cutoff", "", "Quality tier beyond which upgrades stop")
	_ = cmd.MarkFlagRequired("tvdb-id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("cutoff")
	return cmd
}
