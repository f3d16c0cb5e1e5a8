package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tvkeep/internal/episodes"
	"tvkeep/internal/quality"
)

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	var seriesID int64
	var seasonNumber int
	var episodeList string
	var qualityName string
	var proper bool

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Decide whether a candidate release is still needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := parseEpisodeList(episodeList)
			if err != nil {
				return err
			}
			q, ok := quality.Parse(qualityName)
			if !ok {
				return fmt.Errorf("unknown quality %q (known: %s)", qualityName, knownQualities())
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			provider := episodes.NewProvider(store, nil, logger)
			needed, err := provider.IsNeeded(cmd.Context(), episodes.ParseResult{
				SeriesID:     seriesID,
				SeasonNumber: seasonNumber,
				Episodes:     numbers,
				Quality:      q,
				Proper:       proper,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "needed: %s\n", yesNo(needed))
			return nil
		},
	}

	cmd.Flags().Int64Var(&seriesID, "series", 0, "Catalog series id")
	cmd.Flags().IntVar(&seasonNumber, "season", 0, "Season number")
	cmd.Flags().StringVar(&episodeList, "episodes", "", "Comma-separated episode numbers covered by the release")
	cmd.Flags().StringVar(&qualityName, "quality", "", "Release quality tier")
	cmd.Flags().BoolVar(&proper, "proper", false, "Release is a proper re-release")
	_ = cmd.MarkFlagRequired("series")
	_ = cmd.MarkFlagRequired("episodes")
	_ = cmd.MarkFlagRequired("quality")
	return cmd
}
