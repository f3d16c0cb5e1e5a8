package episodes

import (
	"context"
	"time"

	"tvkeep/internal/catalog"
	"tvkeep/internal/logging"
	"tvkeep/internal/services"
)

// IsNeeded reports whether any episode covered by the candidate still needs
// the release. Episodes the candidate references that are not yet known
// locally are persisted as placeholders so a later refresh can backfill them.
//
// The verdict short-circuits: the first covered episode that is not already
// satisfied makes the whole candidate needed.
func (p *Provider) IsNeeded(ctx context.Context, candidate ParseResult) (bool, error) {
	series, err := p.trackedSeries(ctx, "evaluate", candidate.SeriesID)
	if err != nil {
		return false, err
	}
	profile, err := p.store.ProfileByID(ctx, series.ProfileID)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, services.Wrap(services.ErrValidation, "episodes", "evaluate", "series has no quality profile", nil)
	}

	for _, number := range candidate.Episodes {
		episode, err := p.store.EpisodeByNumber(ctx, candidate.SeriesID, candidate.SeasonNumber, number)
		if err != nil {
			return false, err
		}
		if episode == nil {
			placeholder := &catalog.Episode{
				SeriesID:      candidate.SeriesID,
				SeasonNumber:  candidate.SeasonNumber,
				EpisodeNumber: number,
				Language:      "en",
				AirDate:       time.Now().UTC(),
			}
			if err := p.store.AddEpisode(ctx, placeholder); err != nil {
				return false, err
			}
			p.logDecision(ctx, placeholder, "needed", "episode unknown, placeholder created")
			return true, nil
		}
		if !episode.HasFile() {
			p.logDecision(ctx, episode, "needed", "no file held")
			return true, nil
		}

		file := episode.File
		switch {
		case file.Quality > candidate.Quality:
			p.logDecision(ctx, episode, "satisfied", "held quality higher")
		case file.Quality == candidate.Quality && file.Proper == candidate.Proper:
			p.logDecision(ctx, episode, "satisfied", "held quality equal")
		case file.Quality < candidate.Quality && profile.Cutoff <= file.Quality:
			p.logDecision(ctx, episode, "satisfied", "cutoff reached")
		default:
			p.logDecision(ctx, episode, "needed", "upgrade wanted")
			return true, nil
		}
	}
	return false, nil
}

func (p *Provider) logDecision(ctx context.Context, episode *catalog.Episode, result, reason string) {
	attrs := append(logging.DecisionAttrs("release_need", result, reason),
		logging.Int64(logging.FieldSeriesID, episode.SeriesID),
		logging.String(logging.FieldEpisodeKey, episode.Key()),
	)
	attrs = append(attrs, logging.ContextFields(ctx)...)
	p.logger.Info("release need decision", logging.Args(attrs...)...)
}
