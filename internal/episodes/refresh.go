package episodes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"tvkeep/internal/catalog"
	"tvkeep/internal/logging"
	"tvkeep/internal/services"
	"tvkeep/internal/tvdb"
)

// airDateFloor is the earliest air date the store accepts. Fetched dates
// before it are clamped, a compatibility measure rather than a correctness
// one.
var airDateFloor = time.Date(1753, time.January, 1, 0, 0, 0, 0, time.UTC)

const airDateLayout = "2006-01-02"

// RefreshEpisodeInfo fetches the full episode listing for a tracked series
// and merges it into the store. Existing episodes keep their identity keys
// and are overwritten in place; unseen episodes are inserted. A malformed
// fetched record is counted as a failure and skipped without aborting the
// refresh; store and source failures propagate.
func (p *Provider) RefreshEpisodeInfo(ctx context.Context, seriesID int64) (RefreshResult, error) {
	var result RefreshResult

	series, err := p.trackedSeries(ctx, "refresh", seriesID)
	if err != nil {
		return result, err
	}

	detail, err := p.source.Series(ctx, series.TVDBID, true)
	if err != nil {
		return result, services.Wrap(services.ErrExternalService, "episodes", "refresh", "fetch series detail", err)
	}

	type seasonKey struct {
		seasonID     int64
		seasonNumber int
	}
	seen := make(map[seasonKey]struct{})
	for _, record := range detail.Episodes {
		key := seasonKey{record.SeasonID, record.SeasonNumber}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if err := p.store.EnsureSeason(ctx, series.ID, record.SeasonID, record.SeasonNumber); err != nil {
			return result, err
		}
	}

	existing, err := p.store.EpisodesBySeries(ctx, series.ID)
	if err != nil {
		return result, err
	}
	type episodeKey struct {
		seasonNumber  int
		episodeNumber int
	}
	stored := make(map[episodeKey]*catalog.Episode, len(existing))
	for _, episode := range existing {
		stored[episodeKey{episode.SeasonNumber, episode.EpisodeNumber}] = episode
	}

	var inserts, updates []*catalog.Episode
	for _, record := range detail.Episodes {
		episode, err := buildEpisode(series.ID, record)
		if err != nil {
			result.Failed++
			p.logger.Warn("skipping fetched episode",
				logging.Int64(logging.FieldSeriesID, series.ID),
				logging.Int64("tvdb_episode_id", record.ID),
				logging.Error(err))
			continue
		}
		if prior, ok := stored[episodeKey{episode.SeasonNumber, episode.EpisodeNumber}]; ok {
			episode.ID = prior.ID
			episode.CreatedAt = prior.CreatedAt
			updates = append(updates, episode)
		} else {
			inserts = append(inserts, episode)
		}
	}

	if err := p.store.AddEpisodes(ctx, inserts); err != nil {
		return result, err
	}
	if err := p.store.UpdateEpisodes(ctx, updates); err != nil {
		return result, err
	}
	result.Created = len(inserts)
	result.Updated = len(updates)

	attrs := append(logging.ContextFields(ctx),
		logging.Int64(logging.FieldSeriesID, series.ID),
		logging.Int("created", result.Created),
		logging.Int("updated", result.Updated),
		logging.Int("failed", result.Failed))
	p.logger.Info("refresh complete", logging.Args(attrs...)...)
	return result, nil
}

func buildEpisode(seriesID int64, record tvdb.Episode) (*catalog.Episode, error) {
	if record.SeasonNumber < 0 || record.EpisodeNumber <= 0 {
		return nil, fmt.Errorf("invalid episode numbering s%02de%02d", record.SeasonNumber, record.EpisodeNumber)
	}

	var airDate time.Time
	if raw := strings.TrimSpace(record.FirstAired); raw != "" {
		parsed, err := time.Parse(airDateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("parse air date %q: %w", raw, err)
		}
		airDate = parsed.UTC()
		if airDate.Before(airDateFloor) {
			airDate = airDateFloor
		}
	}

	return &catalog.Episode{
		TVDBID:        record.ID,
		SeriesID:      seriesID,
		SeasonNumber:  record.SeasonNumber,
		EpisodeNumber: record.EpisodeNumber,
		Title:         record.EpisodeName,
		Overview:      record.Overview,
		Language:      normalizeLanguage(record.Language.Abbreviation),
		AirDate:       airDate,
	}, nil
}

// normalizeLanguage reduces a fetched language abbreviation to a bare ISO
// base code, defaulting to "en" when the code is missing or unrecognized.
func normalizeLanguage(abbreviation string) string {
	abbreviation = strings.TrimSpace(abbreviation)
	if abbreviation == "" {
		return "en"
	}
	tag, err := language.Parse(abbreviation)
	if err != nil {
		return "en"
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "en"
	}
	return base.String()
}
