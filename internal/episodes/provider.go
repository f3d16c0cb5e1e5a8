package episodes

import (
	"context"
	"log/slog"

	"tvkeep/internal/catalog"
	"tvkeep/internal/logging"
	"tvkeep/internal/quality"
	"tvkeep/internal/services"
	"tvkeep/internal/tvdb"
)

// ParseResult describes a candidate release covering one or more episodes of
// a single season. It is ephemeral and never persisted.
type ParseResult struct {
	SeriesID     int64
	SeasonNumber int
	Episodes     []int
	Quality      quality.Quality
	Proper       bool
}

// RefreshResult reports the aggregate outcome of one metadata refresh.
type RefreshResult struct {
	Created int
	Updated int
	Failed  int
}

// Provider implements episode need evaluation and metadata reconciliation on
// top of the catalog store and a TVDB source.
type Provider struct {
	store  *catalog.Store
	source tvdb.Source
	logger *slog.Logger
}

// NewProvider wires a provider to its collaborators. A nil logger disables
// logging.
func NewProvider(store *catalog.Store, source tvdb.Source, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{
		store:  store,
		source: source,
		logger: logging.NewComponentLogger(logger, "episodes"),
	}
}

// Episode returns the stored episode with the given identity key, or nil when
// absent.
func (p *Provider) Episode(ctx context.Context, id int64) (*catalog.Episode, error) {
	return p.store.EpisodeByID(ctx, id)
}

// EpisodesBySeries returns every stored episode for a series.
func (p *Provider) EpisodesBySeries(ctx context.Context, seriesID int64) ([]*catalog.Episode, error) {
	return p.store.EpisodesBySeries(ctx, seriesID)
}

// EpisodesBySeason returns the stored episodes for one season of a series.
func (p *Provider) EpisodesBySeason(ctx context.Context, seriesID int64, seasonNumber int) ([]*catalog.Episode, error) {
	return p.store.EpisodesBySeason(ctx, seriesID, seasonNumber)
}

// UpdateEpisode persists changes to a stored episode.
func (p *Provider) UpdateEpisode(ctx context.Context, episode *catalog.Episode) error {
	return p.store.UpdateEpisode(ctx, episode)
}

// DeleteEpisode removes a stored episode.
func (p *Provider) DeleteEpisode(ctx context.Context, id int64) (bool, error) {
	return p.store.DeleteEpisode(ctx, id)
}

func (p *Provider) trackedSeries(ctx context.Context, operation string, seriesID int64) (*catalog.Series, error) {
	series, err := p.store.SeriesByID(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, services.Wrap(services.ErrValidation, "episodes", operation, "series not tracked", nil)
	}
	return series, nil
}
