package testsupport

import (
	"context"
	"testing"

	"tvkeep/internal/catalog"
	"tvkeep/internal/config"
	"tvkeep/internal/quality"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustAddSeries seeds a tracked series with a profile using the provided cutoff.
func MustAddSeries(t testing.TB, store *catalog.Store, tvdbID int64, title string, cutoff quality.Quality) *catalog.Series {
	t.Helper()

	ctx := context.Background()
	profile := &catalog.Profile{Name: title + " profile", Cutoff: cutoff}
	if err := store.AddProfile(ctx, profile); err != nil {
		t.Fatalf("store.AddProfile: %v", err)
	}
	series := &catalog.Series{TVDBID: tvdbID, Title: title, ProfileID: profile.ID, Monitored: true}
	if err := store.AddSeries(ctx, series); err != nil {
		t.Fatalf("store.AddSeries: %v", err)
	}
	return series
}

// MustAddEpisode seeds a stored episode for the given natural key.
func MustAddEpisode(t testing.TB, store *catalog.Store, seriesID int64, seasonNumber, episodeNumber int) *catalog.Episode {
	t.Helper()

	episode := &catalog.Episode{
		SeriesID:      seriesID,
		SeasonNumber:  seasonNumber,
		EpisodeNumber: episodeNumber,
		Language:      "en",
	}
	if err := store.AddEpisode(context.Background(), episode); err != nil {
		t.Fatalf("store.AddEpisode: %v", err)
	}
	return episode
}

// MustAttachFile records a held media artifact for an episode.
func MustAttachFile(t testing.TB, store *catalog.Store, episodeID int64, q quality.Quality, proper bool) {
	t.Helper()

	if err := store.AttachFile(context.Background(), episodeID, "", q, proper); err != nil {
		t.Fatalf("store.AttachFile: %v", err)
	}
}
