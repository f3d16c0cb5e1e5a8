package episodes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tvkeep/internal/episodes"
	"tvkeep/internal/quality"
	"tvkeep/internal/services"
	"tvkeep/internal/tvdb"
)

func TestRefreshEpisodeInfoCreatesThenUpdates(t *testing.T) {
	source := &stubSource{detail: &tvdb.SeriesDetail{
		SeriesName: "Refresh Show",
		Episodes: []tvdb.Episode{
			{
				ID: 9001, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 1,
				FirstAired:  "2019-03-04",
				Language:    tvdb.Language{Abbreviation: "eng"},
				Overview:    "The beginning.",
				EpisodeName: "Pilot",
			},
			{
				ID: 9002, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 2,
				FirstAired:  "2019-03-11",
				Language:    tvdb.Language{Abbreviation: "en"},
				EpisodeName: "Second",
			},
		},
	}}
	provider, store, series := newProvider(t, quality.Bluray1080p, source)

	ctx := context.Background()
	result, err := provider.RefreshEpisodeInfo(ctx, series.ID)
	if err != nil {
		t.Fatalf("RefreshEpisodeInfo failed: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Failed != 0 {
		t.Fatalf("unexpected first result: %#v", result)
	}

	first, err := store.EpisodeByNumber(ctx, series.ID, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}
	if first == nil {
		t.Fatal("expected episode to be stored")
	}
	if first.Title != "Pilot" || first.Overview != "The beginning." || first.TVDBID != 9001 {
		t.Fatalf("unexpected stored episode: %#v", first)
	}
	if first.Language != "en" {
		t.Fatalf("expected normalized language en, got %q", first.Language)
	}
	wantAired := time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC)
	if !first.AirDate.Equal(wantAired) {
		t.Fatalf("expected air date %s, got %s", wantAired, first.AirDate)
	}

	// A second run with a changed snapshot updates in place.
	source.detail.Episodes[0].EpisodeName = "Pilot (revised)"
	result, err = provider.RefreshEpisodeInfo(ctx, series.ID)
	if err != nil {
		t.Fatalf("RefreshEpisodeInfo repeat failed: %v", err)
	}
	if result.Created != 0 || result.Updated != 2 || result.Failed != 0 {
		t.Fatalf("unexpected second result: %#v", result)
	}

	refetched, err := store.EpisodeByNumber(ctx, series.ID, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}
	if refetched == nil || refetched.ID != first.ID {
		t.Fatalf("expected stable identity key %d, got %#v", first.ID, refetched)
	}
	if refetched.Title != "Pilot (revised)" {
		t.Fatalf("expected updated title, got %q", refetched.Title)
	}
}

func TestRefreshEpisodeInfoEnsuresSeasons(t *testing.T) {
	source := &stubSource{detail: &tvdb.SeriesDetail{
		SeriesName: "Season Show",
		Episodes: []tvdb.Episode{
			{ID: 1, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 1, EpisodeName: "a"},
			{ID: 2, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 2, EpisodeName: "b"},
			{ID: 3, SeasonID: 71, SeasonNumber: 2, EpisodeNumber: 1, EpisodeName: "c"},
		},
	}}
	provider, store, series := newProvider(t, quality.HDTV, source)

	ctx := context.Background()
	if _, err := provider.RefreshEpisodeInfo(ctx, series.ID); err != nil {
		t.Fatalf("RefreshEpisodeInfo failed: %v", err)
	}

	seasons, err := store.SeasonsBySeries(ctx, series.ID)
	if err != nil {
		t.Fatalf("SeasonsBySeries failed: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
}

func TestRefreshEpisodeInfoClampsEarlyAirDates(t *testing.T) {
	source := &stubSource{detail: &tvdb.SeriesDetail{
		SeriesName: "Old Show",
		Episodes: []tvdb.Episode{
			{ID: 1, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 1, FirstAired: "1700-06-15", EpisodeName: "ancient"},
		},
	}}
	provider, store, series := newProvider(t, quality.HDTV, source)

	ctx := context.Background()
	if _, err := provider.RefreshEpisodeInfo(ctx, series.ID); err != nil {
		t.Fatalf("RefreshEpisodeInfo failed: %v", err)
	}

	episode, err := store.EpisodeByNumber(ctx, series.ID, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}
	floor := time.Date(1753, time.January, 1, 0, 0, 0, 0, time.UTC)
	if episode == nil || !episode.AirDate.Equal(floor) {
		t.Fatalf("expected air date clamped to %s, got %#v", floor, episode)
	}
}

func TestRefreshEpisodeInfoIsolatesMalformedRecords(t *testing.T) {
	source := &stubSource{detail: &tvdb.SeriesDetail{
		SeriesName: "Messy Show",
		Episodes: []tvdb.Episode{
			{ID: 1, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 1, EpisodeName: "good"},
			{ID: 2, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 0, EpisodeName: "bad numbering"},
			{ID: 3, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 3, FirstAired: "not-a-date", EpisodeName: "bad date"},
			{ID: 4, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 4, EpisodeName: "also good"},
		},
	}}
	provider, store, series := newProvider(t, quality.HDTV, source)

	ctx := context.Background()
	result, err := provider.RefreshEpisodeInfo(ctx, series.ID)
	if err != nil {
		t.Fatalf("RefreshEpisodeInfo failed: %v", err)
	}
	if result.Created != 2 || result.Failed != 2 {
		t.Fatalf("unexpected result: %#v", result)
	}

	all, err := store.EpisodesBySeries(ctx, series.ID)
	if err != nil {
		t.Fatalf("EpisodesBySeries failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 stored episodes, got %d", len(all))
	}
}

func TestRefreshEpisodeInfoBackfillsPlaceholders(t *testing.T) {
	source := &stubSource{detail: &tvdb.SeriesDetail{
		SeriesName: "Backfill Show",
		Episodes: []tvdb.Episode{
			{ID: 9001, SeasonID: 70, SeasonNumber: 1, EpisodeNumber: 1, EpisodeName: "Pilot", Overview: "Filled in."},
		},
	}}
	provider, store, series := newProvider(t, quality.Bluray1080p, source)

	ctx := context.Background()
	needed, err := provider.IsNeeded(ctx, episodes.ParseResult{
		SeriesID:     series.ID,
		SeasonNumber: 1,
		Episodes:     []int{1},
		Quality:      quality.HDTV,
	})
	if err != nil {
		t.Fatalf("IsNeeded failed: %v", err)
	}
	if !needed {
		t.Fatal("expected placeholder creation to report needed")
	}
	placeholder, err := store.EpisodeByNumber(ctx, series.ID, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}

	result, err := provider.RefreshEpisodeInfo(ctx, series.ID)
	if err != nil {
		t.Fatalf("RefreshEpisodeInfo failed: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Fatalf("expected placeholder to be updated, got %#v", result)
	}

	filled, err := store.EpisodeByNumber(ctx, series.ID, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}
	if filled == nil || filled.ID != placeholder.ID {
		t.Fatalf("expected placeholder identity preserved, got %#v", filled)
	}
	if filled.Title != "Pilot" || filled.Overview != "Filled in." || filled.TVDBID != 9001 {
		t.Fatalf("expected placeholder backfilled, got %#v", filled)
	}
}

func TestRefreshEpisodeInfoPropagatesSourceFailure(t *testing.T) {
	source := &stubSource{err: errors.New("tvdb unavailable")}
	provider, _, series := newProvider(t, quality.HDTV, source)

	_, err := provider.RefreshEpisodeInfo(context.Background(), series.ID)
	if err == nil {
		t.Fatal("expected error when source fails")
	}
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service marker, got %v", err)
	}
}
