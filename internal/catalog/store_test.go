package catalog_test

import (
	"context"
	"testing"
	"time"

	"tvkeep/internal/catalog"
	"tvkeep/internal/quality"
	"tvkeep/internal/testsupport"
)

func TestOpenInitializesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8001, "Open Check", quality.Bluray1080p)
	if series.ID == 0 {
		t.Fatal("expected series ID to be assigned")
	}

	fetched, err := store.SeriesByID(ctx, series.ID)
	if err != nil {
		t.Fatalf("SeriesByID failed: %v", err)
	}
	if fetched == nil || fetched.Title != "Open Check" {
		t.Fatalf("unexpected fetched series: %#v", fetched)
	}

	byTVDB, err := store.SeriesByTVDBID(ctx, 8001)
	if err != nil {
		t.Fatalf("SeriesByTVDBID failed: %v", err)
	}
	if byTVDB == nil || byTVDB.ID != series.ID {
		t.Fatalf("expected to find inserted series, got %#v", byTVDB)
	}
}

func TestEpisodeLookupsReturnNilWhenAbsent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	episode, err := store.EpisodeByID(ctx, 999)
	if err != nil {
		t.Fatalf("EpisodeByID failed: %v", err)
	}
	if episode != nil {
		t.Fatalf("expected nil episode, got %#v", episode)
	}

	episode, err = store.EpisodeByNumber(ctx, 1, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}
	if episode != nil {
		t.Fatalf("expected nil episode, got %#v", episode)
	}
}

func TestAddAndUpdateEpisodeBatches(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8002, "Batch Show", quality.HDTV)

	aired := time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC)
	batch := []*catalog.Episode{
		{SeriesID: series.ID, TVDBID: 101, SeasonNumber: 1, EpisodeNumber: 1, Title: "Pilot", Language: "en", AirDate: aired},
		{SeriesID: series.ID, TVDBID: 102, SeasonNumber: 1, EpisodeNumber: 2, Title: "Second", Language: "en"},
	}
	if err := store.AddEpisodes(ctx, batch); err != nil {
		t.Fatalf("AddEpisodes failed: %v", err)
	}
	for _, episode := range batch {
		if episode.ID == 0 {
			t.Fatalf("expected ID assigned for %s", episode.Key())
		}
	}

	batch[0].Title = "Pilot (revised)"
	batch[0].Overview = "A new beginning."
	if err := store.UpdateEpisodes(ctx, batch[:1]); err != nil {
		t.Fatalf("UpdateEpisodes failed: %v", err)
	}

	fetched, err := store.EpisodeByNumber(ctx, series.ID, 1, 1)
	if err != nil {
		t.Fatalf("EpisodeByNumber failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected episode after update")
	}
	if fetched.Title != "Pilot (revised)" || fetched.Overview != "A new beginning." {
		t.Fatalf("update not applied: %#v", fetched)
	}
	if !fetched.AirDate.Equal(aired) {
		t.Fatalf("expected air date %s, got %s", aired, fetched.AirDate)
	}
	if fetched.ID != batch[0].ID {
		t.Fatalf("expected stable episode ID %d, got %d", batch[0].ID, fetched.ID)
	}

	all, err := store.EpisodesBySeries(ctx, series.ID)
	if err != nil {
		t.Fatalf("EpisodesBySeries failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(all))
	}
}

func TestEpisodesBySeasonFiltersBySeason(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8003, "Season Filter", quality.HDTV)
	testsupport.MustAddEpisode(t, store, series.ID, 1, 1)
	testsupport.MustAddEpisode(t, store, series.ID, 1, 2)
	testsupport.MustAddEpisode(t, store, series.ID, 2, 1)

	seasonOne, err := store.EpisodesBySeason(ctx, series.ID, 1)
	if err != nil {
		t.Fatalf("EpisodesBySeason failed: %v", err)
	}
	if len(seasonOne) != 2 {
		t.Fatalf("expected 2 episodes in season 1, got %d", len(seasonOne))
	}
	for _, episode := range seasonOne {
		if episode.SeasonNumber != 1 {
			t.Fatalf("unexpected season %d in results", episode.SeasonNumber)
		}
	}
}

func TestEnsureSeasonIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8004, "Season Show", quality.WEBDL)

	if err := store.EnsureSeason(ctx, series.ID, 500, 1); err != nil {
		t.Fatalf("EnsureSeason failed: %v", err)
	}
	if err := store.EnsureSeason(ctx, series.ID, 501, 1); err != nil {
		t.Fatalf("EnsureSeason repeat failed: %v", err)
	}
	if err := store.EnsureSeason(ctx, series.ID, 502, 2); err != nil {
		t.Fatalf("EnsureSeason second season failed: %v", err)
	}

	seasons, err := store.SeasonsBySeries(ctx, series.ID)
	if err != nil {
		t.Fatalf("SeasonsBySeries failed: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
	for _, season := range seasons {
		if season.SeasonNumber == 1 && season.TVDBSeasonID != 501 {
			t.Fatalf("expected season 1 to carry latest tvdb id, got %d", season.TVDBSeasonID)
		}
	}
}

func TestAttachFileUpsertsPerEpisode(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8005, "File Show", quality.Bluray1080p)
	episode := testsupport.MustAddEpisode(t, store, series.ID, 1, 1)

	if err := store.AttachFile(ctx, episode.ID, "/media/file-show/s01e01.mkv", quality.HDTV, false); err != nil {
		t.Fatalf("AttachFile failed: %v", err)
	}
	if err := store.AttachFile(ctx, episode.ID, "/media/file-show/s01e01.proper.mkv", quality.WEBDL, true); err != nil {
		t.Fatalf("AttachFile upsert failed: %v", err)
	}

	fetched, err := store.EpisodeByID(ctx, episode.ID)
	if err != nil {
		t.Fatalf("EpisodeByID failed: %v", err)
	}
	if fetched == nil || fetched.File == nil {
		t.Fatalf("expected episode with file, got %#v", fetched)
	}
	if fetched.File.Quality != quality.WEBDL || !fetched.File.Proper {
		t.Fatalf("expected upserted file, got %#v", fetched.File)
	}
	if fetched.File.Path != "/media/file-show/s01e01.proper.mkv" {
		t.Fatalf("unexpected file path %q", fetched.File.Path)
	}
}

func TestDeleteEpisodeReportsRemoval(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8006, "Delete Show", quality.DVD)
	episode := testsupport.MustAddEpisode(t, store, series.ID, 1, 1)

	removed, err := store.DeleteEpisode(ctx, episode.ID)
	if err != nil {
		t.Fatalf("DeleteEpisode failed: %v", err)
	}
	if !removed {
		t.Fatal("expected deletion to report removal")
	}

	removed, err = store.DeleteEpisode(ctx, episode.ID)
	if err != nil {
		t.Fatalf("DeleteEpisode repeat failed: %v", err)
	}
	if removed {
		t.Fatal("expected second deletion to report nothing removed")
	}
}

func TestStatsBySeriesCountsFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	series := testsupport.MustAddSeries(t, store, 8007, "Stats Show", quality.Bluray720p)
	first := testsupport.MustAddEpisode(t, store, series.ID, 1, 1)
	testsupport.MustAddEpisode(t, store, series.ID, 1, 2)
	testsupport.MustAddEpisode(t, store, series.ID, 1, 3)
	testsupport.MustAttachFile(t, store, first.ID, quality.HDTV, false)

	stats, err := store.StatsBySeries(ctx, series.ID)
	if err != nil {
		t.Fatalf("StatsBySeries failed: %v", err)
	}
	if stats.Episodes != 3 {
		t.Fatalf("expected 3 episodes, got %d", stats.Episodes)
	}
	if stats.WithFile != 1 {
		t.Fatalf("expected 1 episode with file, got %d", stats.WithFile)
	}
}
