package catalog

import (
	"fmt"
	"time"

	"tvkeep/internal/quality"
)

// Profile is a named upgrade policy owned by a series. Cutoff is the quality
// tier beyond which no further upgrades are sought.
type Profile struct {
	ID     int64
	Name   string
	Cutoff quality.Quality
}

// Series is a tracked show. TVDBID links it to the metadata source; ProfileID
// selects the upgrade policy applied to its episodes.
type Series struct {
	ID        int64
	TVDBID    int64
	Title     string
	ProfileID int64
	Monitored bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Season records that a broadcast season exists for a series. Episode rows
// reference seasons only through (series id, season number).
type Season struct {
	ID           int64
	SeriesID     int64
	TVDBSeasonID int64
	SeasonNumber int
}

// Episode is one broadcast episode instance. TVDBID is zero until the episode
// has been seen in a metadata refresh; placeholder rows created by the release
// evaluator carry only the natural key and defaults.
type Episode struct {
	ID            int64
	TVDBID        int64
	SeriesID      int64
	SeasonNumber  int
	EpisodeNumber int
	Title         string
	Overview      string
	Language      string
	AirDate       time.Time
	File          *EpisodeFile
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Key returns the s01e02-style identifier used in logs.
func (e *Episode) Key() string {
	return fmt.Sprintf("s%02de%02d", e.SeasonNumber, e.EpisodeNumber)
}

// HasFile reports whether a media artifact is attached.
func (e *Episode) HasFile() bool {
	return e != nil && e.File != nil
}

// EpisodeFile is the locally held media artifact for an episode.
type EpisodeFile struct {
	ID        int64
	EpisodeID int64
	Path      string
	Quality   quality.Quality
	Proper    bool
}
