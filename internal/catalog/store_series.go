package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tvkeep/internal/quality"
)

// AddProfile inserts a quality profile and assigns its identity key.
func (s *Store) AddProfile(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return errors.New("profile is nil")
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO quality_profiles (name, cutoff) VALUES (?, ?)`,
		profile.Name,
		int(profile.Cutoff),
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	profile.ID = id
	return nil
}

// ProfileByID fetches a quality profile. Returns (nil, nil) when absent.
func (s *Store) ProfileByID(ctx context.Context, id int64) (*Profile, error) {
	var (
		profile Profile
		cutoff  int64
	)
	row := s.db.QueryRowContext(ctx, `SELECT id, name, cutoff FROM quality_profiles WHERE id = ?`, id)
	err := row.Scan(&profile.ID, &profile.Name, &cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	profile.Cutoff = quality.Quality(cutoff)
	return &profile, nil
}

// AddSeries inserts a tracked series and assigns its identity key.
func (s *Store) AddSeries(ctx context.Context, series *Series) error {
	if series == nil {
		return errors.New("series is nil")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO series (tvdb_id, title, profile_id, monitored, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		series.TVDBID,
		series.Title,
		series.ProfileID,
		boolToInt(series.Monitored),
		timestamp,
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert series: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	series.ID = id
	series.CreatedAt = now
	series.UpdatedAt = now
	return nil
}

const seriesColumns = `id, tvdb_id, title, profile_id, monitored, created_at, updated_at`

// SeriesByID fetches a series by identifier. Returns (nil, nil) when absent.
func (s *Store) SeriesByID(ctx context.Context, id int64) (*Series, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE id = ?`, id)
	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	return series, nil
}

// SeriesByTVDBID fetches a series by its metadata source identifier.
func (s *Store) SeriesByTVDBID(ctx context.Context, tvdbID int64) (*Series, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+seriesColumns+` FROM series WHERE tvdb_id = ?`, tvdbID)
	series, err := scanSeries(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find series by tvdb id: %w", err)
	}
	return series, nil
}

// ListSeries returns all tracked series ordered by title.
func (s *Store) ListSeries(ctx context.Context) ([]*Series, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+seriesColumns+` FROM series ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var list []*Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, series)
	}
	return list, rows.Err()
}

// EnsureSeason records that a season exists for a series. Idempotent; repeated
// calls for the same (series, season number) pair keep the existing row.
func (s *Store) EnsureSeason(ctx context.Context, seriesID, tvdbSeasonID int64, seasonNumber int) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO seasons (series_id, tvdb_season_id, season_number, created_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(series_id, season_number) DO UPDATE SET tvdb_season_id = excluded.tvdb_season_id`,
		seriesID,
		nullableInt64(tvdbSeasonID),
		seasonNumber,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("ensure season: %w", err)
	}
	return nil
}

// SeasonsBySeries returns the recorded seasons for a series in order.
func (s *Store) SeasonsBySeries(ctx context.Context, seriesID int64) ([]*Season, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, series_id, tvdb_season_id, season_number FROM seasons WHERE series_id = ? ORDER BY season_number`,
		seriesID,
	)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*Season
	for rows.Next() {
		var (
			season       Season
			tvdbSeasonID sql.NullInt64
		)
		if err := rows.Scan(&season.ID, &season.SeriesID, &tvdbSeasonID, &season.SeasonNumber); err != nil {
			return nil, err
		}
		season.TVDBSeasonID = tvdbSeasonID.Int64
		seasons = append(seasons, &season)
	}
	return seasons, rows.Err()
}

// SeriesStats summarizes catalog coverage for one series.
type SeriesStats struct {
	Episodes int
	WithFile int
}

// StatsBySeries counts episodes and held files for a series.
func (s *Store) StatsBySeries(ctx context.Context, seriesID int64) (SeriesStats, error) {
	var stats SeriesStats
	row := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(e.id), COUNT(f.id)
         FROM episodes e LEFT JOIN episode_files f ON f.episode_id = e.id
         WHERE e.series_id = ?`,
		seriesID,
	)
	if err := row.Scan(&stats.Episodes, &stats.WithFile); err != nil {
		return SeriesStats{}, fmt.Errorf("series stats: %w", err)
	}
	return stats, nil
}

func scanSeries(scanner interface{ Scan(dest ...any) error }) (*Series, error) {
	var (
		series     Series
		monitored  sql.NullInt64
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(
		&series.ID,
		&series.TVDBID,
		&series.Title,
		&series.ProfileID,
		&monitored,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	series.Monitored = monitored.Int64 != 0
	if created, err := parseTimeString(createdRaw.String); err == nil {
		series.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		series.UpdatedAt = updated
	}
	return &series, nil
}
