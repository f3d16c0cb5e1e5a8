package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tvkeep/internal/quality"
)

const episodeColumns = `e.id, e.tvdb_id, e.series_id, e.season_number, e.episode_number,
    e.title, e.overview, e.language, e.air_date, e.created_at, e.updated_at,
    f.id, f.episode_id, f.path, f.quality, f.proper`

const episodeFrom = ` FROM episodes e LEFT JOIN episode_files f ON f.episode_id = e.id`

// EpisodeByID fetches an episode by identifier. Returns (nil, nil) when absent.
func (s *Store) EpisodeByID(ctx context.Context, id int64) (*Episode, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+episodeColumns+episodeFrom+` WHERE e.id = ?`, id)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get episode: %w", err)
	}
	return episode, nil
}

// EpisodeByNumber fetches an episode by its natural key. Returns (nil, nil) when absent.
func (s *Store) EpisodeByNumber(ctx context.Context, seriesID int64, seasonNumber, episodeNumber int) (*Episode, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+episodeColumns+episodeFrom+` WHERE e.series_id = ? AND e.season_number = ? AND e.episode_number = ?`,
		seriesID, seasonNumber, episodeNumber,
	)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find episode by number: %w", err)
	}
	return episode, nil
}

// EpisodesBySeries returns all episodes for a series in broadcast order.
func (s *Store) EpisodesBySeries(ctx context.Context, seriesID int64) ([]*Episode, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+episodeColumns+episodeFrom+` WHERE e.series_id = ? ORDER BY e.season_number, e.episode_number`,
		seriesID,
	)
	if err != nil {
		return nil, fmt.Errorf("query episodes by series: %w", err)
	}
	defer rows.Close()
	return collectEpisodes(rows)
}

// EpisodesBySeason returns a single season's episodes in broadcast order.
func (s *Store) EpisodesBySeason(ctx context.Context, seriesID int64, seasonNumber int) ([]*Episode, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+episodeColumns+episodeFrom+` WHERE e.series_id = ? AND e.season_number = ? ORDER BY e.episode_number`,
		seriesID, seasonNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("query episodes by season: %w", err)
	}
	defer rows.Close()
	return collectEpisodes(rows)
}

// AddEpisode inserts a single episode and assigns its identity key.
func (s *Store) AddEpisode(ctx context.Context, episode *Episode) error {
	if episode == nil {
		return errors.New("episode is nil")
	}
	now := time.Now().UTC()
	episode.CreatedAt = now
	episode.UpdatedAt = now

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO episodes (tvdb_id, series_id, season_number, episode_number, title, overview, language, air_date, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableInt64(episode.TVDBID),
		episode.SeriesID,
		episode.SeasonNumber,
		episode.EpisodeNumber,
		episode.Title,
		episode.Overview,
		episode.Language,
		nullableTime(episode.AirDate),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert episode: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	episode.ID = id
	return nil
}

// AddEpisodes inserts a batch of episodes in one transaction, assigning
// identity keys as it goes.
func (s *Store) AddEpisodes(ctx context.Context, episodes []*Episode) error {
	if len(episodes) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	for _, episode := range episodes {
		if episode == nil {
			return errors.New("episode is nil")
		}
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO episodes (tvdb_id, series_id, season_number, episode_number, title, overview, language, air_date, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nullableInt64(episode.TVDBID),
			episode.SeriesID,
			episode.SeasonNumber,
			episode.EpisodeNumber,
			episode.Title,
			episode.Overview,
			episode.Language,
			nullableTime(episode.AirDate),
			timestamp,
			timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert episode %s: %w", episode.Key(), err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		episode.ID = id
		episode.CreatedAt = now
		episode.UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit inserts: %w", err)
	}
	return nil
}

// UpdateEpisode overwrites an episode's mutable fields. The identity key must
// already be assigned.
func (s *Store) UpdateEpisode(ctx context.Context, episode *Episode) error {
	if episode == nil {
		return errors.New("episode is nil")
	}
	if episode.ID == 0 {
		return errors.New("episode has no identity key")
	}
	episode.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE episodes
         SET tvdb_id = ?, season_number = ?, episode_number = ?, title = ?,
             overview = ?, language = ?, air_date = ?, updated_at = ?
         WHERE id = ?`,
		nullableInt64(episode.TVDBID),
		episode.SeasonNumber,
		episode.EpisodeNumber,
		episode.Title,
		episode.Overview,
		episode.Language,
		nullableTime(episode.AirDate),
		episode.UpdatedAt.Format(time.RFC3339Nano),
		episode.ID,
	)
	if err != nil {
		return fmt.Errorf("update episode: %w", err)
	}
	return nil
}

// UpdateEpisodes overwrites a batch of episodes in one transaction.
func (s *Store) UpdateEpisodes(ctx context.Context, episodes []*Episode) error {
	if len(episodes) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	for _, episode := range episodes {
		if episode == nil {
			return errors.New("episode is nil")
		}
		if episode.ID == 0 {
			return fmt.Errorf("episode %s has no identity key", episode.Key())
		}
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE episodes
             SET tvdb_id = ?, season_number = ?, episode_number = ?, title = ?,
                 overview = ?, language = ?, air_date = ?, updated_at = ?
             WHERE id = ?`,
			nullableInt64(episode.TVDBID),
			episode.SeasonNumber,
			episode.EpisodeNumber,
			episode.Title,
			episode.Overview,
			episode.Language,
			nullableTime(episode.AirDate),
			timestamp,
			episode.ID,
		); err != nil {
			return fmt.Errorf("update episode %s: %w", episode.Key(), err)
		}
		episode.UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit updates: %w", err)
	}
	return nil
}

// DeleteEpisode removes an episode by identifier, reporting whether a row existed.
func (s *Store) DeleteEpisode(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete episode: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// AttachFile records the media artifact held for an episode, replacing any
// previous attachment.
func (s *Store) AttachFile(ctx context.Context, episodeID int64, path string, q quality.Quality, proper bool) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO episode_files (episode_id, path, quality, proper, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(episode_id) DO UPDATE SET path = excluded.path, quality = excluded.quality, proper = excluded.proper`,
		episodeID,
		nullableString(path),
		int(q),
		boolToInt(proper),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("attach episode file: %w", err)
	}
	return nil
}

func collectEpisodes(rows *sql.Rows) ([]*Episode, error) {
	var episodes []*Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}
	return episodes, rows.Err()
}

func scanEpisode(scanner interface{ Scan(dest ...any) error }) (*Episode, error) {
	var (
		id            int64
		tvdbID        sql.NullInt64
		seriesID      int64
		seasonNumber  int
		episodeNumber int
		title         string
		overview      string
		language      string
		airDateRaw    sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
		fileID        sql.NullInt64
		fileEpisodeID sql.NullInt64
		filePath      sql.NullString
		fileQuality   sql.NullInt64
		fileProper    sql.NullInt64
	)

	if err := scanner.Scan(
		&id,
		&tvdbID,
		&seriesID,
		&seasonNumber,
		&episodeNumber,
		&title,
		&overview,
		&language,
		&airDateRaw,
		&createdRaw,
		&updatedRaw,
		&fileID,
		&fileEpisodeID,
		&filePath,
		&fileQuality,
		&fileProper,
	); err != nil {
		return nil, err
	}

	episode := &Episode{
		ID:            id,
		TVDBID:        tvdbID.Int64,
		SeriesID:      seriesID,
		SeasonNumber:  seasonNumber,
		EpisodeNumber: episodeNumber,
		Title:         title,
		Overview:      overview,
		Language:      language,
	}
	if airDateRaw.Valid {
		if airDate, err := parseTimeString(airDateRaw.String); err == nil {
			episode.AirDate = airDate
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		episode.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		episode.UpdatedAt = updated
	}
	if fileID.Valid {
		episode.File = &EpisodeFile{
			ID:        fileID.Int64,
			EpisodeID: fileEpisodeID.Int64,
			Path:      filePath.String,
			Quality:   quality.Quality(fileQuality.Int64),
			Proper:    fileProper.Int64 != 0,
		}
	}
	return episode, nil
}
