package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cesargomez89/albumdays/internal/domain"
)

type albumRow struct {
	Album         string          `db:"album"`
	Artist        string          `db:"artist"`
	Minutes       float64         `db:"minutes"`
	ReleaseDate   sql.NullString  `db:"release_date"`
	MusicBrainzID sql.NullString  `db:"musicbrainz_id"`
	Tracks        domain.TrackSet `db:"tracks"`
}

// ReplaceAlbums swaps out a chat's stored album set for the given one.
func (db *DB) ReplaceAlbums(chatID int64, albums []domain.AlbumListening) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("DELETE FROM albums WHERE chat_id = ?", chatID); err != nil {
		return fmt.Errorf("failed to clear albums: %w", err)
	}

	now := time.Now()
	for _, album := range albums {
		var releaseDate, mbid any
		if album.ReleaseDate != nil {
			releaseDate = album.ReleaseDate.String()
		}
		if album.MusicBrainzID != "" {
			mbid = album.MusicBrainzID
		}
		tracks, err := album.Tracks.Value()
		if err != nil {
			return fmt.Errorf("failed to encode tracks: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO albums (chat_id, album, artist, minutes, release_date, musicbrainz_id, tracks, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(chat_id, album, artist) DO UPDATE SET
				minutes = excluded.minutes,
				release_date = excluded.release_date,
				musicbrainz_id = excluded.musicbrainz_id,
				tracks = excluded.tracks,
				updated_at = excluded.updated_at
		`, chatID, album.Album, album.Artist, album.Minutes, releaseDate, mbid, tracks, now)
		if err != nil {
			return fmt.Errorf("failed to insert album: %w", err)
		}
	}

	return tx.Commit()
}

// ListAlbums returns a chat's stored album set ordered by minutes descending.
func (db *DB) ListAlbums(chatID int64) ([]domain.AlbumListening, error) {
	var rows []albumRow
	err := db.Select(&rows, `
		SELECT album, artist, minutes, release_date, musicbrainz_id, tracks
		FROM albums WHERE chat_id = ? ORDER BY minutes DESC
	`, chatID)
	if err != nil {
		return nil, err
	}

	albums := make([]domain.AlbumListening, 0, len(rows))
	for _, row := range rows {
		album := domain.AlbumListening{
			Album:   row.Album,
			Artist:  row.Artist,
			Minutes: row.Minutes,
			Tracks:  row.Tracks,
		}
		if album.Tracks == nil {
			album.Tracks = domain.TrackSet{}
		}
		if row.MusicBrainzID.Valid {
			album.MusicBrainzID = row.MusicBrainzID.String
		}
		if row.ReleaseDate.Valid && row.ReleaseDate.String != "" {
			date, err := domain.ParseDate(row.ReleaseDate.String)
			if err != nil {
				return nil, fmt.Errorf("bad release date for %s - %s: %w", row.Artist, row.Album, err)
			}
			album.ReleaseDate = &date
		}
		albums = append(albums, album)
	}
	return albums, nil
}

// ListChats returns every chat id with a stored album set.
func (db *DB) ListChats() ([]int64, error) {
	var chats []int64
	err := db.Select(&chats, "SELECT DISTINCT chat_id FROM albums ORDER BY chat_id")
	if err != nil {
		return nil, err
	}
	return chats, nil
}
