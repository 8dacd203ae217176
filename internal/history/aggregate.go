package history

import (
	"sort"
	"strings"

	"github.com/cesargomez89/albumdays/internal/domain"
	"github.com/cesargomez89/albumdays/internal/logger"
)

// Stats tallies how much input was read and discarded during an aggregation
// run. Skips are a data-quality filter, not errors; the tally lets callers
// and tests see how much was dropped.
type Stats struct {
	Archives int `json:"archives"`
	Records  int `json:"records"`
	Skipped  int `json:"skipped"`
}

type albumKey struct {
	album  string
	artist string
}

// Aggregate folds the records of the given archives into per-(album, artist)
// listening totals. Records missing an album or artist, or with non-positive
// play time, are skipped. The result is ordered by minutes descending; ties
// keep first-encounter order.
func Aggregate(paths []string, log *logger.Logger) ([]domain.AlbumListening, Stats, error) {
	if log == nil {
		log = logger.Default()
	}

	var stats Stats
	totals := make(map[albumKey]*domain.AlbumListening)
	var order []albumKey

	for _, path := range paths {
		err := forEachRecord(path, log, func(rec Record) {
			stats.Records++
			album, artist, track, minutes := rec.Extract()
			album = strings.TrimSpace(album)
			artist = strings.TrimSpace(artist)
			if album == "" || artist == "" || minutes <= 0 {
				stats.Skipped++
				return
			}
			key := albumKey{album: album, artist: artist}
			entry, ok := totals[key]
			if !ok {
				entry = &domain.AlbumListening{
					Album:  key.album,
					Artist: key.artist,
					Tracks: domain.TrackSet{},
				}
				totals[key] = entry
				order = append(order, key)
			}
			entry.Minutes += minutes
			entry.Tracks.Add(track)
		})
		if err != nil {
			return nil, stats, err
		}
		stats.Archives++
	}

	albums := make([]domain.AlbumListening, 0, len(order))
	for _, key := range order {
		albums = append(albums, *totals[key])
	}
	sort.SliceStable(albums, func(i, j int) bool {
		return albums[i].Minutes > albums[j].Minutes
	})

	log.Debug("Aggregated listening history",
		"archives", stats.Archives, "records", stats.Records,
		"skipped", stats.Skipped, "albums", len(albums))

	return albums, stats, nil
}

// FilterByMinutes returns the albums with at least min minutes listened,
// preserving order. The cutoff is inclusive.
func FilterByMinutes(albums []domain.AlbumListening, min float64) []domain.AlbumListening {
	filtered := make([]domain.AlbumListening, 0, len(albums))
	for _, album := range albums {
		if album.Minutes >= min {
			filtered = append(filtered, album)
		}
	}
	return filtered
}
