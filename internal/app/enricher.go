// Package app orchestrates the aggregation-and-enrichment pipeline.
package app

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/cesargomez89/albumdays/internal/domain"
	"github.com/cesargomez89/albumdays/internal/logger"
	"github.com/cesargomez89/albumdays/internal/musicbrainz"
)

// ReleaseEnricher fills in release dates and MusicBrainz ids for albums that
// lack them. Lookups are paced to respect the catalog's informal rate limit;
// a failed lookup leaves that album unmodified and the batch continues.
type ReleaseEnricher struct {
	lookup  musicbrainz.Lookup
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewReleaseEnricher creates an enricher that waits at least pause between
// consecutive external lookups. A non-positive pause disables pacing.
func NewReleaseEnricher(lookup musicbrainz.Lookup, pause time.Duration, log *logger.Logger) *ReleaseEnricher {
	if log == nil {
		log = logger.Default()
	}
	limit := rate.Inf
	if pause > 0 {
		limit = rate.Every(pause)
	}
	return &ReleaseEnricher{
		lookup:  lookup,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// Enrich returns a copy of albums with release dates and ids filled in where
// a lookup succeeded. Albums that already carry a release date pass through
// untouched and do not consume a pacing slot. Existing data is never
// cleared.
func (e *ReleaseEnricher) Enrich(ctx context.Context, albums []domain.AlbumListening) []domain.AlbumListening {
	enriched := make([]domain.AlbumListening, 0, len(albums))
	for i, album := range albums {
		album = album.Clone()
		if album.ReleaseDate != nil {
			enriched = append(enriched, album)
			continue
		}

		if err := e.limiter.Wait(ctx); err != nil {
			e.log.Warn("Enrichment interrupted", "error", err, "remaining", len(albums)-i)
			enriched = append(enriched, album)
			for _, rest := range albums[i+1:] {
				enriched = append(enriched, rest.Clone())
			}
			return enriched
		}

		res, err := e.lookup.LookupRelease(ctx, album.Album, album.Artist)
		if err != nil {
			e.log.Warn("Failed to fetch release date",
				"artist", album.Artist, "album", album.Album, "error", err)
			enriched = append(enriched, album)
			continue
		}

		if res.Date != nil {
			date := *res.Date
			album.ReleaseDate = &date
		}
		if res.ID != "" {
			album.MusicBrainzID = res.ID
		}
		enriched = append(enriched, album)
	}
	return enriched
}
