package history

import "strconv"

// Exporters name the same concepts differently. Each list holds the accepted
// key names for one logical field in resolution order; the first non-empty
// value wins. A new exporter schema is supported by appending its key names
// here, not by branching.
var (
	albumKeys  = []string{"master_metadata_album_album_name", "albumName", "album", "release_name"}
	artistKeys = []string{"master_metadata_album_artist_name", "artistName", "artist"}
	trackKeys  = []string{"master_metadata_track_name", "trackName", "track"}
	playedKeys = []string{"ms_played", "msPlayed"}
)

// Extract normalizes one raw record into (album, artist, track, minutes).
// Missing fields come back as empty strings and zero minutes, never as an
// error; the aggregator decides what to skip.
func (r Record) Extract() (album, artist, track string, minutes float64) {
	album = r.stringField(albumKeys)
	artist = r.stringField(artistKeys)
	track = r.stringField(trackKeys)
	minutes = r.numberField(playedKeys) / 60000.0
	return album, artist, track, minutes
}

func (r Record) stringField(keys []string) string {
	for _, key := range keys {
		if s, ok := r[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (r Record) numberField(keys []string) float64 {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil && f != 0 {
				return f
			}
		}
	}
	return 0
}
