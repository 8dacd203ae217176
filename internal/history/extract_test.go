package history

import "testing"

func TestRecord_Extract(t *testing.T) {
	tests := []struct {
		name        string
		record      Record
		wantAlbum   string
		wantArtist  string
		wantTrack   string
		wantMinutes float64
	}{
		{
			name: "extended history fields",
			record: Record{
				"master_metadata_album_album_name":  "OK Computer",
				"master_metadata_album_artist_name": "Radiohead",
				"master_metadata_track_name":        "Airbag",
				"ms_played":                         float64(240000),
			},
			wantAlbum:   "OK Computer",
			wantArtist:  "Radiohead",
			wantTrack:   "Airbag",
			wantMinutes: 4,
		},
		{
			name: "account data fields",
			record: Record{
				"albumName":  "In Rainbows",
				"artistName": "Radiohead",
				"trackName":  "Nude",
				"msPlayed":   float64(120000),
			},
			wantAlbum:   "In Rainbows",
			wantArtist:  "Radiohead",
			wantTrack:   "Nude",
			wantMinutes: 2,
		},
		{
			name: "short fallback fields",
			record: Record{
				"album":  "Kid A",
				"artist": "Radiohead",
				"track":  "Idioteque",
			},
			wantAlbum:  "Kid A",
			wantArtist: "Radiohead",
			wantTrack:  "Idioteque",
		},
		{
			name: "extended fields win over short ones",
			record: Record{
				"master_metadata_album_album_name": "Amnesiac",
				"album":                            "Wrong Album",
				"ms_played":                        float64(60000),
				"msPlayed":                         float64(999999),
			},
			wantAlbum:   "Amnesiac",
			wantMinutes: 1,
		},
		{
			name: "numeric string played time",
			record: Record{
				"album":     "Blue",
				"artist":    "Joni Mitchell",
				"ms_played": "90000",
			},
			wantAlbum:   "Blue",
			wantArtist:  "Joni Mitchell",
			wantMinutes: 1.5,
		},
		{
			name: "empty values skipped in favor of later keys",
			record: Record{
				"master_metadata_album_album_name": "",
				"albumName":                        "Hejira",
				"ms_played":                        float64(0),
				"msPlayed":                         float64(30000),
			},
			wantAlbum:   "Hejira",
			wantMinutes: 0.5,
		},
		{
			name:   "missing everything",
			record: Record{"podcast": "something else"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album, artist, track, minutes := tt.record.Extract()
			if album != tt.wantAlbum {
				t.Errorf("album = %q, want %q", album, tt.wantAlbum)
			}
			if artist != tt.wantArtist {
				t.Errorf("artist = %q, want %q", artist, tt.wantArtist)
			}
			if track != tt.wantTrack {
				t.Errorf("track = %q, want %q", track, tt.wantTrack)
			}
			if minutes != tt.wantMinutes {
				t.Errorf("minutes = %v, want %v", minutes, tt.wantMinutes)
			}
		})
	}
}
