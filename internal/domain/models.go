package domain

import (
	"encoding/json"
	"math"
)

// AlbumListening aggregates how long a user listened to one album. The
// (Album, Artist) pair is the identity key within an aggregation run.
type AlbumListening struct {
	Album         string   `json:"album"`
	Artist        string   `json:"artist"`
	Minutes       float64  `json:"minutes_listened"`
	ReleaseDate   *Date    `json:"release_date"`
	MusicBrainzID string   `json:"musicbrainz_id"`
	Tracks        TrackSet `json:"tracks"`
}

// albumJSON is the persisted wire shape of AlbumListening.
type albumJSON struct {
	Album         string   `json:"album"`
	Artist        string   `json:"artist"`
	Minutes       float64  `json:"minutes_listened"`
	ReleaseDate   *Date    `json:"release_date"`
	MusicBrainzID *string  `json:"musicbrainz_id"`
	Tracks        TrackSet `json:"tracks"`
}

// MarshalJSON writes the persisted shape: minutes rounded to two decimals,
// tracks sorted, null for missing release date and MusicBrainz id.
func (a AlbumListening) MarshalJSON() ([]byte, error) {
	out := albumJSON{
		Album:       a.Album,
		Artist:      a.Artist,
		Minutes:     math.Round(a.Minutes*100) / 100,
		ReleaseDate: a.ReleaseDate,
		Tracks:      a.Tracks,
	}
	if a.MusicBrainzID != "" {
		out.MusicBrainzID = &a.MusicBrainzID
	}
	if out.Tracks == nil {
		out.Tracks = TrackSet{}
	}
	return json.Marshal(out)
}

func (a *AlbumListening) UnmarshalJSON(data []byte) error {
	var in albumJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	a.Album = in.Album
	a.Artist = in.Artist
	a.Minutes = in.Minutes
	a.ReleaseDate = in.ReleaseDate
	a.MusicBrainzID = ""
	if in.MusicBrainzID != nil {
		a.MusicBrainzID = *in.MusicBrainzID
	}
	a.Tracks = in.Tracks
	if a.Tracks == nil {
		a.Tracks = TrackSet{}
	}
	return nil
}

// Clone returns a copy of the album with its own track set.
func (a AlbumListening) Clone() AlbumListening {
	clone := a
	if a.ReleaseDate != nil {
		d := *a.ReleaseDate
		clone.ReleaseDate = &d
	}
	clone.Tracks = a.Tracks.Clone()
	return clone
}

// UpcomingBirthday pairs an album with the computed next occurrence of its
// release anniversary. Instances are recomputed per invocation and never
// mutated afterwards.
type UpcomingBirthday struct {
	Album     AlbumListening `json:"album"`
	NextDate  Date           `json:"next_date"`
	Age       int            `json:"age"`
	DaysUntil int            `json:"days_until"`
}
