// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort        = "8080"
	DefaultDBName      = "albumdays.db"
	DefaultDataDirName = ".albumdays"
	DefaultOutputName  = "albums.json"
)

// Aggregation defaults
const (
	DefaultMinMinutes = 60.0
)

// MusicBrainz lookup
const (
	DefaultMusicBrainzURL = "https://musicbrainz.org/ws/2"
	DefaultUserAgent      = "albumdays/1.0 (https://github.com/cesargomez89/albumdays)"
	DefaultLookupPause    = 1100 * time.Millisecond
	LookupLimit           = 5
	RequestTimeout        = 30 * time.Second
	MinRequestInterval    = 1050 * time.Millisecond
	DefaultRetryCount     = 3
	DefaultRetryBase      = 1 * time.Second
	DefaultCacheTTL       = 30 * 24 * time.Hour
)

// Anniversary reminders
const (
	DefaultHorizonDays = 30
	NotifyInterval     = 24 * time.Hour
	NotifyStartDelay   = 10 * time.Second
)

// NotifyDaysBefore lists the days-before triggers for advance reminders, in
// addition to the day-of reminder.
var NotifyDaysBefore = []int{7, 1}

// Substrings that identify streaming-history JSON entries inside a ZIP
// archive. Matched against lowercased entry names.
var HistoryNamePatterns = []string{
	"endsong_",
	"streaming_history_audio",
	"streaminghistory",
}

// File Extensions
const (
	ExtJSON = ".json"
	ExtZIP  = ".zip"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Web form
const (
	MaxUploadBytes = 256 << 20
)
