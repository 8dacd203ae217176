// Package birthdays computes upcoming release-date anniversaries for
// aggregated albums and formats reminder messages.
package birthdays

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cesargomez89/albumdays/internal/domain"
)

// TriggerDayOf is the notification-key trigger for the day-of reminder.
const TriggerDayOf = "day"

// NextBirthday returns the next calendar occurrence of the release
// anniversary on or after today.
func NextBirthday(release, today domain.Date) domain.Date {
	candidate := anniversaryIn(release, today.Year)
	if candidate.Before(today) {
		candidate = anniversaryIn(release, today.Year+1)
	}
	return candidate
}

// anniversaryIn maps the release's month and day into the given year. A
// February 29 release falls on February 28 when the year has no leap day.
func anniversaryIn(release domain.Date, year int) domain.Date {
	if release.Month == time.February && release.Day == 29 && !domain.IsLeapYear(year) {
		return domain.NewDate(year, time.February, 28)
	}
	return domain.NewDate(year, release.Month, release.Day)
}

// Upcoming computes the anniversaries falling within withinDays of today,
// inclusive. Albums without a release date are ignored. Results are sorted
// by days-until, then artist, then album, and are fresh copies each call.
func Upcoming(albums []domain.AlbumListening, today domain.Date, withinDays int) []domain.UpcomingBirthday {
	if today.IsZero() {
		today = domain.Today()
	}

	var upcoming []domain.UpcomingBirthday
	for _, album := range albums {
		if album.ReleaseDate == nil {
			continue
		}
		next := NextBirthday(*album.ReleaseDate, today)
		daysUntil := today.DaysUntil(next)
		if daysUntil > withinDays {
			continue
		}
		upcoming = append(upcoming, domain.UpcomingBirthday{
			Album:     album.Clone(),
			NextDate:  next,
			Age:       next.Year - album.ReleaseDate.Year,
			DaysUntil: daysUntil,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		if a.DaysUntil != b.DaysUntil {
			return a.DaysUntil < b.DaysUntil
		}
		if a.Album.Artist != b.Album.Artist {
			return a.Album.Artist < b.Album.Artist
		}
		return a.Album.Album < b.Album.Album
	})
	return upcoming
}

// NotificationKey builds the stable dedup key for one reminder:
// {chat}|{artist}|{album}|{year}|{trigger}. The trigger is TriggerDayOf or
// TriggerDaysBefore(n).
func NotificationKey(chatID int64, event domain.UpcomingBirthday, trigger string) string {
	return fmt.Sprintf("%d|%s|%s|%d|%s",
		chatID, event.Album.Artist, event.Album.Album, event.NextDate.Year, trigger)
}

// TriggerDaysBefore returns the trigger token for an advance reminder sent n
// days before the anniversary.
func TriggerDaysBefore(n int) string {
	return strconv.Itoa(n)
}

// FormatMessage renders the reminder text for one upcoming anniversary.
func FormatMessage(event domain.UpcomingBirthday) string {
	var prefix string
	switch event.DaysUntil {
	case 0:
		prefix = "The album has its birthday today!"
	case 1:
		prefix = "The album has its birthday tomorrow"
	default:
		prefix = fmt.Sprintf("Album birthday in %d days", event.DaysUntil)
	}

	released := ""
	if event.Album.ReleaseDate != nil {
		released = event.Album.ReleaseDate.String()
	}
	return fmt.Sprintf("%s\n%s — %s\nThe album turns %d (%s)\nYou listened for %.0f minutes",
		prefix, event.Album.Artist, event.Album.Album, event.Age, released, event.Album.Minutes)
}
