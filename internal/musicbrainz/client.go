// Package musicbrainz resolves album titles to release-group ids and
// original release dates using the MusicBrainz search API.
package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cesargomez89/albumdays/internal/constants"
	"github.com/cesargomez89/albumdays/internal/domain"
	"github.com/cesargomez89/albumdays/internal/httpclient"
	"github.com/cesargomez89/albumdays/internal/logger"
)

// Result is the outcome of one release lookup: a release-group id and the
// earliest first-release date, either of which may be absent. A Result with
// neither field set is a cached "not found".
type Result struct {
	ID   string       `json:"id,omitempty"`
	Date *domain.Date `json:"date,omitempty"`
}

// Client queries the MusicBrainz web service. Requests are paced and retried
// by the underlying transport; HTTP and decode failures are returned to the
// caller.
type Client struct {
	baseURL   string
	userAgent string
	transport *httpclient.Client
	log       *logger.Logger
}

// NewClient creates a MusicBrainz client against baseURL (no trailing slash
// required). httpClient may be nil to use a default with a bounded timeout.
func NewClient(baseURL string, httpClient *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: constants.DefaultUserAgent,
		transport: httpclient.NewClient(httpClient, constants.MinRequestInterval),
		log:       log,
	}
}

// LookupVariant searches release groups for one exact title/artist pair and
// returns the candidate with the earliest parseable first-release date, ties
// going to the first encountered. A response without any dated candidate
// yields an empty Result, not an error.
func (c *Client) LookupVariant(ctx context.Context, title, artist string) (Result, error) {
	query := fmt.Sprintf(`release:%q AND artist:%q`, title, artist)
	params := url.Values{
		"fmt":   []string{"json"},
		"limit": []string{strconv.Itoa(constants.LookupLimit)},
		"query": []string{query},
	}
	u := c.baseURL + "/release-group/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("musicbrainz returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	var best Result
	for _, group := range payload.ReleaseGroups {
		date, ok := parseReleaseDate(group.FirstReleaseDate)
		if !ok {
			if group.FirstReleaseDate != "" {
				c.log.Debug("Unable to parse release date", "raw", group.FirstReleaseDate, "title", title)
			}
			continue
		}
		if best.Date == nil || date.Before(*best.Date) {
			best = Result{ID: group.ID, Date: &date}
		}
	}
	return best, nil
}

// parseReleaseDate parses the YYYY[-MM[-DD]] dates MusicBrainz reports.
// A missing month or day defaults to 1.
func parseReleaseDate(raw string) (domain.Date, bool) {
	if raw == "" {
		return domain.Date{}, false
	}
	parts := strings.Split(raw, "-")
	if len(parts) > 3 {
		return domain.Date{}, false
	}

	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return domain.Date{}, false
		}
		nums[i] = n
	}

	year, month, day := nums[0], 1, 1
	if len(nums) > 1 {
		month = nums[1]
	}
	if len(nums) > 2 {
		day = nums[2]
	}

	date := domain.NewDate(year, time.Month(month), day)
	// time.Date normalizes out-of-range components; a changed round-trip
	// means the raw value was not a real calendar date.
	if domain.DateOf(date.Time()) != date || year < 1 {
		return domain.Date{}, false
	}
	return date, true
}

type searchResponse struct {
	ReleaseGroups []releaseGroup `json:"release-groups"`
}

type releaseGroup struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	FirstReleaseDate string `json:"first-release-date"`
}
