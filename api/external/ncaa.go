/* ncaa.go
 * Contains the client used to fetch scoreboards from the NCAA casablanca api, and the conversion of scoreboard games
 * into bracket game results
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"bracket-pool/api/bracket"
	"bracket-pool/metrics"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://data.ncaa.com"
	userAgent      = "BracketPool/1.0"
	dayLayout      = "2006-01-02"
	urlDayLayout   = "2006/01/02"
	// short names at least this long are replaced with the 6 character name
	maxShortName = 20
	// number of days fetched at once
	fetchConcurrency = 4
)

// ClientConfig holds the settings for a Client. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL    string
	RPS        float64
	Retries    int
	Backoff    time.Duration
	CacheTTL   time.Duration
	CacheSize  int
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client fetches NCAA scoreboards. Requests are rate limited, retried on transient failures and cached per day.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retries int
	backoff time.Duration
	cache   *expirable.LRU[string, Scoreboard]
	log     *logrus.Entry
}

// StatusError is returned when the scoreboard responds with a non 200 status
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status code %d", e.URL, e.StatusCode)
}

// retryable reports whether a failed request is worth retrying
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 2
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 64
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		retries: cfg.Retries,
		backoff: cfg.Backoff,
		cache:   expirable.NewLRU[string, Scoreboard](cfg.CacheSize, nil, cfg.CacheTTL),
		log:     cfg.Logger.WithField("component", "ncaa"),
	}
}

// ScoreboardURL returns the scoreboard url for a day
func (c *Client) ScoreboardURL(day time.Time) string {
	return fmt.Sprintf("%s/casablanca/scoreboard/basketball-men/d1/%s/scoreboard.json", c.baseURL, day.Format(urlDayLayout))
}

// FetchScoreboard fetches the scoreboard for a single day
// Preconditions: Receives a context and the day to fetch, only the date part is used
// Postconditions: Returns the decoded scoreboard, from the cache if it was fetched within the cache ttl, or an error
// once all retries have failed
func (c *Client) FetchScoreboard(ctx context.Context, day time.Time) (Scoreboard, error) {
	key := day.Format(dayLayout)
	if sb, ok := c.cache.Get(key); ok {
		metrics.ScoreboardCache.WithLabelValues(metrics.OutcomeHit).Inc()
		return sb, nil
	}
	metrics.ScoreboardCache.WithLabelValues(metrics.OutcomeMiss).Inc()

	url := c.ScoreboardURL(day)
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := c.backoff << (attempt - 1)
			c.log.WithFields(logrus.Fields{"day": key, "attempt": attempt, "wait": wait}).Warnf("Retrying scoreboard fetch: %v", lastErr)
			metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeRetry).Inc()
			select {
			case <-ctx.Done():
				return Scoreboard{}, ctx.Err()
			case <-time.After(wait):
			}
		}

		body, err := c.get(ctx, url)
		if err != nil {
			lastErr = err
			if !retryable(err) {
				break
			}
			continue
		}

		var sb Scoreboard
		if err := json.Unmarshal(body, &sb); err != nil {
			metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
			return Scoreboard{}, fmt.Errorf("error decoding scoreboard for %s: %w", key, err)
		}
		metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeOK).Inc()
		c.cache.Add(key, sb)
		return sb, nil
	}

	metrics.UpstreamRequests.WithLabelValues(metrics.OutcomeError).Inc()
	return Scoreboard{}, fmt.Errorf("error fetching scoreboard for %s: %w", key, lastErr)
}

// get performs a single rate limited GET request and returns the (decompressed) body
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	response, err := c.http.Do(request)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: response.StatusCode, URL: url}
	}

	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// FetchTournament fetches every tournament day in parallel
// Preconditions: Receives a context and the days the tournament is played on
// Postconditions: Returns the bracket games of every day that could be fetched, in day order, and the days that could
// not be fetched. An error is only returned if the context is cancelled.
func (c *Client) FetchTournament(ctx context.Context, days []time.Time) (DayReport, error) {
	perDay := make([][]bracket.GameResult, len(days))
	failed := make([]bool, len(days))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			sb, err := c.FetchScoreboard(gctx, day)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.log.WithField("day", day.Format(dayLayout)).Warnf("Tournament day unavailable: %v", err)
				mu.Lock()
				failed[i] = true
				mu.Unlock()
				return nil
			}
			perDay[i] = GamesFromScoreboard(sb)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DayReport{}, err
	}

	var report DayReport
	for i, games := range perDay {
		if failed[i] {
			report.FailedDays = append(report.FailedDays, days[i].Format(dayLayout))
			continue
		}
		report.Games = append(report.Games, games...)
	}
	return report, nil
}

// GamesFromScoreboard converts the bracket games on a scoreboard into game results. Games without a bracket id are not
// part of the tournament and are dropped.
func GamesFromScoreboard(sb Scoreboard) []bracket.GameResult {
	var games []bracket.GameResult
	for _, w := range sb.Games {
		g := w.Game
		if g.BracketID == "" {
			continue
		}
		games = append(games, bracket.GameResult{
			BracketID: g.BracketID,
			Region:    g.BracketRegion,
			Away:      sideFrom(g.Away),
			Home:      sideFrom(g.Home),
		})
	}
	return games
}

func sideFrom(t TeamInfo) bracket.Side {
	name := t.Names.Short
	if len(name) >= maxShortName && t.Names.Char6 != "" {
		name = t.Names.Char6
	}
	return bracket.Side{
		Name:   name,
		Seed:   strings.TrimSpace(t.Seed),
		Score:  t.Score,
		Winner: t.Winner,
	}
}

// ParseDays parses a comma separated list of YYYY-MM-DD dates
func ParseDays(list string) ([]time.Time, error) {
	var days []time.Time
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		day, err := time.Parse(dayLayout, s)
		if err != nil {
			return nil, fmt.Errorf("invalid tournament day %q: %w", s, err)
		}
		days = append(days, day)
	}
	return days, nil
}
