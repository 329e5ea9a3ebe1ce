package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const timeFormat = "2006-01-02T15:04:05Z"

// Client talks to The Odds API (v4). Credentials and endpoints are explicit
// configuration; nothing here reads the environment.
type Client struct {
	baseURL string
	apiKey  string
	regions string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL, apiKey, regions string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		regions: regions,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// Events lists the games for a sport commencing inside [from, to].
func (c *Client) Events(ctx context.Context, sport string, from, to time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("dateFormat", "iso")
	q.Set("commenceTimeFrom", from.UTC().Format(timeFormat))
	q.Set("commenceTimeTo", to.UTC().Format(timeFormat))

	endpoint := fmt.Sprintf("%s/sports/%s/events?%s", c.baseURL, sport, q.Encode())

	var events []Event
	if err := c.getJSON(ctx, endpoint, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// EventOdds fetches one event's odds for a single market in American
// format. A 422 from the provider means the market isn't posted for that
// event yet; that is the normal pre-game state and maps to (nil, nil).
func (c *Client) EventOdds(ctx context.Context, sport, eventID, market string) (*EventOdds, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.regions)
	q.Set("markets", market)
	q.Set("oddsFormat", "american")

	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds?%s", c.baseURL, sport, eventID, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("event odds request: %w", err)
	}
	defer resp.Body.Close()

	c.logQuota(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		var odds EventOdds
		if err := json.NewDecoder(resp.Body).Decode(&odds); err != nil {
			return nil, fmt.Errorf("decode event odds: %w", err)
		}
		return &odds, nil
	case http.StatusUnprocessableEntity:
		return nil, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("event odds: unexpected status %d: %s", resp.StatusCode, body)
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logQuota(resp)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}

// logQuota surfaces the provider's request-quota headers; running dry
// mid-day is the most common operational failure with this API.
func (c *Client) logQuota(resp *http.Response) {
	remaining := resp.Header.Get("X-Requests-Remaining")
	if remaining == "" {
		return
	}
	c.log.Debug("odds api quota",
		zap.String("remaining", remaining),
		zap.String("used", resp.Header.Get("X-Requests-Used")),
	)
}

// DayWindow returns the [start, end] bounds of the calendar day containing
// now in loc. The provider filters on UTC instants, so the caller passes
// these straight through; the original feed pins the day to US/Eastern.
func DayWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 0, loc)
	return start, end
}
