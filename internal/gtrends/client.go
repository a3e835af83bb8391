// Package gtrends is a Google Trends client implementing trends.Adapter.
//
// Keyword queries go through the explore endpoint, which returns one widget
// per report type; each widget carries a token and a request payload that
// are replayed against the matching widgetdata endpoint. Trending searches
// come from the daily trending RSS feed.
package gtrends

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

// Default endpoints and request parameters.
const (
	DefaultBaseURL        = "https://trends.google.com"
	DefaultRSSURL         = "https://trends.google.com/trending/rss"
	DefaultHostLanguage   = "en-US"
	DefaultTimezoneOffset = 360
	DefaultTimeout        = 30 * time.Second
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) trendscope"

	pathExplore         = "/trends/api/explore"
	pathMultiline       = "/trends/api/widgetdata/multiline"
	pathComparedGeo     = "/trends/api/widgetdata/comparedgeo"
	pathRelatedSearches = "/trends/api/widgetdata/relatedsearches"

	widgetTimeSeries     = "TIMESERIES"
	widgetGeoMap         = "GEO_MAP"
	widgetRelatedQueries = "RELATED_QUERIES"
	widgetRelatedTopics  = "RELATED_TOPICS"

	maxBodyBytes = 8 << 20
)

var (
	// ErrStatus is returned for non-200 provider responses.
	ErrStatus = errors.New("unexpected provider status")
	// ErrDecode is returned when a provider payload cannot be parsed.
	ErrDecode = errors.New("decode provider response")
	// ErrNoWidget is returned when explore has no widget for the report type.
	ErrNoWidget = errors.New("no widget for report")
	// ErrNoSubjects is returned for queries without subjects.
	ErrNoSubjects = errors.New("query has no subjects")
	// ErrUnsupportedKind is returned for report kinds the client cannot serve.
	ErrUnsupportedKind = errors.New("unsupported report kind")
)

// Config holds client settings.
type Config struct {
	BaseURL        string
	RSSURL         string
	HostLanguage   string
	TimezoneOffset int
	Timeout        time.Duration
	UserAgent      string
}

// DefaultConfig returns the settings of the public Google Trends site.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		RSSURL:         DefaultRSSURL,
		HostLanguage:   DefaultHostLanguage,
		TimezoneOffset: DefaultTimezoneOffset,
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

// Client queries Google Trends. One Client is shared by all queries of a run.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. A nil httpClient gets one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	defaults := DefaultConfig()

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}

	if cfg.RSSURL == "" {
		cfg.RSSURL = defaults.RSSURL
	}

	if cfg.HostLanguage == "" {
		cfg.HostLanguage = defaults.HostLanguage
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if logger == nil {
		logger = slog.Default()
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// Query implements trends.Adapter.
func (c *Client) Query(ctx context.Context, q trends.Query) (*trends.Response, error) {
	if len(q.Subjects) == 0 {
		return nil, ErrNoSubjects
	}

	switch q.Kind {
	case trends.KindTrendingTopics:
		table, err := c.trendingSearches(ctx, q.Subjects[0])
		if err != nil {
			return nil, err
		}

		return &trends.Response{Table: table}, nil
	case trends.KindTimeSeries, trends.KindPlatformInterest:
		w, err := c.widget(ctx, q, widgetTimeSeries)
		if err != nil {
			return nil, err
		}

		table, err := c.interestOverTime(ctx, w, q.Subjects)
		if err != nil {
			return nil, err
		}

		return &trends.Response{Table: table}, nil
	case trends.KindRegionalInterest:
		w, err := c.widget(ctx, q, widgetGeoMap)
		if err != nil {
			return nil, err
		}

		table, err := c.interestByRegion(ctx, w, q.Subjects, q.Geo)
		if err != nil {
			return nil, err
		}

		return &trends.Response{Table: table}, nil
	case trends.KindRelatedQueries, trends.KindTopicBreakdown:
		id := widgetRelatedQueries
		if q.Kind == trends.KindTopicBreakdown {
			id = widgetRelatedTopics
		}

		w, err := c.widget(ctx, q, id)
		if err != nil {
			return nil, err
		}

		sections, err := c.relatedSearches(ctx, w, q.Kind)
		if err != nil {
			return nil, err
		}

		return &trends.Response{Sections: sections}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, q.Kind)
	}
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
	Geo     string `json:"geo"`
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

type widget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type exploreResponse struct {
	Widgets []widget `json:"widgets"`
}

// widget runs explore and returns the first widget whose id starts with id.
func (c *Client) widget(ctx context.Context, q trends.Query, id string) (widget, error) {
	items := make([]comparisonItem, len(q.Subjects))
	for i, s := range q.Subjects {
		items[i] = comparisonItem{Keyword: s, Time: q.Timeframe, Geo: q.Geo}
	}

	req, err := json.Marshal(exploreRequest{ComparisonItem: items, Category: q.Category, Property: q.Property})
	if err != nil {
		return widget{}, fmt.Errorf("%w: explore request: %w", ErrDecode, err)
	}

	params := c.baseParams()
	params.Set("req", string(req))

	var resp exploreResponse

	err = c.getJSON(ctx, http.MethodPost, pathExplore, params, &resp)
	if err != nil {
		return widget{}, err
	}

	for _, w := range resp.Widgets {
		if strings.HasPrefix(w.ID, id) {
			return w, nil
		}
	}

	return widget{}, fmt.Errorf("%w: %s", ErrNoWidget, id)
}

type timelinePoint struct {
	Time      string    `json:"time"`
	Value     []float64 `json:"value"`
	IsPartial bool      `json:"isPartial"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []timelinePoint `json:"timelineData"`
	} `json:"default"`
}

func (c *Client) interestOverTime(ctx context.Context, w widget, subjects []string) (*trends.Table, error) {
	var resp multilineResponse

	err := c.getJSON(ctx, http.MethodGet, pathMultiline, c.widgetParams(w, w.Request), &resp)
	if err != nil {
		return nil, err
	}

	table := &trends.Table{
		Index:   "date",
		Columns: append(append([]string{}, subjects...), "isPartial"),
	}

	for _, p := range resp.Default.TimelineData {
		secs, parseErr := strconv.ParseInt(p.Time, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: timeline time %q: %w", ErrDecode, p.Time, parseErr)
		}

		at := time.Unix(secs, 0).UTC()
		values := make(map[string]any, len(subjects)+1)

		for i, s := range subjects {
			if i < len(p.Value) {
				values[s] = p.Value[i]
			}
		}

		values["isPartial"] = p.IsPartial

		table.Rows = append(table.Rows, trends.Row{Key: timeKey(at), Time: at, Values: values})
	}

	return table, nil
}

type geoPoint struct {
	GeoCode string    `json:"geoCode"`
	GeoName string    `json:"geoName"`
	Value   []float64 `json:"value"`
}

type comparedGeoResponse struct {
	Default struct {
		GeoMapData []geoPoint `json:"geoMapData"`
	} `json:"default"`
}

func (c *Client) interestByRegion(ctx context.Context, w widget, subjects []string, geo string) (*trends.Table, error) {
	var req map[string]any

	err := json.Unmarshal(w.Request, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: geo widget request: %w", ErrDecode, err)
	}

	resolution := "COUNTRY"
	if geo != "" {
		resolution = "REGION"
	}

	req["resolution"] = resolution
	req["includeLowSearchVolumeGeos"] = false

	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: geo widget request: %w", ErrDecode, err)
	}

	var resp comparedGeoResponse

	err = c.getJSON(ctx, http.MethodGet, pathComparedGeo, c.widgetParams(w, raw), &resp)
	if err != nil {
		return nil, err
	}

	table := &trends.Table{Index: "geoName", Columns: append([]string{}, subjects...)}

	for _, p := range resp.Default.GeoMapData {
		values := make(map[string]any, len(subjects))

		for i, s := range subjects {
			if i < len(p.Value) {
				values[s] = p.Value[i]
			}
		}

		table.Rows = append(table.Rows, trends.Row{Key: p.GeoName, Values: values})
	}

	return table, nil
}

type rankedKeyword struct {
	Query          string  `json:"query"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formattedValue"`
	Topic          struct {
		Mid   string `json:"mid"`
		Title string `json:"title"`
		Type  string `json:"type"`
	} `json:"topic"`
}

type relatedSearchesResponse struct {
	Default struct {
		RankedList []struct {
			RankedKeyword []rankedKeyword `json:"rankedKeyword"`
		} `json:"rankedList"`
	} `json:"default"`
}

// relatedSearches maps rankedList[0] to "top" and rankedList[1] to "rising".
func (c *Client) relatedSearches(ctx context.Context, w widget, kind trends.Kind) (map[trends.TopicType]*trends.Table, error) {
	var resp relatedSearchesResponse

	err := c.getJSON(ctx, http.MethodGet, pathRelatedSearches, c.widgetParams(w, w.Request), &resp)
	if err != nil {
		return nil, err
	}

	sections := make(map[trends.TopicType]*trends.Table, len(trends.TopicTypes))

	for i, list := range resp.Default.RankedList {
		if i >= len(trends.TopicTypes) {
			break
		}

		sections[trends.TopicTypes[i]] = rankedTable(list.RankedKeyword, kind)
	}

	return sections, nil
}

func rankedTable(items []rankedKeyword, kind trends.Kind) *trends.Table {
	if kind == trends.KindTopicBreakdown {
		table := &trends.Table{Columns: []string{"topic_title", "topic_type", "value", "formattedValue"}}

		for _, it := range items {
			table.Rows = append(table.Rows, trends.Row{Values: map[string]any{
				"topic_title":    it.Topic.Title,
				"topic_type":     it.Topic.Type,
				"value":          it.Value,
				"formattedValue": it.FormattedValue,
			}})
		}

		return table
	}

	table := &trends.Table{Columns: []string{"query", "value"}}

	for _, it := range items {
		table.Rows = append(table.Rows, trends.Row{Values: map[string]any{
			"query": it.Query,
			"value": it.Value,
		}})
	}

	return table
}

// trendingSearches reads the daily trending feed for a country.
func (c *Client) trendingSearches(ctx context.Context, country string) (*trends.Table, error) {
	geo, err := GeoCode(country)
	if err != nil {
		return nil, err
	}

	feedURL := c.cfg.RSSURL + "?geo=" + url.QueryEscape(geo)

	parser := gofeed.NewParser()
	parser.Client = c.http
	parser.UserAgent = c.cfg.UserAgent

	c.logger.DebugContext(ctx, "provider request", "url", feedURL)

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("trending feed %s: %w", geo, err)
	}

	table := &trends.Table{Columns: []string{"Trending Topics"}}

	for _, item := range feed.Items {
		table.Rows = append(table.Rows, trends.Row{Values: map[string]any{"Trending Topics": item.Title}})
	}

	return table, nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("hl", c.cfg.HostLanguage)
	params.Set("tz", strconv.Itoa(c.cfg.TimezoneOffset))

	return params
}

func (c *Client) widgetParams(w widget, req json.RawMessage) url.Values {
	params := c.baseParams()
	params.Set("req", string(req))
	params.Set("token", w.Token)

	return params
}

// getJSON performs a request and decodes the XSSI-guarded JSON payload.
func (c *Client) getJSON(ctx context.Context, method, path string, params url.Values, out any) error {
	endpoint := c.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}

	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Language", c.cfg.HostLanguage)

	c.logger.DebugContext(ctx, "provider request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrStatus, path, resp.StatusCode)
	}

	err = json.Unmarshal(stripXSSI(body), out)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return nil
}

// stripXSSI drops the ")]}'" guard the provider prepends to JSON bodies.
func stripXSSI(body []byte) []byte {
	start := bytes.IndexByte(body, '{')
	if start < 0 {
		return body
	}

	return body[start:]
}

func timeKey(at time.Time) string {
	if at.Hour() == 0 && at.Minute() == 0 {
		return at.Format(time.DateOnly)
	}

	return at.Format("2006-01-02 15:04")
}
