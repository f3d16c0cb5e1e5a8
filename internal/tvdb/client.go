package tvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Language carries the language block attached to TVDB episode records.
type Language struct {
	Abbreviation string `json:"abbreviation"`
}

// Episode describes a single TVDB episode entry.
type Episode struct {
	ID            int64    `json:"id"`
	SeriesID      int64    `json:"seriesId"`
	SeasonID      int64    `json:"seasonId"`
	SeasonNumber  int      `json:"seasonNumber"`
	EpisodeNumber int      `json:"episodeNumber"`
	FirstAired    string   `json:"firstAired"`
	Language      Language `json:"language"`
	Overview      string   `json:"overview"`
	EpisodeName   string   `json:"episodeName"`
}

// SeriesDetail captures the full TVDB series payload, optionally with episodes.
type SeriesDetail struct {
	SeriesName string    `json:"seriesName"`
	Episodes   []Episode `json:"episodes"`
}

// Source defines the TVDB lookups used by episode maintenance.
type Source interface {
	Series(ctx context.Context, tvdbID int64, includeEpisodes bool) (*SeriesDetail, error)
}

// Client provides access to the TVDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TVDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tvdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvdb base url required")
	}
	language = strings.TrimSpace(language)
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Series fetches the series record for the supplied TVDB identifier. When
// includeEpisodes is set the payload carries the full episode listing.
func (c *Client) Series(ctx context.Context, tvdbID int64, includeEpisodes bool) (*SeriesDetail, error) {
	if tvdbID <= 0 {
		return nil, errors.New("tvdb id must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/series/" + strconv.FormatInt(tvdbID, 10))
	if err != nil {
		return nil, fmt.Errorf("parse tvdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	if includeEpisodes {
		params.Set("episodes", "1")
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("tvdb series %d not found", tvdbID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("tvdb series lookup returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload SeriesDetail
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tvdb response: %w", err)
	}
	return &payload, nil
}
