// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodlists/internal/models"
	"github.com/desertthunder/moodlists/internal/shared"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	spotifyBaseURL = "https://api.spotify.com/v1"

	// MaxArtistIDs is the most artist IDs the bulk artists endpoint accepts.
	MaxArtistIDs = 50

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// Owner represents a playlist owner.
type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Followers represents follower metadata.
type Followers struct {
	Total int `json:"total"`
}

// PlaylistTracksRef is the track summary embedded in playlist objects.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SearchPlaylist is one playlist item from a search response.
//
// Name, Owner and Tracks are pointers so that missing fields can be told apart from zero values.
type SearchPlaylist struct {
	ID     string             `json:"id"`
	Name   *string            `json:"name"`
	Owner  *Owner             `json:"owner"`
	Tracks *PlaylistTracksRef `json:"tracks"`
	Raw    json.RawMessage    `json:"-"`
}

// UnmarshalJSON decodes the item and keeps a copy of the raw payload.
func (p *SearchPlaylist) UnmarshalJSON(data []byte) error {
	type alias SearchPlaylist
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = SearchPlaylist(a)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// OwnerID returns the owner's ID, or an empty string when the owner is missing.
func (p *SearchPlaylist) OwnerID() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.ID
}

// TrackTotal returns the track count, or 0 when the tracks summary is missing.
func (p *SearchPlaylist) TrackTotal() int {
	if p.Tracks == nil {
		return 0
	}
	return p.Tracks.Total
}

// Record converts the item into a [models.PlaylistRecord] without a follower count.
func (p *SearchPlaylist) Record() models.PlaylistRecord {
	var name string
	if p.Name != nil {
		name = *p.Name
	}
	return models.PlaylistRecord{
		ID:         p.ID,
		Name:       name,
		OwnerID:    p.OwnerID(),
		TrackCount: p.TrackTotal(),
		Raw:        p.Raw,
	}
}

// SearchPlaylistPage is the playlists section of a search response. Items holds nil for null entries.
type SearchPlaylistPage struct {
	Items  []*SearchPlaylist `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Next   *string           `json:"next"`
}

// SearchResponse represents the body of GET /search with type=playlist.
type SearchResponse struct {
	Playlists *SearchPlaylistPage `json:"playlists"`
}

// PlaylistDetail represents the body of GET /playlists/{id}.
type PlaylistDetail struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Owner       *Owner             `json:"owner"`
	Followers   *Followers         `json:"followers"`
	Tracks      *PlaylistTracksRef `json:"tracks"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
}

// SpotifyTrack represents the subset of a track object used for genre resolution.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
}

// PlaylistTrackItem represents a track within a playlist context. Track is nil for removed or local items.
type PlaylistTrackItem struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// PlaylistTracks represents the body of GET /playlists/{id}/tracks.
type PlaylistTracks struct {
	Items []PlaylistTrackItem `json:"items"`
	Total int                 `json:"total"`
	Next  *string             `json:"next"`
}

// SeveralArtists represents the body of GET /artists. Unknown IDs come back as nil entries.
type SeveralArtists struct {
	Artists []*SpotifyArtist `json:"artists"`
}

// APIError is returned for any non-2xx catalog response.
type APIError struct {
	Endpoint      string
	StatusCode    int
	RetryAfter    time.Duration
	HasRetryAfter bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error: status %d for %s", e.StatusCode, e.Endpoint)
}

// Unwrap maps the status code onto a shared sentinel.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return shared.ErrRateLimited
	case http.StatusUnauthorized:
		return shared.ErrAuthFailed
	case http.StatusNotFound:
		return shared.ErrPlaylistNotFound
	default:
		return shared.ErrAPIRequest
	}
}

// isTimeout reports whether err is a client timeout or an expired deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseRetryAfter reads a Retry-After header expressed in whole seconds.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// SpotifyOpts configures a [SpotifyService].
type SpotifyOpts struct {
	BaseURL           string       // API root (default: https://api.spotify.com/v1)
	HTTPClient        *http.Client // Usually the token-attaching client from [ClientCredentials.Client]
	RequestsPerSecond float64      // Client-side pacing; 0 disables it
	Timeout           time.Duration
	Logger            *log.Logger
}

// SpotifyService implements [Catalog] against the Spotify Web API.
type SpotifyService struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewSpotifyService creates a new Spotify catalog client.
func NewSpotifyService(opts SpotifyOpts) *SpotifyService {
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	client := resty.NewWithClient(opts.HTTPClient).
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &SpotifyService{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		logger:  opts.Logger,
	}
}

// get performs a paced GET request and decodes a 2xx body into result.
func (s *SpotifyService) get(ctx context.Context, endpoint string, pathParams, queryParams map[string]string, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request pacing: %w", err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetQueryParams(queryParams).
		Get(endpoint)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %s: %w", shared.ErrTimeout, endpoint, err)
		}
		return fmt.Errorf("request failed: %w", err)
	}

	s.logger.Debug("catalog request", "endpoint", endpoint, "status", resp.StatusCode())

	if !resp.IsSuccess() {
		retryAfter, ok := parseRetryAfter(resp.Header().Get("Retry-After"))
		return &APIError{
			Endpoint:      endpoint,
			StatusCode:    resp.StatusCode(),
			RetryAfter:    retryAfter,
			HasRetryAfter: ok,
		}
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchPlaylists searches playlists matching query. limit is clamped to 1..50 and defaults to 10.
func (s *SpotifyService) SearchPlaylists(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := map[string]string{
		"q":     query,
		"type":  "playlist",
		"limit": strconv.Itoa(limit),
	}

	var response SearchResponse
	if err := s.get(ctx, "/search", nil, params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// PlaylistDetail retrieves a playlist by ID.
func (s *SpotifyService) PlaylistDetail(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: empty playlist ID", shared.ErrInvalidArgument)
	}

	var detail PlaylistDetail
	if err := s.get(ctx, "/playlists/{id}", map[string]string{"id": playlistID}, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// PlaylistTracks retrieves the first page of tracks for a playlist.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string) (*PlaylistTracks, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: empty playlist ID", shared.ErrInvalidArgument)
	}

	var tracks PlaylistTracks
	if err := s.get(ctx, "/playlists/{id}/tracks", map[string]string{"id": playlistID}, nil, &tracks); err != nil {
		return nil, err
	}
	return &tracks, nil
}

// SeveralArtists retrieves multiple artists by their IDs (up to 50).
func (s *SpotifyService) SeveralArtists(ctx context.Context, artistIDs []string) (*SeveralArtists, error) {
	if len(artistIDs) == 0 {
		return nil, fmt.Errorf("%w: no artist IDs provided", shared.ErrInvalidArgument)
	}
	if len(artistIDs) > MaxArtistIDs {
		return nil, fmt.Errorf("%w: maximum %d artist IDs allowed", shared.ErrInvalidArgument, MaxArtistIDs)
	}

	params := map[string]string{"ids": strings.Join(artistIDs, ",")}

	var response SeveralArtists
	if err := s.get(ctx, "/artists", nil, params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
