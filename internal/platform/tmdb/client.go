package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	ImageBaseURL   = "https://image.tmdb.org/t/p"
)

// StatusError is returned for a non-200 response that was not retried away.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	// backoff is the wait before the first retry; it doubles after that.
	backoff time.Duration
}

func NewClient(apiKey, baseURL string, rps int, maxRetries int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 4
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:     apiKey,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: max(maxRetries, 0),
		backoff:    time.Second,
	}
}

type PopularResult struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// PopularPage matches movie/popular.
type PopularPage struct {
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Results    []PopularResult `json:"results"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Details matches movie/{id}.
type Details struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	Runtime      *int    `json:"runtime"`
	Genres       []Genre `json:"genres"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
}

type CastCredit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

// Credits matches movie/{id}/credits.
type Credits struct {
	Cast []CastCredit `json:"cast"`
}

type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Videos matches movie/{id}/videos.
type Videos struct {
	Results []Video `json:"results"`
}

func (c *Client) Popular(ctx context.Context, page int) (*PopularPage, error) {
	var res PopularPage
	if err := c.get(ctx, "/movie/popular", url.Values{"page": {fmt.Sprint(page)}}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Details(ctx context.Context, id int64) (*Details, error) {
	var res Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Credits(ctx context.Context, id int64) (*Credits, error) {
	var res Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Videos(ctx context.Context, id int64) (*Videos, error) {
	var res Videos
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ImageURL joins a TMDb image path onto the CDN at the given size
// ("w200", "w500", "original"). An empty path stays empty.
func ImageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return ImageBaseURL + "/" + size + path
}

// TrailerURL returns the embed URL of the first YouTube trailer, or "".
func TrailerURL(videos []Video) string {
	for _, v := range videos {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return "https://www.youtube.com/embed/" + v.Key
		}
	}
	return ""
}

func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", "en-US")
	u := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := c.backoff << uint(i-1)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, u, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, u string, target any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return false, nil
}
