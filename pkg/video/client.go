package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	// Region scopes popular listings; defaults to "JP".
	Region string
}

// Client talks to the video provider.
type Client struct {
	http *http.Client
	opts Options
}

// NewClient builds a Client with a 15 second request timeout.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Region == "" {
		opts.Region = "JP"
	}
	return &Client{
		http: &http.Client{Timeout: 15 * time.Second},
		opts: opts,
	}
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet snippet `json:"snippet"`
}

type popularItem struct {
	ID      string  `json:"id"`
	Snippet snippet `json:"snippet"`
}

type snippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnails   struct {
		High   struct{ URL string `json:"url"` } `json:"high"`
		Medium struct{ URL string `json:"url"` } `json:"medium"`
	} `json:"thumbnails"`
}

func (s snippet) thumbnail() string {
	if s.Thumbnails.High.URL != "" {
		return s.Thumbnails.High.URL
	}
	return s.Thumbnails.Medium.URL
}

type details struct {
	Duration  string
	ViewCount string
	LikeCount string
}

// Search runs a relevance-ordered video search. pageToken continues a
// previous page; durationFilter is one of "", "short", "medium", "long".
func (c *Client) Search(ctx context.Context, query string, pageSize int, pageToken, durationFilter string) (SearchResult, error) {
	if c.opts.APIKey == "" {
		return SearchResult{}, errors.New("video: API key is not configured")
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", query)
	q.Set("type", "video")
	q.Set("maxResults", fmt.Sprint(pageSize))
	q.Set("key", c.opts.APIKey)
	q.Set("order", "relevance")
	q.Set("videoEmbeddable", "true")
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	if durationFilter != "" {
		q.Set("videoDuration", durationFilter)
	}

	var body struct {
		Items         []searchItem `json:"items"`
		NextPageToken string       `json:"nextPageToken"`
		PageInfo      struct {
			TotalResults int `json:"totalResults"`
		} `json:"pageInfo"`
	}
	if err := c.get(ctx, "/search", q, &body); err != nil {
		return SearchResult{}, err
	}

	ids := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		ids = append(ids, item.ID.VideoID)
	}
	det, err := c.videoDetails(ctx, ids)
	if err != nil {
		return SearchResult{}, err
	}

	videos := make([]Video, 0, len(body.Items))
	for i, item := range body.Items {
		videos = append(videos, assemble(item.ID.VideoID, item.Snippet, det, i))
	}
	return SearchResult{
		Videos:        videos,
		NextPageToken: body.NextPageToken,
		TotalResults:  body.PageInfo.TotalResults,
	}, nil
}

// Popular lists the region's most popular videos, optionally scoped to a
// category.
func (c *Client) Popular(ctx context.Context, categoryID string, pageSize int, durationFilter string) (SearchResult, error) {
	if c.opts.APIKey == "" {
		return SearchResult{}, errors.New("video: API key is not configured")
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("chart", "mostPopular")
	q.Set("regionCode", c.opts.Region)
	q.Set("maxResults", fmt.Sprint(pageSize))
	q.Set("key", c.opts.APIKey)
	q.Set("videoEmbeddable", "true")
	if categoryID != "" {
		q.Set("videoCategoryId", categoryID)
	}
	if durationFilter != "" {
		q.Set("videoDuration", durationFilter)
	}

	var body struct {
		Items         []popularItem `json:"items"`
		NextPageToken string        `json:"nextPageToken"`
		PageInfo      struct {
			TotalResults int `json:"totalResults"`
		} `json:"pageInfo"`
	}
	if err := c.get(ctx, "/videos", q, &body); err != nil {
		return SearchResult{}, err
	}

	ids := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		ids = append(ids, item.ID)
	}
	det, err := c.videoDetails(ctx, ids)
	if err != nil {
		return SearchResult{}, err
	}

	videos := make([]Video, 0, len(body.Items))
	for i, item := range body.Items {
		videos = append(videos, assemble(item.ID, item.Snippet, det, i))
	}
	return SearchResult{
		Videos:        videos,
		NextPageToken: body.NextPageToken,
		TotalResults:  body.PageInfo.TotalResults,
	}, nil
}

// videoDetails enriches ids with formatted duration and counts.
func (c *Client) videoDetails(ctx context.Context, ids []string) ([]details, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("part", "statistics,contentDetails")
	q.Set("id", strings.Join(ids, ","))
	q.Set("key", c.opts.APIKey)

	var body struct {
		Items []struct {
			ContentDetails struct {
				Duration string `json:"duration"`
			} `json:"contentDetails"`
			Statistics struct {
				ViewCount string `json:"viewCount"`
				LikeCount string `json:"likeCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/videos", q, &body); err != nil {
		return nil, err
	}
	out := make([]details, 0, len(body.Items))
	for _, item := range body.Items {
		out = append(out, details{
			Duration:  FormatDuration(item.ContentDetails.Duration),
			ViewCount: FormatCount(item.Statistics.ViewCount),
			LikeCount: FormatCount(item.Statistics.LikeCount),
		})
	}
	return out, nil
}

func assemble(id string, s snippet, det []details, i int) Video {
	v := Video{
		ID:           id,
		VideoID:      id,
		Title:        s.Title,
		Description:  s.Description,
		Thumbnail:    s.thumbnail(),
		ChannelTitle: s.ChannelTitle,
		PublishedAt:  s.PublishedAt,
		Duration:     "N/A",
		ViewCount:    "N/A",
		LikeCount:    "N/A",
	}
	if i < len(det) {
		v.Duration = det[i].Duration
		v.ViewCount = det[i].ViewCount
		v.LikeCount = det[i].LikeCount
	}
	return v
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("video: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("video: %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("video: %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("video: decode %s response: %w", path, err)
	}
	return nil
}
