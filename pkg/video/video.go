// Package video is the read-only video provider client: search, popular
// listings, and the per-video detail enrichment the UI renders.
package video

import (
	"encoding/json"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/timeutil"
)

// Video is one enriched search result. Duration, ViewCount and LikeCount
// are pre-formatted display strings.
type Video struct {
	ID           string `json:"id"`
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Duration     string `json:"duration"`
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
}

// SearchResult is one page of results plus the continuation token.
type SearchResult struct {
	Videos        []Video `json:"videos"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	TotalResults  int     `json:"totalResults"`
}

// Favorite is a locally saved video reference.
type Favorite struct {
	ID           string             `json:"id"`
	VideoID      string             `json:"videoId"`
	Title        string             `json:"title"`
	Thumbnail    string             `json:"thumbnail"`
	ChannelTitle string             `json:"channelTitle"`
	AddedAt      timeutil.Timestamp `json:"addedAt"`
	Notes        string             `json:"notes,omitempty"`
}

// NewFavorite saves a video reference with a fresh id.
func NewFavorite(v Video, notes string) *Favorite {
	return &Favorite{
		ID:           uuid.NewString(),
		VideoID:      v.VideoID,
		Title:        v.Title,
		Thumbnail:    v.Thumbnail,
		ChannelTitle: v.ChannelTitle,
		AddedAt:      timeutil.Now(),
		Notes:        notes,
	}
}

// DecodeFavorites decodes the stored favorites list, dropping malformed
// entries.
func DecodeFavorites(data []byte) []*Favorite {
	out := []*Favorite{}
	if len(data) == 0 {
		return out
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return out
	}
	for _, raw := range raws {
		var f Favorite
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		if f.ID == "" || f.VideoID == "" {
			continue
		}
		out = append(out, &f)
	}
	return out
}
