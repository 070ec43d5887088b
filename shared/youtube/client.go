package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ctr-optimizer/internal/models"
)

// MaxBatchSize is the most IDs videos.list and channels.list accept per call.
const MaxBatchSize = 50

// SearchQuery describes one search.list call.
type SearchQuery struct {
	Query             string
	PublishedAfter    time.Time
	MaxResults        int64
	RegionCode        string
	RelevanceLanguage string
}

type Client struct {
	service *youtube.Service
}

// NewClient creates a YouTube Data API client authenticated with an API key.
// Extra options are appended, which lets tests point the client at a fake endpoint.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("YouTube API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// SearchVideos returns videos matching q, ordered by view count as the API returns them.
// Items without a video ID are skipped.
func (c *Client) SearchVideos(ctx context.Context, q SearchQuery) ([]models.SearchHit, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Type("video").
		Q(q.Query).
		Order("viewCount").
		MaxResults(q.MaxResults).
		PublishedAfter(q.PublishedAfter.UTC().Format(time.RFC3339))
	if q.RegionCode != "" {
		call = call.RegionCode(q.RegionCode)
	}
	if q.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(q.RelevanceLanguage)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search %q failed: %w", q.Query, err)
	}

	hits := make([]models.SearchHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		hit := models.SearchHit{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			hit.ChannelID = item.Snippet.ChannelId
			hit.Title = item.Snippet.Title
			hit.ChannelTitle = item.Snippet.ChannelTitle
			hit.PublishedAt = parseTime(item.Snippet.PublishedAt)
		}
		hits = append(hits, hit)
	}

	return hits, nil
}

// VideoStats looks up snippet and statistics for ids, MaxBatchSize at a time, in sequence.
func (c *Client) VideoStats(ctx context.Context, ids []string) ([]models.VideoRecord, error) {
	var out []models.VideoRecord

	for i := 0; i < len(ids); i += MaxBatchSize {
		end := min(i+MaxBatchSize, len(ids))

		resp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
			Id(strings.Join(ids[i:end], ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get video stats for batch %d-%d: %w", i, end, err)
		}

		for _, item := range resp.Items {
			rec := models.VideoRecord{VideoID: item.Id}
			if item.Snippet != nil {
				rec.Title = item.Snippet.Title
				rec.ChannelID = item.Snippet.ChannelId
				rec.ChannelTitle = item.Snippet.ChannelTitle
				rec.PublishedAt = parseTime(item.Snippet.PublishedAt)
			}
			if item.Statistics != nil {
				rec.ViewCount = int64(item.Statistics.ViewCount)
				rec.LikeCount = int64(item.Statistics.LikeCount)
				rec.CommentCount = int64(item.Statistics.CommentCount)
			}
			out = append(out, rec)
		}
	}

	log.Debug().Int("requested", len(ids)).Int("resolved", len(out)).Msg("video stats fetched")
	return out, nil
}

// ChannelStats looks up snippet and statistics for channel ids, MaxBatchSize at a time.
func (c *Client) ChannelStats(ctx context.Context, ids []string) ([]models.ChannelRecord, error) {
	var out []models.ChannelRecord

	for i := 0; i < len(ids); i += MaxBatchSize {
		end := min(i+MaxBatchSize, len(ids))

		resp, err := c.service.Channels.List([]string{"snippet", "statistics"}).
			Id(strings.Join(ids[i:end], ",")).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get channel stats for batch %d-%d: %w", i, end, err)
		}

		for _, item := range resp.Items {
			rec := models.ChannelRecord{ChannelID: item.Id}
			if item.Snippet != nil {
				rec.ChannelTitle = item.Snippet.Title
			}
			if item.Statistics != nil {
				rec.SubscriberCount = int64(item.Statistics.SubscriberCount)
				rec.ChannelViewCount = int64(item.Statistics.ViewCount)
			}
			out = append(out, rec)
		}
	}

	log.Debug().Int("requested", len(ids)).Int("resolved", len(out)).Msg("channel stats fetched")
	return out, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
