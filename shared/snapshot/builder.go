// Package snapshot builds the trend snapshot from YouTube data and keeps the
// latest one in the store behind a rebuild cooldown.
package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"ctr-optimizer/internal/models"
	"ctr-optimizer/shared/textstats"
	"ctr-optimizer/shared/youtube"
)

const (
	Version = 1

	DefaultRefreshDays = 21
	DefaultWindowDays  = 30

	MaxSearchCalls    = 20
	ResultsPerQuery   = 12
	MinVideoViews     = 50000
	MinChannelSubs    = 50000
	RegionCode        = "BR"
	RelevanceLanguage = "pt"

	TopWords     = 30
	TopBigrams   = 25
	TopTrigrams  = 20
	TopTemplates = 10
	MaxSamples   = 30
)

// Source is the slice of the YouTube API the builder needs.
type Source interface {
	SearchVideos(ctx context.Context, q youtube.SearchQuery) ([]models.SearchHit, error)
	VideoStats(ctx context.Context, ids []string) ([]models.VideoRecord, error)
	ChannelStats(ctx context.Context, ids []string) ([]models.ChannelRecord, error)
}

type Builder struct {
	source Source
	seeds  []Seed
	now    func() time.Time
}

func NewBuilder(source Source) *Builder {
	return &Builder{source: source, seeds: Seeds, now: time.Now}
}

// Build samples the seed queries, keeps popular videos from popular channels and
// aggregates their titles. Any API failure aborts the whole build.
func (b *Builder) Build(ctx context.Context, refreshDays, windowDays int) (*models.Snapshot, error) {
	if refreshDays <= 0 {
		refreshDays = DefaultRefreshDays
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	now := b.now().UTC()
	publishedAfter := now.Add(-time.Duration(refreshDays) * 24 * time.Hour)
	queries := flattenSeeds(b.seeds, MaxSearchCalls)

	log.Info().Int("queries", len(queries)).Int("refreshDays", refreshDays).Msg("building snapshot")

	candidates, err := b.search(ctx, queries, publishedAfter)
	if err != nil {
		return nil, err
	}
	videoIDs := make([]string, 0, len(candidates))
	for _, h := range candidates {
		videoIDs = append(videoIDs, h.VideoID)
	}

	videoRecs, err := b.source.VideoStats(ctx, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("video stats: %w", err)
	}
	videos := make(map[string]models.VideoRecord, len(videoRecs))
	var channelIDs []string
	seenChannel := make(map[string]bool)
	for _, v := range videoRecs {
		videos[v.VideoID] = v
		if v.ChannelID != "" && !seenChannel[v.ChannelID] {
			seenChannel[v.ChannelID] = true
			channelIDs = append(channelIDs, v.ChannelID)
		}
	}

	channelRecs, err := b.source.ChannelStats(ctx, channelIDs)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}
	channels := make(map[string]models.ChannelRecord, len(channelRecs))
	for _, c := range channelRecs {
		channels[c.ChannelID] = c
	}

	var kept []models.Sample
	for _, id := range videoIDs {
		v, ok := videos[id]
		if !ok {
			continue
		}
		ch, ok := channels[v.ChannelID]
		if !ok || v.ViewCount < MinVideoViews || ch.SubscriberCount < MinChannelSubs {
			continue
		}
		channelTitle := ch.ChannelTitle
		if channelTitle == "" {
			channelTitle = v.ChannelTitle
		}
		kept = append(kept, models.Sample{
			Title:           v.Title,
			ViewCount:       v.ViewCount,
			ChannelTitle:    channelTitle,
			SubscriberCount: ch.SubscriberCount,
		})
	}

	snap := &models.Snapshot{
		Version:     Version,
		GeneratedAt: now,
		ValidUntil:  now.Add(time.Duration(windowDays) * 24 * time.Hour),
		RefreshDays: refreshDays,
		WindowDays:  windowDays,
		Filters: models.Filters{
			RegionCode:        RegionCode,
			RelevanceLanguage: RelevanceLanguage,
			MinVideoViews:     MinVideoViews,
			MinChannelSubs:    MinChannelSubs,
		},
		Aggregates:      Aggregate(kept),
		Samples:         topSamples(kept, MaxSamples),
		TotalCandidates: len(kept),
	}

	log.Info().
		Int("videos", len(videoIDs)).
		Int("channels", len(channelIDs)).
		Int("kept", len(kept)).
		Msg("snapshot built")

	return snap, nil
}

// search runs every query in order and returns the distinct hits, each tagged
// with the seed that first produced it.
func (b *Builder) search(ctx context.Context, queries []seedQuery, publishedAfter time.Time) ([]models.SearchHit, error) {
	var out []models.SearchHit
	seen := make(map[string]bool)
	for _, sq := range queries {
		hits, err := b.source.SearchVideos(ctx, youtube.SearchQuery{
			Query:             sq.query,
			PublishedAfter:    publishedAfter,
			MaxResults:        ResultsPerQuery,
			RegionCode:        RegionCode,
			RelevanceLanguage: RelevanceLanguage,
		})
		if err != nil {
			return nil, fmt.Errorf("search for niche %s: %w", sq.niche, err)
		}
		for _, h := range hits {
			if h.VideoID == "" || seen[h.VideoID] {
				continue
			}
			seen[h.VideoID] = true
			h.NicheSeed = sq.niche
			h.SeedQuery = sq.query
			out = append(out, h)
		}
	}
	return out, nil
}

// Aggregate computes the n-gram, template and length statistics over the sample titles.
func Aggregate(samples []models.Sample) models.Aggregates {
	words := textstats.NewCounter()
	bigrams := textstats.NewCounter()
	trigrams := textstats.NewCounter()
	tmpl := textstats.NewCounter()
	titles := make([]string, 0, len(samples))

	for _, s := range samples {
		tokens := textstats.Tokenize(s.Title)
		textstats.CountNgrams(tokens, 1, words)
		textstats.CountNgrams(tokens, 2, bigrams)
		textstats.CountNgrams(tokens, 3, trigrams)
		tmpl.Add(textstats.ClassifyTemplate(s.Title))
		titles = append(titles, s.Title)
	}

	avg, median := textstats.TitleLengths(titles)
	return models.Aggregates{
		TopWords:     words.TopK(TopWords),
		TopBigrams:   bigrams.TopK(TopBigrams),
		TopTrigrams:  trigrams.TopK(TopTrigrams),
		TopTemplates: tmpl.TopK(TopTemplates),
		TitleLength:  models.TitleLength{Avg: avg, Median: median},
	}
}

func topSamples(kept []models.Sample, limit int) []models.Sample {
	sorted := make([]models.Sample, len(kept))
	copy(sorted, kept)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ViewCount > sorted[j].ViewCount
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
