package models

import "time"

// SearchHit is a search result tagged with the seed that produced it.
type SearchHit struct {
	VideoID      string    `json:"videoId"`
	ChannelID    string    `json:"channelId"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	NicheSeed    string    `json:"nicheSeed"`
	SeedQuery    string    `json:"seedQuery"`
}

type VideoRecord struct {
	VideoID      string    `json:"videoId"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
}

type ChannelRecord struct {
	ChannelID        string `json:"channelId"`
	ChannelTitle     string `json:"channelTitle"`
	SubscriberCount  int64  `json:"subscriberCount"`
	ChannelViewCount int64  `json:"channelViewCount"`
}
