package models

import "time"

type Snapshot struct {
	Version         int        `json:"version"`
	GeneratedAt     time.Time  `json:"generatedAt"`
	ValidUntil      time.Time  `json:"validUntil"`
	RefreshDays     int        `json:"refreshDays"`
	WindowDays      int        `json:"windowDays"`
	Filters         Filters    `json:"filters"`
	Aggregates      Aggregates `json:"aggregates"`
	Samples         []Sample   `json:"samples"`
	TotalCandidates int        `json:"totalCandidates"`
}

type Filters struct {
	RegionCode        string `json:"regionCode"`
	RelevanceLanguage string `json:"relevanceLanguage"`
	MinVideoViews     int64  `json:"minVideoViews"`
	MinChannelSubs    int64  `json:"minChannelSubs"`
}

type Aggregates struct {
	TopWords     []CountEntry `json:"topWords"`
	TopBigrams   []CountEntry `json:"topBigrams"`
	TopTrigrams  []CountEntry `json:"topTrigrams"`
	TopTemplates []CountEntry `json:"topTemplates"`
	TitleLength  TitleLength  `json:"titleLength"`
}

// CountEntry is one row of a top-K frequency list.
type CountEntry struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type TitleLength struct {
	Avg    int `json:"avg"`
	Median int `json:"median"`
}

// Sample is the reduced projection of a kept video shown to the model.
type Sample struct {
	Title           string `json:"title"`
	ViewCount       int64  `json:"viewCount"`
	ChannelTitle    string `json:"channelTitle"`
	SubscriberCount int64  `json:"subscriberCount"`
}
