package models

import "time"

// PostKind distinguishes plain posts from responses and quotes. It is
// derived at read time from the post's outgoing RESPONDS/QUOTES edge;
// there is no type hierarchy in the graph.
type PostKind string

const (
	PostKindPlain    PostKind = "plain"
	PostKindResponse PostKind = "response"
	PostKindQuote    PostKind = "quote"
)

// Post is a single entry in the graph. Deleted is a one-way flag set only
// by moderation; posts are never physically removed.
type Post struct {
	UUID           string    `json:"uuid"`
	Content        string    `json:"content"`
	CreationDate   time.Time `json:"creation_date"`
	Deleted        bool      `json:"deleted"`
	AuthorUUID     string    `json:"author_uuid"`
	AuthorUsername string    `json:"author_username"`
	Kind           PostKind  `json:"kind"`
	// TargetUUID is the post this one responds to or quotes, empty for
	// plain posts.
	TargetUUID string `json:"target_uuid,omitempty"`
	// RespondsToUsername is the author of the post this one responds to
	// (denormalized for response-kind posts).
	RespondsToUsername string `json:"responds_to_username,omitempty"`
}

// FeedPost is a post as it appears in a feed or listing, optionally
// carrying the popularity score used for ranking.
type FeedPost struct {
	UUID               string    `json:"uuid"`
	Content            string    `json:"content"`
	CreationDate       time.Time `json:"creation_date"`
	AuthorUUID         string    `json:"author_uuid"`
	AuthorUsername     string    `json:"author_username"`
	Kind               PostKind  `json:"kind"`
	RespondsToUsername string    `json:"responds_to_username,omitempty"`
	Score              int64     `json:"score,omitempty"`
}

// PostCounts holds the interaction counters of a post, reported
// regardless of its deleted state.
type PostCounts struct {
	Responses int64 `json:"responses"`
	Likes     int64 `json:"likes"`
	Quotes    int64 `json:"quotes"`
}

// RankingMode selects between chronological and popularity ordering.
type RankingMode string

const (
	RankingRecent     RankingMode = "RECENT"
	RankingPopularity RankingMode = "POPULARITY"
)

// ParseRankingMode maps free-form input onto a RankingMode. Unrecognized
// input silently falls back to RECENT.
func ParseRankingMode(s string) RankingMode {
	if RankingMode(s) == RankingPopularity {
		return RankingPopularity
	}
	return RankingRecent
}
