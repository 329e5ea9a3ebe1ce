package topics

const (
	// Published after every successful artifact refresh.
	FeedRefreshed = "props_feed_refreshed"
)
