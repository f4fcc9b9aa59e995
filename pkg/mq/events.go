package mq

// WatchEvent is published when an authenticated viewer records a view.
// The consumer appends the watch-history row; the view counter itself is
// incremented synchronously on the request path.
type WatchEvent struct {
	UserID    int64  `json:"user_id"`
	VideoID   int64  `json:"video_id"`
	WatchedAt string `json:"watched_at"`
	Timestamp int64  `json:"timestamp"`
	EventID   string `json:"event_id"`
}

const (
	WatchEventExchange = "watch_events"
	WatchEventQueue    = "watch_event_queue"
)
