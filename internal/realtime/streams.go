package realtime

// Named realtime streams used across the platform.
const (
	StreamNotifications = "notifications"
	StreamPosts         = "posts"
	StreamEvents        = "events"
)

// DefaultStreams is the subscription set applied when a client connects
// without naming any streams.
var DefaultStreams = []string{StreamNotifications}
