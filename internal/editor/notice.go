package editor

import "github.com/zjrosen/tide/internal/pubsub"

// Notice event types published by a Session.
const (
	NoticeWritten       pubsub.EventType = "written"
	NoticeWriteFailed   pubsub.EventType = "write_failed"
	NoticeLoadFailed    pubsub.EventType = "load_failed"
	NoticeChangedOnDisk pubsub.EventType = "changed_on_disk"
)

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Notice is a one-line message for the user, shown in the status bar.
type Notice struct {
	Level Level
	Text  string
}
