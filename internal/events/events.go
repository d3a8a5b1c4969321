// Package events is a small typed publish/subscribe bus. Publishers never
// block: a subscriber that falls behind misses events instead of stalling
// the publisher.
package events

import "time"

// Type names what happened.
type Type string

const (
	// ContentChanged is published when README files under the content
	// directory are written, created, renamed or removed.
	ContentChanged Type = "content_changed"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      Type
	Payload   T
	Timestamp time.Time
}

// ContentChange lists the changed paths, slash-separated and relative to
// the content directory.
type ContentChange struct {
	Paths []string `json:"paths"`
}
