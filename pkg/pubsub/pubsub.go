package pubsub

import (
	"context"
	"encoding/json"
)

// Topics published by the designer.
const (
	TopicProject = "project" // Edits, undo, redo, selection and reloads
	TopicStatus  = "status"  // Load, save and watch state
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`   // Subscription topic (e.g., "project", "status")
	Type    string          `json:"type"`    // Event type (e.g., "edit", "undo", "saved", "error")
	Data    json.RawMessage `json:"data"`    // Event payload
	Version int             `json:"version"` // Version number for ordering
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	// Topic returns the subscription topic
	Topic() string

	// Events returns a channel for receiving events
	Events() <-chan Event

	// Close closes the subscription
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic
	// Context cancellation will close the subscription
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions
	Close() error
}

// ProjectStatus describes the project file behind an editing session.
type ProjectStatus struct {
	State   string `json:"state"`   // loaded, saved, reloaded, conflict, error
	Path    string `json:"path"`    // Project file
	Message string `json:"message"` // Human-readable status message
	Objects int    `json:"objects"` // Number of objects in the pool
	Dirty   bool   `json:"dirty"`   // Unsaved edits exist
}
