package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes history events.
type EventType string

const (
	// Selection events
	EventTypeStyleChanged EventType = "style.changed"
	EventTypeThemeChanged EventType = "theme.changed"

	// Generation events
	EventTypeStylesheetChanged EventType = "stylesheet.changed"
	EventTypeGenerationFailed  EventType = "generation.failed"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeStyle  EntityType = "style"
	EntityTypeSystem EntityType = "system"
)

// Event represents an append-only history entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the style name, or "system" when no style is selected.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// SelectionPayload is the payload for style.changed and theme.changed events.
type SelectionPayload struct {
	Style string `json:"style"`
	Theme string `json:"theme"`
}

// StylesheetPayload is the payload for stylesheet.changed events.
type StylesheetPayload struct {
	Style      string            `json:"style"`
	Theme      string            `json:"theme"`
	Bytes      int               `json:"bytes"`
	OutputPath string            `json:"output_path,omitempty"`
	Overrides  map[string]string `json:"overrides,omitempty"`
}

// GenerationFailedPayload is the payload for generation.failed events.
type GenerationFailedPayload struct {
	Style string `json:"style,omitempty"`
	Theme string `json:"theme,omitempty"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}
