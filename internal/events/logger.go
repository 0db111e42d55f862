// Package events records style manager activity in the history log.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/themekit/internal/logging"
	"github.com/opencode-ai/themekit/internal/models"
	"github.com/opencode-ai/themekit/internal/style"
)

// Repository is the minimal interface needed to write events. Append
// rejects events that fail validation.
type Repository interface {
	Append(ctx context.Context, event *models.Event) error
}

// Source is the part of the style manager the recorder reads from.
type Source interface {
	Subscribe(fn style.Observer) (cancel func())
	CurrentStyle() string
	CurrentTheme() string
	CurrentStyleOutputPath() string
	StyleSheet() string
}

// Recorder writes manager notifications and pipeline failures to a
// Repository.
type Recorder struct {
	repo   Repository
	logger zerolog.Logger
}

// NewRecorder creates a recorder writing to repo.
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, logger: logging.Component("events")}
}

// Attach records every notification of src until the returned func is
// called. Write failures are logged, not returned, since observers cannot
// fail.
func (r *Recorder) Attach(ctx context.Context, src Source) (cancel func()) {
	return src.Subscribe(func(e style.Event) {
		if err := r.Record(ctx, src, e); err != nil {
			r.logger.Warn().Err(err).Str("event", string(e.Type)).Msg("failed to record event")
		}
	})
}

// Record writes one manager notification.
func (r *Recorder) Record(ctx context.Context, src Source, e style.Event) error {
	if r.repo == nil {
		return fmt.Errorf("event repository is required")
	}

	var (
		typ     models.EventType
		payload any
	)
	switch e.Type {
	case style.EventStyleChanged:
		typ = models.EventTypeStyleChanged
		payload = models.SelectionPayload{Style: e.Name, Theme: src.CurrentTheme()}
	case style.EventThemeChanged:
		typ = models.EventTypeThemeChanged
		payload = models.SelectionPayload{Style: src.CurrentStyle(), Theme: e.Name}
	case style.EventStylesheetChanged:
		typ = models.EventTypeStylesheetChanged
		payload = models.StylesheetPayload{
			Style:      src.CurrentStyle(),
			Theme:      src.CurrentTheme(),
			Bytes:      len(src.StyleSheet()),
			OutputPath: src.CurrentStyleOutputPath(),
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}

	return r.write(ctx, typ, src.CurrentStyle(), payload)
}

// RecordFailure writes a generation.failed event for a failed manager
// operation. A nil err records nothing.
func (r *Recorder) RecordFailure(ctx context.Context, src Source, err error) error {
	if err == nil {
		return nil
	}
	if r.repo == nil {
		return fmt.Errorf("event repository is required")
	}

	return r.write(ctx, models.EventTypeGenerationFailed, src.CurrentStyle(), models.GenerationFailedPayload{
		Style: src.CurrentStyle(),
		Theme: src.CurrentTheme(),
		Kind:  style.KindOf(err).String(),
		Error: err.Error(),
	})
}

func (r *Recorder) write(ctx context.Context, typ models.EventType, styleName string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", typ, err)
	}

	event := &models.Event{
		Type:       typ,
		EntityType: models.EntityTypeStyle,
		EntityID:   styleName,
		Payload:    data,
	}
	if styleName == "" {
		event.EntityType = models.EntityTypeSystem
		event.EntityID = string(models.EntityTypeSystem)
	}

	return r.repo.Append(ctx, event)
}
