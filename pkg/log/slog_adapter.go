package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see session events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("category", event.Category.String()),
	}

	if event.StreamID != "" {
		attrs = append(attrs, slog.String("stream_id", event.StreamID))
	}
	if event.User != "" {
		attrs = append(attrs, slog.String("user", event.User))
	}

	switch {
	case event.Element != nil:
		attrs = append(attrs,
			slog.String("direction", event.Direction.String()),
			slog.String("element", event.Element.Name),
			slog.Bool("stanza", event.Element.Stanza),
		)
		if event.Element.ID != "" {
			attrs = append(attrs, slog.String("stanza_id", event.Element.ID))
		}
		if event.Element.To != "" {
			attrs = append(attrs, slog.String("to", event.Element.To))
		}
		if event.Element.From != "" {
			attrs = append(attrs, slog.String("from", event.Element.From))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Feature != nil:
		attrs = append(attrs,
			slog.String("feature_ns", event.Feature.Space),
			slog.String("feature", event.Feature.Local),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
