// Package commands implements the chirp-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/chirp-protocol/chirp-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	ConnectionID string
	Direction    *log.Direction
	Category     *log.Category
}

// ParseDirectionFlag parses a direction string from a command-line flag
// (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from a command-line flag
// (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "element":
		return log.CategoryElement, nil
	case "feature":
		return log.CategoryFeature, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, element, or feature)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		ConnectionID: filter.ConnectionID,
		Direction:    filter.Direction,
		Category:     filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open transcript: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Direction only applies to element traffic.
		if filter.Direction != nil && event.Category != log.CategoryElement {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)

	switch {
	case event.Element != nil:
		fmt.Fprintf(w, "%s [conn:%s] %-3s Element %s\n", ts, connID, event.Direction.String(), event.Element.Name)
		formatElementDetails(w, event.Element)
	case event.StateChange != nil:
		fmt.Fprintf(w, "%s [conn:%s] State\n", ts, connID)
		formatStateChangeDetails(w, event.StateChange)
	case event.Feature != nil:
		fmt.Fprintf(w, "%s [conn:%s] Feature\n", ts, connID)
		fmt.Fprintf(w, "  Namespace: %s\n", event.Feature.Space)
		fmt.Fprintf(w, "  Name: %s\n", event.Feature.Local)
	default:
		fmt.Fprintf(w, "%s [conn:%s] Unknown\n", ts, connID)
	}

	if event.StreamID != "" {
		fmt.Fprintf(w, "  Stream: %s\n", event.StreamID)
	}
	if event.User != "" {
		fmt.Fprintf(w, "  User: %s\n", event.User)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatElementDetails writes element-specific details.
func formatElementDetails(w io.Writer, el *log.ElementEvent) {
	kind := "nonza"
	if el.Stanza {
		kind = "stanza"
	}
	fmt.Fprintf(w, "  Kind: %s\n", kind)
	if el.ID != "" {
		fmt.Fprintf(w, "  ID: %s\n", el.ID)
	}
	if el.To != "" {
		fmt.Fprintf(w, "  To: %s\n", el.To)
	}
	if el.From != "" {
		fmt.Fprintf(w, "  From: %s\n", el.From)
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}
