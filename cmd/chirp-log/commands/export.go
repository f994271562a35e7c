package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chirp-protocol/chirp-go/pkg/log"
)

// RunExport exports the transcript at path in the given format. An empty
// output path writes to stdout.
func RunExport(path, format, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(path, w)
	case "csv":
		return exportCSV(path, w)
	default:
		return fmt.Errorf("unknown format: %s (must be jsonl or csv)", format)
	}
}

// jsonEvent is the JSONL export shape; pointers keep absent payloads out
// of the output.
type jsonEvent struct {
	Timestamp    time.Time             `json:"timestamp"`
	ConnectionID string                `json:"connection_id"`
	Direction    string                `json:"direction,omitempty"`
	Category     string                `json:"category"`
	StreamID     string                `json:"stream_id,omitempty"`
	User         string                `json:"user,omitempty"`
	Element      *log.ElementEvent     `json:"element,omitempty"`
	StateChange  *log.StateChangeEvent `json:"state_change,omitempty"`
	Feature      *log.FeatureEvent     `json:"feature,omitempty"`
}

func exportJSONL(path string, w io.Writer) error {
	enc := json.NewEncoder(w)
	return eachEvent(path, func(event log.Event) error {
		je := jsonEvent{
			Timestamp:    event.Timestamp,
			ConnectionID: event.ConnectionID,
			Category:     event.Category.String(),
			StreamID:     event.StreamID,
			User:         event.User,
			Element:      event.Element,
			StateChange:  event.StateChange,
			Feature:      event.Feature,
		}
		if event.Category == log.CategoryElement {
			je.Direction = event.Direction.String()
		}
		return enc.Encode(je)
	})
}

func exportCSV(path string, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "connection_id", "category", "direction", "stream_id", "user", "element", "detail"}
	if err := cw.Write(header); err != nil {
		return err
	}

	return eachEvent(path, func(event log.Event) error {
		var direction, element, detail string
		switch {
		case event.Element != nil:
			direction = event.Direction.String()
			element = event.Element.Name
			detail = event.Element.ID
		case event.StateChange != nil:
			detail = event.StateChange.OldState + "->" + event.StateChange.NewState
		case event.Feature != nil:
			detail = event.Feature.Space + " " + event.Feature.Local
		}

		return cw.Write([]string{
			event.Timestamp.UTC().Format(time.RFC3339Nano),
			event.ConnectionID,
			event.Category.String(),
			direction,
			event.StreamID,
			event.User,
			element,
			detail,
		})
	})
}

// eachEvent streams every event in the transcript through fn.
func eachEvent(path string, fn func(log.Event) error) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open transcript: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}
