package commands

import (
	"fmt"
	"time"

	"github.com/chirp-protocol/chirp-go/pkg/log"
)

// FilterOptions specifies filter criteria and the output file for the
// filter command.
type FilterOptions struct {
	Output    string
	ConnID    string
	TimeStart string
	TimeEnd   string
	Direction string
	Category  string
}

// RunFilter reads the transcript at path and writes matching events to a
// new transcript file.
func RunFilter(path string, opts FilterOptions) error {
	filter := log.Filter{ConnectionID: opts.ConnID}

	if opts.Direction != "" {
		d, err := ParseDirectionFlag(opts.Direction)
		if err != nil {
			return err
		}
		filter.Direction = &d
	}
	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}
	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}
	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}

	events, err := log.ReadFiltered(path, filter)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	out, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output transcript: %w", err)
	}
	defer out.Close()

	for _, event := range events {
		out.Log(event)
	}

	fmt.Printf("Wrote %d events to %s\n", len(events), opts.Output)
	return nil
}
