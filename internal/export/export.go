// Package export writes every stored task as JSON, YAML or iCalendar.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/dayplan/internal/model"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatJSON, FormatYAML, FormatICS:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "ical", "icalendar":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Options carry what the calendar format needs to turn date+time into
// instants.
type Options struct {
	Location *time.Location
	Now      time.Time
}

func Write(w io.Writer, format Format, tasks []model.Task, opts Options) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, tasks)
	case FormatYAML:
		return WriteYAML(w, tasks)
	case FormatICS:
		return WriteICS(w, tasks, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func WriteJSON(w io.Writer, tasks []model.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, tasks []model.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("export: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: encode yaml: %w", err)
	}
	return nil
}
