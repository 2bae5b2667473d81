package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// GraphDoc is the serialization envelope for a set of day graphs. It is the
// wire form used by the CLI, the HTTP API, and session storage.
type GraphDoc struct {
	Days []Day `json:"days" bson:"days"`
}

// MarshalDays converts day graphs to pretty-printed JSON bytes.
func MarshalDays(days []Day) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDaysTo(days, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDays writes day graphs as JSON to an io.Writer.
func WriteDays(days []Day, w io.Writer) error {
	return writeDaysTo(days, w)
}

// WriteDaysFile writes day graphs to a JSON file.
func WriteDaysFile(days []Day, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDaysTo(days, f)
}

// ReadDays decodes day graphs from JSON on an io.Reader.
func ReadDays(r io.Reader) ([]Day, error) {
	var doc GraphDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return doc.Days, nil
}

// ReadDaysFile reads day graphs from a JSON file.
func ReadDaysFile(path string) ([]Day, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDays(f)
}

func writeDaysTo(days []Day, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(GraphDoc{Days: days}); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}
