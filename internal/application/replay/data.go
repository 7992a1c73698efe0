// Package replay records terminal sessions as per-frame input and plays
// them back in place of the keyboard.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
)

// Version is written into every recording.
const Version = "1.0"

// EventRecord is one discrete event. A non-empty C marks a typed
// character; otherwise K names the key.
type EventRecord struct {
	K     string `json:"k,omitempty"`
	C     string `json:"c,omitempty"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Shift bool   `json:"shift,omitempty"`
}

// FrameInput records the input of a single frame
type FrameInput struct {
	F      int           `json:"f"`
	Events []EventRecord `json:"e,omitempty"`
	Held   []string      `json:"h,omitempty"`
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

var keyByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[k.String()] = k
	}
	return m
}()

// ParseKey looks a key up by the name ebiten gives it.
func ParseKey(name string) (ebiten.Key, bool) {
	k, ok := keyByName[name]
	return k, ok
}

// Encode converts an event to its record.
func Encode(ev input.Event) EventRecord {
	r := EventRecord{Ctrl: ev.Ctrl, Shift: ev.Shift}
	if ev.Kind == input.KindChar {
		r.C = string(ev.Char)
	} else {
		r.K = ev.Key.String()
	}
	return r
}

// Decode converts a record back to an event. Unknown key names fail.
func (r EventRecord) Decode() (input.Event, error) {
	if r.C != "" {
		ev := input.Char([]rune(r.C)[0])
		ev.Shift = r.Shift
		return ev, nil
	}
	k, ok := ParseKey(r.K)
	if !ok {
		return input.Event{}, fmt.Errorf("unknown key %q", r.K)
	}
	return input.Event{Kind: input.KindKey, Key: k, Ctrl: r.Ctrl, Shift: r.Shift}, nil
}

// Load reads replay data from a file.
func Load(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	return &data, nil
}

// Save writes replay data to a file.
func Save(filename string, data ReplayData) error {
	if len(data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}
