package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Loader loads terminal configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the path the loader was created with.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTerminal loads terminal.json and fills unset values with defaults.
func (l *Loader) LoadTerminal() (*TerminalConfig, error) {
	cfg := Default()
	if err := l.decode("terminal.json", cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadMap loads a raycast map JSON file
func (l *Loader) LoadMap(name string) (*MapConfig, error) {
	var cfg MapConfig
	if err := l.decode(path.Join("maps", name+".json"), &cfg); err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", name, err)
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	return &cfg, nil
}

func (l *Loader) decode(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
