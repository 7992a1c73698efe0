package config

import "path/filepath"

// Default returns the built-in configuration. terminal.json overrides it
// field by field.
func Default() *TerminalConfig {
	return &TerminalConfig{
		Display: DisplayConfig{
			Title:        "Bureau OS - FBC Terminal",
			ScreenWidth:  1280,
			ScreenHeight: 720,
			Scale:        1,
			Framerate:    60,
			Fullscreen:   true,
			Scanlines:    36,
		},
		Theme: ThemeConfig{
			BG:     RGB{5, 16, 5},
			FG:     RGB{160, 255, 160},
			Muted:  RGB{110, 200, 110},
			Accent: RGB{200, 255, 200},
			Border: RGB{20, 60, 20},
			Alert:  RGB{200, 20, 20},
			Title:  "FEDERAL BUREAU OF CONTROL",
		},
		Paths: PathsConfig{
			Assets:     "assets",
			Documents:  "documents",
			Logo:       "Logo.png",
			Icon:       "Logo_icon.png",
			Videos:     "videos",
			Audios:     "audios",
			Maps:       "maps",
			Altered:    "AlteredItems",
			OOP:        "OOP",
			Hotline:    "hotline",
			AhtiImage:  "Ahti.png",
			AhtiSong:   "Sankarin Tango.mp3",
			AhtiQuotes: "AhtiQuotes.txt",
			KeySound:   "keysound.mp3",
		},
		Splash: SplashConfig{Duration: 4},
		Lock: LockConfig{
			Enabled:       true,
			Code:          "1968",
			Passphrase:    "BLACK ROCK",
			Hint:          "Hint: Northmoore facility, late 1960s.",
			Attempts:      3,
			ShutdownDelay: 1.2,
			ShakeDuration: 0.35,
		},
		Quarry: QuarryConfig{Rows: 8, Cols: 12, Cooldown: 15},
		Overlays: OverlaysConfig{
			Ahti:    AhtiConfig{Rate: 2.2, Volume: 0.55},
			Decrypt: DecryptConfig{Duration: 1.8},
			Threshold: ThresholdConfig{
				MinDelay:    120,
				MaxDelay:    200,
				MinDuration: 1.8,
				MaxDuration: 3.0,
				Levels:      []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"},
			},
		},
		Menu: MenuConfig{TickerSpeed: 100, Warning: "WARNING!"},
		Viewer: ViewerConfig{
			PageCache:  6,
			ZoomStep:   1.25,
			MinZoom:    0.5,
			MaxZoom:    3,
			ScrollStep: 28,
			SeekStep:   5,
			PanStep:    20,
		},
		Oceanview: OceanviewConfig{Map: "oceanview"},
	}
}

// applyDefaults repairs values a partial terminal.json may leave invalid.
func (c *TerminalConfig) applyDefaults() {
	d := Default()
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		c.Display.ScreenWidth, c.Display.ScreenHeight = d.Display.ScreenWidth, d.Display.ScreenHeight
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = 1
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = d.Display.Framerate
	}
	if c.Lock.Attempts <= 0 {
		c.Lock.Attempts = d.Lock.Attempts
	}
	if c.Quarry.Rows <= 0 || c.Quarry.Cols <= 0 {
		c.Quarry.Rows, c.Quarry.Cols = d.Quarry.Rows, d.Quarry.Cols
	}
	if c.Quarry.Cooldown <= 0 {
		c.Quarry.Cooldown = d.Quarry.Cooldown
	}
	if c.Quarry.Rows > 26 {
		c.Quarry.Rows = 26
	}
	if c.Viewer.PageCache <= 0 || c.Viewer.PageCache > d.Viewer.PageCache {
		c.Viewer.PageCache = d.Viewer.PageCache
	}
	if c.Viewer.ZoomStep <= 1 {
		c.Viewer.ZoomStep = d.Viewer.ZoomStep
	}
	if c.Viewer.MinZoom <= 0 || c.Viewer.MaxZoom < c.Viewer.MinZoom {
		c.Viewer.MinZoom, c.Viewer.MaxZoom = d.Viewer.MinZoom, d.Viewer.MaxZoom
	}
	if c.Viewer.ScrollStep <= 0 {
		c.Viewer.ScrollStep = d.Viewer.ScrollStep
	}
	if c.Viewer.SeekStep <= 0 {
		c.Viewer.SeekStep = d.Viewer.SeekStep
	}
	if c.Viewer.PanStep <= 0 {
		c.Viewer.PanStep = d.Viewer.PanStep
	}
	if c.Overlays.Threshold.MaxDelay < c.Overlays.Threshold.MinDelay {
		c.Overlays.Threshold.MaxDelay = c.Overlays.Threshold.MinDelay
	}
	if len(c.Overlays.Threshold.Sectors) == 0 {
		c.Overlays.Threshold.Sectors = c.Sectors
	}
}

// Asset resolves a path from PathsConfig against the assets root.
func (c *TerminalConfig) Asset(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Paths.Assets, rel)
}

// DT returns the fixed frame step in seconds.
func (c *TerminalConfig) DT() float64 {
	return 1.0 / float64(c.Display.Framerate)
}
