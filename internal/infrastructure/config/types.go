package config

import "image/color"

// TerminalConfig is the root config for terminal.json
type TerminalConfig struct {
	Display   DisplayConfig   `json:"display"`
	Theme     ThemeConfig     `json:"theme"`
	Paths     PathsConfig     `json:"paths"`
	Splash    SplashConfig    `json:"splash"`
	Lock      LockConfig      `json:"lock"`
	Quarry    QuarryConfig    `json:"quarry"`
	Overlays  OverlaysConfig  `json:"overlays"`
	Menu      MenuConfig      `json:"menu"`
	Viewer    ViewerConfig    `json:"viewer"`
	Oceanview OceanviewConfig `json:"oceanview"`
	Sectors   []string        `json:"sectors"`
}

type DisplayConfig struct {
	Title        string `json:"title"`
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Fullscreen   bool   `json:"fullscreen"`
	Scanlines    uint8  `json:"scanlines"` // alpha of every other row
}

// RGB is an opaque colour written as [r, g, b] in JSON.
type RGB [3]uint8

// RGBA converts to a fully opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{c[0], c[1], c[2], 255}
}

// Alpha converts with the given alpha, premultiplied as ebiten expects.
func (c RGB) Alpha(a uint8) color.RGBA {
	return color.RGBA{
		uint8(uint16(c[0]) * uint16(a) / 255),
		uint8(uint16(c[1]) * uint16(a) / 255),
		uint8(uint16(c[2]) * uint16(a) / 255),
		a,
	}
}

type ThemeConfig struct {
	BG     RGB    `json:"bg"`
	FG     RGB    `json:"fg"`
	Muted  RGB    `json:"muted"`
	Accent RGB    `json:"accent"`
	Border RGB    `json:"border"`
	Alert  RGB    `json:"alert"`
	Title  string `json:"title"`
}

// PathsConfig locates assets. Relative entries resolve against Assets.
type PathsConfig struct {
	Assets     string `json:"assets"`
	Documents  string `json:"documents"`
	Logo       string `json:"logo"`
	Icon       string `json:"icon"`
	Videos     string `json:"videos"`
	Audios     string `json:"audios"`
	Maps       string `json:"maps"`
	Altered    string `json:"altered"`
	OOP        string `json:"oop"`
	Hotline    string `json:"hotline"`
	AhtiImage  string `json:"ahtiImage"`
	AhtiSong   string `json:"ahtiSong"`
	AhtiQuotes string `json:"ahtiQuotes"`
	KeySound   string `json:"keySound"`
}

type SplashConfig struct {
	Duration float64 `json:"duration"`
}

type LockConfig struct {
	Enabled       bool    `json:"enabled"`
	Code          string  `json:"code"`
	Passphrase    string  `json:"passphrase"`
	Hint          string  `json:"hint"`
	Attempts      int     `json:"attempts"`
	ShutdownDelay float64 `json:"shutdownDelay"`
	ShakeDuration float64 `json:"shakeDuration"`
}

type QuarryConfig struct {
	Rows     int     `json:"rows"`
	Cols     int     `json:"cols"`
	Cooldown float64 `json:"cooldown"`
}

type OverlaysConfig struct {
	Ahti      AhtiConfig      `json:"ahti"`
	Decrypt   DecryptConfig   `json:"decrypt"`
	Threshold ThresholdConfig `json:"threshold"`
}

type AhtiConfig struct {
	Rate   float64  `json:"rate"`
	Volume float64  `json:"volume"`
	Quotes []string `json:"quotes"`
}

type DecryptConfig struct {
	Duration float64 `json:"duration"`
}

type ThresholdConfig struct {
	Enabled     bool     `json:"enabled"`
	MinDelay    float64  `json:"minDelay"`
	MaxDelay    float64  `json:"maxDelay"`
	MinDuration float64  `json:"minDuration"`
	MaxDuration float64  `json:"maxDuration"`
	Sectors     []string `json:"sectors"`
	Levels      []string `json:"levels"`
}

type MenuConfig struct {
	Ticker      string   `json:"ticker"`
	TickerSpeed float64  `json:"tickerSpeed"`
	Warning     string   `json:"warning"`
	Guide       []string `json:"guide"`
}

type ViewerConfig struct {
	PageCache  int     `json:"pageCache"`
	ZoomStep   float64 `json:"zoomStep"`
	MinZoom    float64 `json:"minZoom"`
	MaxZoom    float64 `json:"maxZoom"`
	ScrollStep int     `json:"scrollStep"`
	SeekStep   float64 `json:"seekStep"`
	PanStep    float64 `json:"panStep"`
}

type OceanviewConfig struct {
	Map string `json:"map"`
}
