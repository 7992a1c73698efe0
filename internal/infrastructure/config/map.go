package config

// MapConfig is the root config for maps/<name>.json
type MapConfig struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Rows    []string       `json:"rows"`
	Spawn   SpawnConfig    `json:"spawn"`
	WarmX   int            `json:"warmX"`
	Palette map[string]RGB `json:"palette"` // cell code -> base colour
	Doors   []DoorConfig   `json:"doors"`
	Props   []PropConfig   `json:"props"`
	Surface SurfaceConfig  `json:"surface"`
}

type SpawnConfig struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"` // degrees
}

// DoorConfig labels a door cell. Exit doors leave the scene.
type DoorConfig struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label"`
	Exit  bool   `json:"exit"`
}

// PropConfig is a billboard placed in the world.
type PropConfig struct {
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Color    RGB     `json:"color"`
	Size     float64 `json:"size"`
	Emissive uint8   `json:"emissive"`
	Flicker  float64 `json:"flicker"` // Hz, 0 = steady
}

type SurfaceConfig struct {
	Ceiling      RGB   `json:"ceiling"`
	CeilingLine  RGB   `json:"ceilingLine"`
	CeilingCell  int   `json:"ceilingCell"`
	Floor        RGB   `json:"floor"`
	CheckerA     RGB   `json:"checkerA"`
	CheckerB     RGB   `json:"checkerB"`
	CheckerCell  int   `json:"checkerCell"`
	CheckerAlpha uint8 `json:"checkerAlpha"`
}
