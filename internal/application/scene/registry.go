package scene

// ID names a top-level screen reachable from anywhere.
type ID string

const (
	Splash    ID = "splash"
	Lock      ID = "lock"
	Menu      ID = "menu"
	Documents ID = "documents"
	Videos    ID = "videos"
	AudioLogs ID = "audiologs"
	Altered   ID = "altered"
	OOP       ID = "oop"
	Quarry    ID = "quarry"
	Sectors   ID = "sectors"
	Hotline   ID = "hotline"
	Oceanview ID = "oceanview"
)

// Registry maps screen IDs to their factories. Screens navigate by ID so
// that no scene package imports another.
type Registry map[ID]Factory

// Lookup returns the factory for id.
func (r Registry) Lookup(id ID) (Factory, bool) {
	f, ok := r[id]
	return f, ok && f != nil
}
