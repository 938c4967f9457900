package types

// Game describes the content a frontend hands to retro_load_game. Exactly
// one of the three variants below implements it.
//
// The byte slices and strings inside a Game are only valid for the duration
// of the load call that produced them; a core that wants to keep the content
// must copy it.
type Game interface {
	// GameMeta returns implementation-specific metadata, or "" when the
	// frontend supplied none.
	GameMeta() string

	isGame()
}

// NoGame is passed when a core advertises support for running without
// content and the user started it without any.
type NoGame struct {
	Meta string
}

// GameData is content loaded into memory by the frontend. Used when the core
// does not set NeedFullPath.
type GameData struct {
	Meta string
	// Data is the entire content. Borrowed from the frontend; valid only for
	// the duration of the load call.
	Data []byte
}

// GamePath is content referenced by absolute path. Used when the core sets
// NeedFullPath.
type GamePath struct {
	Meta string
	Path string
}

func (g NoGame) GameMeta() string   { return g.Meta }
func (g GameData) GameMeta() string { return g.Meta }
func (g GamePath) GameMeta() string { return g.Meta }

func (NoGame) isGame()   {}
func (GameData) isGame() {}
func (GamePath) isGame() {}
