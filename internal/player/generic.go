package player

import "fbgrab/internal/media"

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return available(g.name) }

// Play launches the generic player.
func (g *Generic) Play(sel media.Selection, title string) error {
	return run(g.name, mpvArgs(sel, title))
}
