package player

import "fbgrab/internal/media"

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return available("mpv") }

// Play launches mpv, attaching the separate audio track when there is one.
func (m *MPV) Play(sel media.Selection, title string) error {
	return run("mpv", mpvArgs(sel, title))
}

// mpvArgs builds mpv-style arguments, also understood by iina and celluloid.
func mpvArgs(sel media.Selection, title string) []string {
	args := []string{
		sel.Resolution.URL,
		"--force-media-title=" + title,
	}
	if sel.Video.HasAudio() {
		args = append(args, "--audio-file="+sel.Video.AudioURL)
	}
	return args
}
