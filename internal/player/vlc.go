package player

import "fbgrab/internal/media"

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return available("vlc") }

// Play launches VLC, slaving the audio track to the video input.
func (v *VLC) Play(sel media.Selection, title string) error {
	return run("vlc", vlcArgs(sel, title))
}

func vlcArgs(sel media.Selection, title string) []string {
	args := []string{
		sel.Resolution.URL,
		"--meta-title", title,
		"--play-and-exit",
	}
	if sel.Video.HasAudio() {
		args = append(args, "--input-slave="+sel.Video.AudioURL)
	}
	return args
}
