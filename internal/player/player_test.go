package player

import (
	"reflect"
	"testing"

	"fbgrab/internal/media"
)

func testSelection(audio string) media.Selection {
	return media.Selection{
		Video:      media.VideoEntry{Key: "video_0", AudioURL: audio},
		Resolution: media.Resolution{URL: "https://h/v.mp4", Key: "video_0_hd"},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mpv", "mpv"},
		{"vlc", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"unknown", "mpv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.name).Name(); got != tt.want {
				t.Errorf("New(%q).Name() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMPVArgs(t *testing.T) {
	tests := []struct {
		name  string
		audio string
		want  []string
	}{
		{"with audio", "https://h/a.mp4", []string{"https://h/v.mp4", "--force-media-title=clip", "--audio-file=https://h/a.mp4"}},
		{"video only", "", []string{"https://h/v.mp4", "--force-media-title=clip"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mpvArgs(testSelection(tt.audio), "clip")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("mpvArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVLCArgs(t *testing.T) {
	tests := []struct {
		name  string
		audio string
		want  []string
	}{
		{"with audio", "https://h/a.mp4", []string{"https://h/v.mp4", "--meta-title", "clip", "--play-and-exit", "--input-slave=https://h/a.mp4"}},
		{"video only", "", []string{"https://h/v.mp4", "--meta-title", "clip", "--play-and-exit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vlcArgs(testSelection(tt.audio), "clip")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("vlcArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}
