package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fbgrab/internal/media"
)

var (
	// ErrCancelled is returned when the user quits without choosing.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoMedia is returned when there is nothing to choose from.
	ErrNoMedia = errors.New("no media found")
)

type pickerView int

const (
	videoList pickerView = iota
	qualityList
)

// Picker is a bubbletea model for choosing a video and then one of its
// qualities. The video list is only shown when there is more than one video.
type Picker struct {
	videos   []media.VideoEntry
	keys     keyMap
	help     help.Model
	view     pickerView
	focus    int // Cursor in the video list
	quality  int // Cursor in the quality list
	selected int // Index of the chosen video, -1 until one is chosen
	prefer   string

	chosen    *media.Selection
	cancelled bool

	onSelectVideo   func(key string)
	onSelectQuality func(key string)
}

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// OnSelectVideo registers a callback receiving the key of each opened video.
func OnSelectVideo(fn func(key string)) PickerOption {
	return func(p *Picker) { p.onSelectVideo = fn }
}

// OnSelectQuality registers a callback receiving the key of the picked resolution.
func OnSelectQuality(fn func(key string)) PickerOption {
	return func(p *Picker) { p.onSelectQuality = fn }
}

// NewPicker creates a picker. prefer is the quality class the cursor starts on.
func NewPicker(videos []media.VideoEntry, prefer string, opts ...PickerOption) *Picker {
	p := &Picker{
		videos:   videos,
		keys:     newKeyMap(),
		help:     help.New(),
		selected: -1,
		prefer:   prefer,
	}
	for _, opt := range opts {
		opt(p)
	}
	if len(videos) == 1 {
		p.open(0)
	}
	return p
}

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.help.Width = msg.Width
	case tea.KeyMsg:
		if len(p.videos) == 0 {
			p.cancelled = true
			return p, tea.Quit
		}
		switch {
		case key.Matches(msg, p.keys.quit):
			p.cancelled = true
			return p, tea.Quit
		case key.Matches(msg, p.keys.back):
			if p.view == qualityList && len(p.videos) > 1 {
				p.view = videoList
			}
		case key.Matches(msg, p.keys.up):
			p.move(-1)
		case key.Matches(msg, p.keys.down):
			p.move(1)
		case key.Matches(msg, p.keys.choose):
			return p.choose()
		}
	}
	return p, nil
}

// move shifts the cursor of the current list, wrapping at both ends.
func (p *Picker) move(delta int) {
	switch p.view {
	case videoList:
		p.focus = wrap(p.focus+delta, len(p.videos))
	case qualityList:
		p.quality = wrap(p.quality+delta, len(p.videos[p.selected].Resolutions))
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}

func (p *Picker) choose() (tea.Model, tea.Cmd) {
	if p.view == videoList {
		p.open(p.focus)
		return p, nil
	}

	video := p.videos[p.selected]
	res := video.Resolutions[p.quality]
	if p.onSelectQuality != nil {
		p.onSelectQuality(res.Key)
	}
	p.chosen = &media.Selection{Video: video, Resolution: res}
	return p, tea.Quit
}

// open selects the video at i and switches to its quality list.
func (p *Picker) open(i int) {
	p.selected = i
	p.focus = i
	p.view = qualityList

	video := p.videos[i]
	p.quality = 0
	preferred := video.Preferred(p.prefer)
	for j, r := range video.Resolutions {
		if r.Key == preferred.Key {
			p.quality = j
			break
		}
	}

	if p.onSelectVideo != nil {
		p.onSelectVideo(video.Key)
	}
}

// Selection returns the chosen video and quality, if the user finished.
func (p *Picker) Selection() (media.Selection, bool) {
	if p.chosen == nil {
		return media.Selection{}, false
	}
	return *p.chosen, true
}

// View implements tea.Model.
func (p *Picker) View() string {
	if p.chosen != nil || p.cancelled {
		return ""
	}

	var b strings.Builder
	switch {
	case len(p.videos) == 0:
		b.WriteString(emptyStyle.Render("No Media Found") + "\n")
		b.WriteString(faintStyle.Render("Unable to find any video content in the provided source code.") + "\n")
		return b.String()
	case p.view == videoList:
		p.renderVideos(&b)
	default:
		p.renderQualities(&b)
	}

	b.WriteString("\n" + p.help.View(p.keys) + "\n")
	return b.String()
}

func (p *Picker) renderVideos(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Select a Video") + "\n")
	for i, v := range p.videos {
		line := videoLabel(i, v)
		if v.Thumbnail != "" {
			line += "  " + faintStyle.Render(v.Thumbnail)
		}
		if i == p.focus {
			b.WriteString(focusedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString(itemStyle.Render(line) + "\n")
	}
	if p.selected < 0 {
		b.WriteString("\n" + faintStyle.Render("Select a video to see options") + "\n")
	}
}

func (p *Picker) renderQualities(b *strings.Builder) {
	if p.selected < 0 || p.selected >= len(p.videos) {
		b.WriteString(faintStyle.Render("No video selected") + "\n")
		return
	}

	video := p.videos[p.selected]
	b.WriteString(titleStyle.Render(fmt.Sprintf("Choose Quality · Video %d", p.selected+1)) + "\n")
	for i, r := range video.Resolutions {
		radio := "( )"
		if i == p.quality {
			radio = "(•)"
		}
		line := fmt.Sprintf("%s %s  %s", radio, r.QualityLabel, faintStyle.Render(media.Describe(r.QualityLabel)))
		if i == p.quality {
			b.WriteString(focusedStyle.Render(line) + "\n")
			continue
		}
		b.WriteString(itemStyle.Render(line) + "\n")
	}
	if !video.HasAudio() {
		b.WriteString("\n" + faintStyle.Render("This video has no separate audio track") + "\n")
	}
}

// Pick runs the picker on the terminal and returns the user's choice.
func Pick(videos []media.VideoEntry, prefer string, opts ...PickerOption) (media.Selection, error) {
	p := NewPicker(videos, prefer, opts...)
	if _, err := tea.NewProgram(p, tea.WithOutput(os.Stderr)).Run(); err != nil {
		return media.Selection{}, fmt.Errorf("running picker: %w", err)
	}
	if len(videos) == 0 {
		return media.Selection{}, ErrNoMedia
	}
	sel, ok := p.Selection()
	if !ok {
		return media.Selection{}, ErrCancelled
	}
	return sel, nil
}
