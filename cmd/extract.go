package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fbgrab/internal/download"
	"fbgrab/internal/extract"
	"fbgrab/internal/fetch"
	"fbgrab/internal/httputil"
	"fbgrab/internal/media"
	"fbgrab/internal/player"
	"fbgrab/internal/source"
	"fbgrab/internal/ui"
)

const defaultTitle = "facebook-video"

// extractRun is the default command: fbgrab <file|url|->
func extractRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	if arg == "" && isTerminal(os.Stdin) {
		// Nothing piped in; ask for a source via fzf
		var err error
		arg, err = ui.Input("Page URL or file")
		if err != nil {
			return fmt.Errorf("no source provided (pass a file, a URL or - for stdin)")
		}
	}

	pages := fetch.New(httputil.NewClient(30*time.Second), cfg.Proxy, logger)
	page, err := source.New(afero.NewOsFs(), os.Stdin, pages, cfg.UseProxy).Load(ctx, arg)
	if err != nil {
		return err
	}
	debugf("loaded %d bytes from %q", len(page), arg)

	ext := extract.New(
		extract.WithLogger(logger),
		extract.WithTrashWords(cfg.TrashWords...),
		extract.WithRewriter(extract.NewRewriter(cfg.CDNMarker, cfg.Placeholder)),
		extract.WithCDNHost(cfg.CDNHost()),
	)
	videos, err := ext.Videos(page)
	if err != nil {
		return fmt.Errorf("extracting media: %w", err)
	}

	title := extract.Title(page)
	if title == "" {
		title = defaultTitle
	}
	debugf("found %d videos, title %q", len(videos), title)

	// JSON output mode
	if flagJSON {
		return writeJSON(os.Stdout, title, videos)
	}

	sel, err := choose(videos)
	if err != nil {
		return err
	}
	debugf("selected %s (%s)", sel.Video.Key, sel.Resolution.Key)

	// Download mode
	if flagDownload != "" {
		dir := flagDownload
		if dir == configDownloadDir {
			dir, err = cfg.ExpandDownloadDir()
			if err != nil {
				return fmt.Errorf("resolving download dir: %w", err)
			}
		}

		if ok, err := confirmOverwrite(title, dir); err != nil || !ok {
			return err
		}

		streams := fetch.New(httputil.NewClient(0), cfg.Proxy, logger)
		outputPath, err := download.New(streams, cfg.UseProxy, logger, os.Stderr).Download(ctx, sel, title, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	// Play
	if flagPlay {
		p := player.New(cfg.Player)
		if !p.Available() {
			return fmt.Errorf("player %q not found in PATH", cfg.Player)
		}
		if err := p.Play(sel, title); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
		return nil
	}

	printSelection(os.Stdout, sel)
	return nil
}

// choose asks the user for a video and quality, or picks the first video at
// the preferred quality when there is no terminal to ask on.
func choose(videos []media.VideoEntry) (media.Selection, error) {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stderr) {
		v := videos[0]
		return media.Selection{Video: v, Resolution: v.Preferred(cfg.Quality)}, nil
	}

	if cfg.Picker == "fzf" {
		return ui.PickFzf(videos)
	}
	return ui.Pick(videos, cfg.Quality,
		ui.OnSelectVideo(func(key string) { debugf("video opened: %s", key) }),
		ui.OnSelectQuality(func(key string) { debugf("quality picked: %s", key) }),
	)
}

// confirmOverwrite asks before replacing an earlier download of the same title.
// Without a terminal the file is overwritten.
func confirmOverwrite(title, dir string) (bool, error) {
	path, err := download.OutputPath(title, dir)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil || !isTerminal(os.Stdin) {
		return true, nil
	}

	ok, err := ui.Confirm(fmt.Sprintf("Overwrite %s?", filepath.Base(path)))
	if errors.Is(err, ui.ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirming overwrite: %w", err)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "Skipped download")
	}
	return ok, nil
}

type jsonOutput struct {
	Title  string             `json:"title"`
	Videos []media.VideoEntry `json:"videos"`
}

func writeJSON(w io.Writer, title string, videos []media.VideoEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonOutput{Title: title, Videos: videos})
}

func printSelection(w io.Writer, sel media.Selection) {
	fmt.Fprintf(w, "video: %s\n", sel.Resolution.URL)
	if sel.Video.HasAudio() {
		fmt.Fprintf(w, "audio: %s\n", sel.Video.AudioURL)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
