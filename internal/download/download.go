// Package download saves a selected video to disk. When the video has a
// separate audio track both streams are muxed with ffmpeg, which runs with
// explicit argument slices; output paths are validated against directory
// traversal.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/sirupsen/logrus"

	"fbgrab/internal/fetch"
	"fbgrab/internal/httputil"
	"fbgrab/internal/media"
)

// ErrNeedsFFmpeg is returned when audio must be merged but ffmpeg is missing.
var ErrNeedsFFmpeg = errors.New("ffmpeg is required to merge the audio track")

// Downloader writes selections to disk.
type Downloader struct {
	fetcher  *fetch.Client
	viaProxy bool
	log      logrus.FieldLogger
	out      io.Writer // Progress output
	lookPath func(string) (string, error)
}

// New creates a Downloader that reports progress to out.
func New(fetcher *fetch.Client, viaProxy bool, log logrus.FieldLogger, out io.Writer) *Downloader {
	return &Downloader{
		fetcher:  fetcher,
		viaProxy: viaProxy,
		log:      log,
		out:      out,
		lookPath: exec.LookPath,
	}
}

// OutputPath returns where a download of title into outputDir would be written.
func OutputPath(title, outputDir string) (string, error) {
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	filename := httputil.SanitizeFilename(httputil.Truncate(title, 80)) + ".mp4"
	path, err := httputil.SafeDownloadPath(absDir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return path, nil
}

// Download saves sel under outputDir and returns the written path.
func (d *Downloader) Download(ctx context.Context, sel media.Selection, title, outputDir string) (string, error) {
	outputPath, err := OutputPath(title, outputDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	fmt.Fprintf(d.out, "Downloading to: %s\n", outputPath)

	ffmpegPath, lookErr := d.lookPath("ffmpeg")
	switch {
	case lookErr == nil:
		err = d.mux(ctx, ffmpegPath, sel, title, outputPath)
	case !sel.Video.HasAudio():
		d.log.Debug("ffmpeg not found, fetching video stream directly")
		err = d.direct(ctx, sel.Resolution.URL, outputPath)
	default:
		return "", fmt.Errorf("%w: %v", ErrNeedsFFmpeg, lookErr)
	}
	if err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", err
	}

	return outputPath, nil
}

// ffmpegArgs builds the ffmpeg argument list. Streams are copied, never re-encoded.
func ffmpegArgs(videoURL, audioURL, title, outputPath string) []string {
	args := []string{
		"-y", // Overwrite output
		"-loglevel", "error",
		"-stats",
		"-i", videoURL,
	}

	if audioURL != "" {
		args = append(args,
			"-i", audioURL,
			"-map", "0:v:0", // Video from first input
			"-map", "1:a:0", // Audio from second input
		)
	}

	args = append(args,
		"-c", "copy",
		"-metadata", fmt.Sprintf("title=%s", title),
		outputPath,
	)
	return args
}

func (d *Downloader) mux(ctx context.Context, ffmpegPath string, sel media.Selection, title, outputPath string) error {
	args := ffmpegArgs(sel.Resolution.URL, sel.Video.AudioURL, title, outputPath)
	d.log.WithField("args", args).Debug("running ffmpeg")

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	cmd.Stdout = d.out
	cmd.Stderr = d.out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg download failed: %w", err)
	}
	return nil
}

// direct streams a single URL to outputPath with a progress bar.
func (d *Downloader) direct(ctx context.Context, url, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	_, err = d.fetcher.Copy(ctx, url, f, fetch.Options{
		ViaProxy: d.viaProxy,
		OnProgress: func(read, total int64) {
			if total > 0 {
				fmt.Fprintf(d.out, "\r%s", bar.ViewAs(float64(read)/float64(total)))
				return
			}
			fmt.Fprintf(d.out, "\r%d KiB", read>>10)
		},
	})
	fmt.Fprintln(d.out)
	if err != nil {
		return fmt.Errorf("downloading video: %w", err)
	}
	return f.Close()
}
