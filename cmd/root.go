// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fbgrab/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// configDownloadDir is the --download value used when the flag has no argument.
const configDownloadDir = "@config"

// Global flags
var (
	flagDownload string
	flagQuality  string
	flagPlayer   string
	flagPicker   string
	flagProxy    string
	flagTrash    []string
	flagPlay     bool
	flagJSON     bool
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < env < flags).
var cfg *config.Config

// logger receives all diagnostics; it writes to stderr so stdout stays clean for --json.
var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "fbgrab [file|url|-]",
	Short: "Extract video and audio streams from Facebook video posts",
	Long: `fbgrab finds the downloadable video and audio streams embedded in a
Facebook video page. Pass a saved page, a URL, or - to read the page from stdin,
then pick a video and quality to print, play with mpv/vlc, or download with ffmpeg.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              extractRun,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDownload, "download", "d", "", "Download instead of printing (--download=DIR overrides download_dir)")
	rootCmd.PersistentFlags().Lookup("download").NoOptDefVal = configDownloadDir
	rootCmd.PersistentFlags().StringVarP(&flagQuality, "quality", "q", "", "Preferred quality: sd | hd")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringVar(&flagPicker, "picker", "", "Selection UI: tui | fzf")
	rootCmd.PersistentFlags().StringVar(&flagProxy, "proxy", "", "Fetch pages and streams through this proxy endpoint")
	rootCmd.PersistentFlags().StringSliceVar(&flagTrash, "trash", nil, "Substring to strip from legacy markup (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagPlay, "play", "p", false, "Play the selection with the configured player")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output extracted videos as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < env < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagPicker != "" {
		cfg.Picker = flagPicker
	}
	if flagQuality != "" {
		cfg.Quality = flagQuality
	}
	if flagProxy != "" {
		cfg.Proxy = flagProxy
		cfg.UseProxy = true
	}
	if len(flagTrash) > 0 {
		cfg.TrashWords = append(cfg.TrashWords, flagTrash...)
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogger(cfg)
	return nil
}

func setupLogger(c *config.Config) {
	logger.SetOutput(os.Stderr)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	if c.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
