// Package config handles TOML-based configuration loading and validation.
// Values are layered: defaults < config file < environment (.env included).
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvProxy       = "FBGRAB_PROXY"
	EnvUseProxy    = "FBGRAB_USE_PROXY"
	EnvDownloadDir = "FBGRAB_DOWNLOAD_DIR"
	EnvDebug       = "FBGRAB_DEBUG"
)

// Config holds all application configuration.
type Config struct {
	Proxy       string   `toml:"proxy"`
	UseProxy    bool     `toml:"use_proxy"`
	CDNMarker   string   `toml:"cdn_marker"` // Bare label, e.g. "fbcdn"
	CDNDomain   string   `toml:"cdn_host"`   // Thumbnail host; derived from CDNMarker when empty
	Placeholder string   `toml:"placeholder"`
	TrashWords  []string `toml:"trash_words"`
	Picker      string   `toml:"picker"`
	Player      string   `toml:"player"`
	Quality     string   `toml:"quality"`
	DownloadDir string   `toml:"download_dir"`
	Debug       bool     `toml:"debug"`
	LogFormat   string   `toml:"log_format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Proxy:       "",
		UseProxy:    false,
		CDNMarker:   "fbcdn",
		Placeholder: ".xx",
		Picker:      "tui",
		Player:      "mpv",
		Quality:     "hd",
		DownloadDir: "~/Videos/fbgrab",
		Debug:       false,
		LogFormat:   "text",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fbgrab"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "fbgrab"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, applies environment overrides and validates.
// If the config file doesn't exist, defaults are used.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(loadEnv(".env")); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadEnv merges a dotenv file with the process environment; the process wins.
// A missing dotenv file is not an error.
func loadEnv(dotenv string) map[string]string {
	env, err := godotenv.Read(dotenv)
	if err != nil {
		env = map[string]string{}
	}
	for _, key := range []string{EnvProxy, EnvUseProxy, EnvDownloadDir, EnvDebug} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

// ApplyEnv overrides values from env.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvProxy]; ok && v != "" {
		c.Proxy = v
		c.UseProxy = true
	}
	if v, ok := env[EnvUseProxy]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUseProxy, err)
		}
		c.UseProxy = b
	}
	if v, ok := env[EnvDownloadDir]; ok && v != "" {
		c.DownloadDir = v
	}
	if v, ok := env[EnvDebug]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	validPickers := map[string]bool{
		"tui": true, "fzf": true,
	}
	if !validPickers[strings.ToLower(c.Picker)] {
		return fmt.Errorf("unsupported picker %q (valid: tui, fzf)", c.Picker)
	}

	validQualities := map[string]bool{
		"sd": true, "hd": true,
	}
	if !validQualities[strings.ToLower(c.Quality)] {
		return fmt.Errorf("unsupported quality %q (valid: sd, hd)", c.Quality)
	}

	validFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("unsupported log format %q (valid: text, json)", c.LogFormat)
	}

	if c.CDNMarker == "" {
		return fmt.Errorf("cdn_marker cannot be empty")
	}

	if c.UseProxy {
		if c.Proxy == "" {
			return fmt.Errorf("use_proxy is set but proxy is empty")
		}
		u, err := url.Parse(c.Proxy)
		if err != nil {
			return fmt.Errorf("malformed proxy URL: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("proxy must be an http(s) URL, got %q", c.Proxy)
		}
	}

	return nil
}

// CDNHost returns the domain thumbnails must come from: cdn_host when set,
// otherwise the marker label under .net.
func (c *Config) CDNHost() string {
	if c.CDNDomain != "" {
		return c.CDNDomain
	}
	return c.CDNMarker + ".net"
}

// ExpandDownloadDir resolves ~ in the download directory path.
func (c *Config) ExpandDownloadDir() (string, error) {
	dir := c.DownloadDir
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return filepath.Abs(dir)
}
