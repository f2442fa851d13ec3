package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Player != "mpv" {
		t.Errorf("default player = %q, want mpv", cfg.Player)
	}
	if cfg.Quality != "hd" {
		t.Errorf("default quality = %q, want hd", cfg.Quality)
	}
	if cfg.Picker != "tui" {
		t.Errorf("default picker = %q, want tui", cfg.Picker)
	}
	if cfg.CDNMarker != "fbcdn" || cfg.Placeholder != ".xx" {
		t.Errorf("default rewrite = %q/%q, want fbcdn/.xx", cfg.CDNMarker, cfg.Placeholder)
	}
	if cfg.UseProxy {
		t.Error("default use_proxy should be false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid player", func(c *Config) { c.Player = "notepad" }, true},
		{"invalid picker", func(c *Config) { c.Picker = "dmenu" }, true},
		{"invalid quality", func(c *Config) { c.Quality = "4k" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"empty cdn marker", func(c *Config) { c.CDNMarker = "" }, true},
		{"proxy enabled without url", func(c *Config) { c.UseProxy = true }, true},
		{"proxy with bad scheme", func(c *Config) { c.UseProxy = true; c.Proxy = "ftp://p/x" }, true},
		{"proxy without host", func(c *Config) { c.UseProxy = true; c.Proxy = "http:///x" }, true},
		{"proxy url ignored when disabled", func(c *Config) { c.Proxy = "ftp://p/x" }, false},
		{"valid proxy", func(c *Config) { c.UseProxy = true; c.Proxy = "http://localhost:3000/api/proxy" }, false},
		{"valid vlc", func(c *Config) { c.Player = "vlc" }, false},
		{"valid fzf", func(c *Config) { c.Picker = "fzf" }, false},
		{"valid sd upper", func(c *Config) { c.Quality = "SD" }, false},
		{"valid json logs", func(c *Config) { c.LogFormat = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCDNHost(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		domain string
		want   string
	}{
		{"default marker", "fbcdn", "", "fbcdn.net"},
		{"custom label", "akcdn", "", "akcdn.net"},
		{"explicit host wins", "fbcdn", "cdn.example.org", "cdn.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.CDNMarker = tt.marker
			cfg.CDNDomain = tt.domain
			if got := cfg.CDNHost(); got != tt.want {
				t.Errorf("CDNHost() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "fbgrab")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
player = "vlc"
picker = "fzf"
quality = "sd"
trash_words = ["JUNK", "NOISE"]
proxy = "https://grab.example/api/proxy"
use_proxy = true
cdn_host = "cdn.example.org"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Player != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.Player)
	}
	if cfg.Picker != "fzf" {
		t.Errorf("picker = %q, want fzf", cfg.Picker)
	}
	if cfg.Quality != "sd" {
		t.Errorf("quality = %q, want sd", cfg.Quality)
	}
	if len(cfg.TrashWords) != 2 || cfg.TrashWords[0] != "JUNK" {
		t.Errorf("trash_words = %v, want [JUNK NOISE]", cfg.TrashWords)
	}
	if !cfg.UseProxy || cfg.Proxy != "https://grab.example/api/proxy" {
		t.Errorf("proxy = %q (use %v), want https://grab.example/api/proxy", cfg.Proxy, cfg.UseProxy)
	}
	if cfg.CDNMarker != "fbcdn" {
		t.Errorf("unset cdn_marker should keep default, got %q", cfg.CDNMarker)
	}
	if got := cfg.CDNHost(); got != "cdn.example.org" {
		t.Errorf("CDNHost() = %q, want cdn.example.org", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Player != "mpv" {
		t.Errorf("missing file should return defaults, got player = %q", cfg.Player)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	dir := filepath.Join(tmpDir, "fbgrab")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`picker = "dmenu"`), 0644)

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an invalid picker")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvProxy, "http://localhost:3000/api/proxy")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.UseProxy || cfg.Proxy != "http://localhost:3000/api/proxy" {
		t.Errorf("proxy = %q (use %v), want env value", cfg.Proxy, cfg.UseProxy)
	}
	if !cfg.Debug {
		t.Error("debug should be enabled from environment")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(*Config) bool
		wantErr bool
	}{
		{"empty", map[string]string{}, func(c *Config) bool { return !c.UseProxy }, false},
		{"proxy enables use_proxy", map[string]string{EnvProxy: "https://p/x"}, func(c *Config) bool { return c.UseProxy }, false},
		{"use_proxy false wins", map[string]string{EnvProxy: "https://p/x", EnvUseProxy: "false"}, func(c *Config) bool { return !c.UseProxy }, false},
		{"download dir", map[string]string{EnvDownloadDir: "/tmp/v"}, func(c *Config) bool { return c.DownloadDir == "/tmp/v" }, false},
		{"bad bool", map[string]string{EnvDebug: "maybe"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyEnv(tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("ApplyEnv() produced unexpected config %+v", cfg)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FBGRAB_DOWNLOAD_DIR=/srv/videos\n"), 0644); err != nil {
		t.Fatal(err)
	}

	env := loadEnv(path)
	if env[EnvDownloadDir] != "/srv/videos" {
		t.Errorf("env[%s] = %q, want /srv/videos", EnvDownloadDir, env[EnvDownloadDir])
	}

	if got := loadEnv(filepath.Join(t.TempDir(), "missing.env")); got == nil {
		t.Error("missing dotenv file should yield an empty map")
	}
}

func TestExpandDownloadDir(t *testing.T) {
	cfg := Default()
	cfg.DownloadDir = "/tmp/test-downloads"

	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		t.Fatalf("ExpandDownloadDir() error: %v", err)
	}
	if dir != "/tmp/test-downloads" {
		t.Errorf("got %q, want /tmp/test-downloads", dir)
	}
}
