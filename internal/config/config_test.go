package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/slippy/internal/input/key"
	"github.com/dshills/slippy/internal/input/keymap"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if !cfg.Keyboard.Enabled {
		t.Error("Keyboard.Enabled = false, want true")
	}
	if cfg.Keyboard.PanDistance != 80 || cfg.Keyboard.ZoomDelta != 1 {
		t.Errorf("magnitudes = %v/%v, want 80/1", cfg.Keyboard.PanDistance, cfg.Keyboard.ZoomDelta)
	}
}

func TestParse_TOML(t *testing.T) {
	data := []byte(`
[keyboard]
enabled = false
pan_distance = 120

[keyboard.bindings]
"pan.north" = ["Up", "k"]

[map]
lat = 51.5
lng = -0.12
zoom = 10

[logging]
level = "debug"

[plugins]
scripts = ["a.lua", "b.lua"]
`)
	cfg, err := Parse(data, FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Keyboard.Enabled {
		t.Error("Keyboard.Enabled = true, want false")
	}
	if cfg.Keyboard.PanDistance != 120 {
		t.Errorf("PanDistance = %v, want 120", cfg.Keyboard.PanDistance)
	}
	if cfg.Keyboard.ZoomDelta != 1 {
		t.Errorf("ZoomDelta = %v, want default 1", cfg.Keyboard.ZoomDelta)
	}
	if got := cfg.Keyboard.Bindings["pan.north"]; len(got) != 2 || got[1] != "k" {
		t.Errorf("Bindings[pan.north] = %v, want [Up k]", got)
	}
	if cfg.Map.Lat != 51.5 || cfg.Map.Lng != -0.12 || cfg.Map.Zoom != 10 {
		t.Errorf("Map = %+v", cfg.Map)
	}
	if cfg.Map.MaxZoom != 18 {
		t.Errorf("MaxZoom = %v, want default 18", cfg.Map.MaxZoom)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.Plugins.Scripts) != 2 {
		t.Errorf("Plugins.Scripts = %v", cfg.Plugins.Scripts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
keyboard:
  zoom_delta: 2
  bindings:
    zoom.in: ["i"]
map:
  zoom: 4
`)
	cfg, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Keyboard.ZoomDelta != 2 {
		t.Errorf("ZoomDelta = %v, want 2", cfg.Keyboard.ZoomDelta)
	}
	if cfg.Map.Zoom != 4 {
		t.Errorf("Map.Zoom = %v, want 4", cfg.Map.Zoom)
	}

	table, err := cfg.Keyboard.Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	a, ok := table.Resolve(key.NewRuneEvent('i', 0))
	if !ok || a.Kind != keymap.KindZoomIn || a.Delta != 2 {
		t.Errorf("Resolve(i) = %v, %v, want zoom.in(+2)", a, ok)
	}
	if _, ok := table.Resolve(key.NewRuneEvent('+', 0)); ok {
		t.Error("Resolve(+) still bound after zoom.in override")
	}
}

func TestParse_EmptyYAML(t *testing.T) {
	cfg, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse(empty) error = %v", err)
	}
	if cfg.Keyboard.PanDistance != 80 {
		t.Errorf("PanDistance = %v, want default", cfg.Keyboard.PanDistance)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   Format
		wantLine bool
	}{
		{"toml syntax", "[keyboard\npan_distance = 1", FormatTOML, true},
		{"toml unknown key", "[keyboard]\npan_speed = 1", FormatTOML, false},
		{"toml wrong type", "[keyboard]\nenabled = \"yes\"", FormatTOML, false},
		{"yaml unknown key", "keyboard:\n  pan_speed: 1\n", FormatYAML, false},
		{"yaml syntax", "keyboard: [\n", FormatYAML, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error = %v, want *ParseError", err)
			}
			if tt.wantLine && perr.Line == 0 {
				t.Errorf("ParseError.Line = 0, want position")
			}
		})
	}

	if _, err := Parse(nil, "ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Parse(ini) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"slippy.toml", FormatTOML, false},
		{"/etc/slippy/config.YAML", FormatYAML, false},
		{"config.yml", FormatYAML, false},
		{"config.json", "", true},
		{"config", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		path   string
	}{
		{"pan distance", func(c *Config) { c.Keyboard.PanDistance = 0 }, "keyboard.pan_distance"},
		{"zoom delta", func(c *Config) { c.Keyboard.ZoomDelta = -1 }, "keyboard.zoom_delta"},
		{"shift multiplier", func(c *Config) { c.Keyboard.ShiftMultiplier = 0.5 }, "keyboard.shift_multiplier"},
		{"unknown action", func(c *Config) { c.Keyboard.Bindings = map[string][]string{"pan.up": {"k"}} }, "keyboard.bindings"},
		{"bad key", func(c *Config) { c.Keyboard.Bindings = map[string][]string{"pan.north": {"<C-"}} }, "keyboard.bindings"},
		{"conflict", func(c *Config) { c.Keyboard.Bindings = map[string][]string{"pan.north": {"Escape"}} }, "keyboard.bindings"},
		{"latitude", func(c *Config) { c.Map.Lat = 91 }, "map.lat"},
		{"longitude", func(c *Config) { c.Map.Lng = -181 }, "map.lng"},
		{"zoom range", func(c *Config) { c.Map.MinZoom, c.Map.MaxZoom = 5, 3 }, "map.max_zoom"},
		{"zoom", func(c *Config) { c.Map.Zoom = 19 }, "map.zoom"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() error = %v, want ErrValidationFailed", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Key != tt.path {
				t.Errorf("Validate() error = %v, want path %s", err, tt.path)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Keyboard.PanDistance = -1
	cfg.Logging.Level = "nope"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "keyboard.pan_distance") || !strings.Contains(msg, "logging.level") {
		t.Errorf("Validate() error = %q, want both failures", msg)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SLIPPY_PAN_DISTANCE":     "40",
		"SLIPPY_ZOOM_DELTA":       "0.5",
		"SLIPPY_KEYBOARD_ENABLED": "false",
		"SLIPPY_LOG_LEVEL":        "debug",
		"SLIPPY_LOG_FILE":         "/tmp/slippy.log",
		"SLIPPY_LAT":              "10",
		"OTHER_ZOOM":              "9",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Keyboard.PanDistance != 40 || cfg.Keyboard.ZoomDelta != 0.5 {
		t.Errorf("magnitudes = %v/%v, want 40/0.5", cfg.Keyboard.PanDistance, cfg.Keyboard.ZoomDelta)
	}
	if cfg.Keyboard.Enabled {
		t.Error("Keyboard.Enabled = true, want false")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.File != "/tmp/slippy.log" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Map.Lat != 10 || cfg.Map.Zoom != 2 {
		t.Errorf("Map = %+v, want lat 10 and default zoom", cfg.Map)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "SLIPPY_ZOOM_DELTA" {
			return "lots", true
		}
		return "", false
	}
	err := Default().ApplyEnv(lookup)
	if !errors.Is(err, ErrInvalidEnv) {
		t.Errorf("ApplyEnv() error = %v, want ErrInvalidEnv", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slippy.toml")
	if err := os.WriteFile(path, []byte("[map]\nzoom = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SLIPPY_PAN_DISTANCE", "64")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.Zoom != 7 {
		t.Errorf("Map.Zoom = %v, want 7", cfg.Map.Zoom)
	}
	if cfg.Keyboard.PanDistance != 64 {
		t.Errorf("PanDistance = %v, want 64 from environment", cfg.Keyboard.PanDistance)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
	if _, err := Load(filepath.Join(dir, "slippy.ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(ini) error = %v, want ErrUnknownFormat", err)
	}
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load(\"\") returned nil config")
	}
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	for _, v := range vars {
		if !strings.HasPrefix(v, EnvPrefix) {
			t.Errorf("EnvVars() contains %q without prefix", v)
		}
	}
	if len(vars) != len(envMapping) {
		t.Errorf("len(EnvVars()) = %d, want %d", len(vars), len(envMapping))
	}
}

func TestWatcher_ReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slippy.toml")
	if err := os.WriteFile(path, []byte("[map]\nzoom = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(path, func(p string) { changed <- p }, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[map]\nzoom = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != w.Path() {
			t.Errorf("callback path = %q, want %q", p, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_Close(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slippy.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, func(string) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestWatcher_CloseWaitsForCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slippy.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool
	w, err := NewWatcher(path, func(string) {
		once.Do(func() { close(started) })
		<-release
		finished.Store(true)
	}, WithDebounce(0))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("[map]\nzoom = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		_ = w.Close()
		t.Fatal("no change reported")
	}

	closed := make(chan struct{})
	go func() {
		_ = w.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close() returned while the callback was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close() did not return after the callback finished")
	}
	if !finished.Load() {
		t.Error("Close() returned before the callback finished")
	}
}
