package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/cadview/internal/backend/null"
	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/logger"
)

func init() {
	logger.InitNop()
}

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test view defaults
	if !cfg.View.ShowAxes || !cfg.View.ShowScaleMarkers || !cfg.View.ShowFaces {
		t.Errorf("expected axes, scale markers and faces on, got %+v", cfg.View)
	}
	if cfg.View.ShowCrosshairs {
		t.Error("expected crosshairs off by default")
	}

	// Test camera defaults
	if cfg.Camera.Projection != "perspective" {
		t.Errorf("expected perspective projection, got %s", cfg.Camera.Projection)
	}
	if cfg.Camera.FOV != camera.DefaultFOV {
		t.Errorf("expected fov %v, got %v", camera.DefaultFOV, cfg.Camera.FOV)
	}
	if cfg.Camera.Distance != camera.DefaultDistance {
		t.Errorf("expected distance %v, got %v", camera.DefaultDistance, cfg.Camera.Distance)
	}

	if cfg.ColorScheme.Name != colorscheme.DefaultName {
		t.Errorf("expected scheme %s, got %s", colorscheme.DefaultName, cfg.ColorScheme.Name)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

view:
  show_axes: false
  show_crosshairs: true
  show_edges: true

camera:
  projection: ortho
  fov: 30
  rotation: [10, 0, 45]
  distance: 250

colorscheme:
  name: Sunset
  dir: /tmp/schemes
  watch: true

render:
  model: part.glb

logging:
  level: "debug"
  log_file: "cadview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Window.FPSLimit)
	}

	if cfg.View.ShowAxes {
		t.Error("expected show_axes to be false")
	}
	if !cfg.View.ShowCrosshairs || !cfg.View.ShowEdges {
		t.Error("expected crosshairs and edges on")
	}
	// untouched keys keep their defaults
	if !cfg.View.ShowFaces {
		t.Error("expected show_faces to keep its default")
	}

	if cfg.Camera.Projection != "ortho" {
		t.Errorf("expected projection ortho, got %s", cfg.Camera.Projection)
	}
	if cfg.Camera.Rotation != [3]float64{10, 0, 45} {
		t.Errorf("expected rotation [10 0 45], got %v", cfg.Camera.Rotation)
	}
	if cfg.Camera.Distance != 250 {
		t.Errorf("expected distance 250, got %v", cfg.Camera.Distance)
	}

	if cfg.ColorScheme.Name != "Sunset" || cfg.ColorScheme.Dir != "/tmp/schemes" || !cfg.ColorScheme.Watch {
		t.Errorf("unexpected colorscheme config %+v", cfg.ColorScheme)
	}
	if cfg.Render.Model != "part.glb" {
		t.Errorf("expected model part.glb, got %s", cfg.Render.Model)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "cadview.log" {
		t.Errorf("expected log file 'cadview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromFileRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "window:\n  width: 0\n"},
		{"negative fps", "window:\n  fps_limit: -1\n"},
		{"unknown projection", "camera:\n  projection: fisheye\n"},
		{"zero distance", "camera:\n  distance: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Errorf("expected error for %q", tt.yaml)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  distance: 42\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Camera.Distance != 42 {
		t.Errorf("expected distance 42, got %v", cfg.Camera.Distance)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("expected default width, got %d", cfg.Window.Width)
	}

	if _, err := LoadFile("/nonexistent/render.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 999
	cfg.ColorScheme.Name = "Metallic"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Window.Width != 999 {
		t.Errorf("expected width 999, got %d", loaded.Window.Width)
	}
	if loaded.ColorScheme.Name != "Metallic" {
		t.Errorf("expected scheme Metallic, got %s", loaded.ColorScheme.Name)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "colorscheme and projection flags",
			setup: func() {
				*flagColorScheme = "Nature"
				*flagProjection = "ortho"
			},
			verify: func(cfg *Config) {
				if cfg.ColorScheme.Name != "Nature" {
					t.Errorf("expected scheme Nature, got %s", cfg.ColorScheme.Name)
				}
				if cfg.Camera.Projection != "ortho" {
					t.Errorf("expected projection ortho, got %s", cfg.Camera.Projection)
				}
			},
			teardown: func() {
				*flagColorScheme = ""
				*flagProjection = ""
			},
		},
		{
			name: "model flag",
			setup: func() {
				*flagModel = "bracket.glb"
			},
			verify: func(cfg *Config) {
				if cfg.Render.Model != "bracket.glb" {
					t.Errorf("expected model bracket.glb, got %s", cfg.Render.Model)
				}
			},
			teardown: func() {
				*flagModel = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestCameraBuild(t *testing.T) {
	cc := Default().Camera
	cc.Projection = "ortho"
	cc.FOV = 45

	cam, err := cc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cam.Projection != camera.Orthogonal {
		t.Errorf("expected orthogonal projection, got %v", cam.Projection)
	}
	if cam.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cam.FOV)
	}
	g, ok := cam.Gimbal()
	if !ok {
		t.Fatal("expected gimbal camera")
	}
	if g.Distance != camera.DefaultDistance || g.Rotation.X != 35 || g.Rotation.Z != -25 {
		t.Errorf("unexpected gimbal params %+v", g)
	}

	cc.Distance = 0
	if _, err := cc.Build(); !errors.Is(err, camera.ErrInvalidCamera) {
		t.Errorf("expected ErrInvalidCamera for zero distance, got %v", err)
	}

	cc = Default().Camera
	cc.Projection = "fisheye"
	if _, err := cc.Build(); err == nil {
		t.Error("expected error for unknown projection")
	}
}

func TestApply(t *testing.T) {
	b := null.New(200, 100, nil)

	cfg := Default()
	cfg.View.ShowCrosshairs = true
	cfg.View.ShowAxes = false
	cfg.View.UseShaders = false
	cfg.ColorScheme.Name = "Sunset"
	cfg.Camera.Distance = 80

	if err := cfg.Apply(b.View); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !b.ShowCrosshairs() || b.ShowAxes() {
		t.Error("toggles not applied")
	}
	if b.ColorScheme().Name() != "Sunset" {
		t.Errorf("expected scheme Sunset, got %s", b.ColorScheme().Name())
	}
	if b.Camera().ZoomValue() != 80 {
		t.Errorf("expected distance 80, got %v", b.Camera().ZoomValue())
	}
}

func TestApplyReportsErrors(t *testing.T) {
	b := null.New(200, 100, nil)

	cfg := Default()
	cfg.ColorScheme.Name = "No Such Scheme"
	// the null device has no shaders
	cfg.View.UseShaders = true

	err := cfg.Apply(b.View)
	if !errors.Is(err, colorscheme.ErrSchemeNotFound) {
		t.Errorf("expected ErrSchemeNotFound, got %v", err)
	}
	if b.ColorScheme().Name() != colorscheme.DefaultName {
		t.Errorf("expected default scheme installed, got %s", b.ColorScheme().Name())
	}
	if b.Camera().ZoomValue() != camera.DefaultDistance {
		t.Errorf("camera should still be applied, got distance %v", b.Camera().ZoomValue())
	}
}

func TestApplyAuxAxes(t *testing.T) {
	b := null.New(200, 100, nil)

	cfg := Default()
	cfg.View.ShowAuxAxes = true
	cfg.View.AuxOffset = [3]float64{5, -2, 1}

	// applying twice places the axes, it does not accumulate
	for range 2 {
		if err := cfg.Apply(b.View); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
	}
	if !b.ShowAuxAxes() {
		t.Error("expected aux axes shown")
	}
	if x, y, z := b.AuxAxes(); x != 5 || y != -2 || z != 1 {
		t.Errorf("expected aux offset (5,-2,1), got (%v,%v,%v)", x, y, z)
	}
}

func TestCaptureSaveRoundTrip(t *testing.T) {
	b := null.New(200, 100, nil)
	if err := Default().Apply(b.View); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	b.SetShowEdges(true)
	b.SetShowAxes(false)
	b.SetShowAuxAxes(true)
	b.SetAuxAxes(3, 0, 0)
	b.SetAuxAxes(0, 4, 0)
	if err := b.SetColorSchemeByName("Sunset"); err != nil {
		t.Fatalf("SetColorSchemeByName failed: %v", err)
	}
	cam := b.Camera()
	cam.Projection = camera.Orthogonal
	cam.Zoom(50, false)
	if err := b.SetCamera(cam); err != nil {
		t.Fatalf("SetCamera failed: %v", err)
	}

	cfg := Default()
	cfg.Capture(b.View)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if !loaded.View.ShowEdges || loaded.View.ShowAxes || !loaded.View.ShowAuxAxes {
		t.Errorf("toggles not captured: %+v", loaded.View)
	}
	if loaded.View.AuxOffset != [3]float64{3, 4, 0} {
		t.Errorf("expected aux offset [3 4 0], got %v", loaded.View.AuxOffset)
	}
	if loaded.ColorScheme.Name != "Sunset" {
		t.Errorf("expected scheme Sunset, got %s", loaded.ColorScheme.Name)
	}
	if loaded.Camera.Projection != "orthogonal" || loaded.Camera.Distance != 50 {
		t.Errorf("camera not captured: %+v", loaded.Camera)
	}

	// the saved file restores the same view
	restored := null.New(200, 100, nil)
	if err := loaded.Apply(restored.View); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if x, y, _ := restored.AuxAxes(); x != 3 || y != 4 {
		t.Errorf("expected restored aux offset (3,4), got (%v,%v)", x, y)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"800x600", 800, 600, false},
		{" 1920X1080 ", 1920, 1080, false},
		{"800", 0, 0, true},
		{"0x600", 0, 0, true},
		{"axb", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("ParseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
			}
		})
	}
}

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats("0, 0, 0, 55,0,25, 140")
	if err != nil {
		t.Fatalf("ParseFloats failed: %v", err)
	}
	want := []float64{0, 0, 0, 55, 0, 25, 140}
	if len(got) != len(want) {
		t.Fatalf("expected %d numbers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	var cam camera.Camera
	if err := cam.Setup(got); err != nil {
		t.Errorf("gimbal params rejected: %v", err)
	}

	if _, err := ParseFloats("1,,2"); err == nil {
		t.Error("expected error for empty field")
	}
}

func TestParseVec3(t *testing.T) {
	got, err := ParseVec3("1.5, -2, 0")
	if err != nil {
		t.Fatalf("ParseVec3 failed: %v", err)
	}
	if got != [3]float64{1.5, -2, 0} {
		t.Errorf("expected [1.5 -2 0], got %v", got)
	}
	for _, in := range []string{"1,2", "1,2,3,4", "a,b,c"} {
		if _, err := ParseVec3(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}
