// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	View        ViewConfig        `yaml:"view"`
	Camera      CameraConfig      `yaml:"camera"`
	ColorScheme ColorSchemeConfig `yaml:"colorscheme"`
	Render      RenderConfig      `yaml:"render"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings of the interactive viewer.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Samples    int  `yaml:"samples"` // MSAA samples, 0 disables
}

// ViewConfig holds the overlay and shading toggles.
type ViewConfig struct {
	ShowAxes          bool `yaml:"show_axes"`
	ShowScaleMarkers  bool `yaml:"show_scale_markers"`
	ScaleProportional bool `yaml:"scale_proportional"`
	ShowCrosshairs    bool `yaml:"show_crosshairs"`
	ShowEdges         bool `yaml:"show_edges"`
	ShowFaces         bool `yaml:"show_faces"`
	UseShaders        bool `yaml:"use_shaders"`
	ShowAuxAxes       bool `yaml:"show_aux_axes"`
	// AuxOffset places the auxiliary axes.
	AuxOffset [3]float64 `yaml:"aux_offset"`
}

// CameraConfig holds the initial camera.
type CameraConfig struct {
	Projection string     `yaml:"projection"` // perspective or orthogonal
	FOV        float64    `yaml:"fov"`
	Rotation   [3]float64 `yaml:"rotation"` // degrees about X, Y, Z
	Distance   float64    `yaml:"distance"`
	ViewAll    bool       `yaml:"view_all"`
	// RotateSpeed is degrees of rotation per dragged pixel.
	RotateSpeed float64 `yaml:"rotate_speed"`
	// ZoomSmoothing eases wheel zoom with a spring.
	ZoomSmoothing bool `yaml:"zoom_smoothing"`
}

// ColorSchemeConfig selects and locates color schemes.
type ColorSchemeConfig struct {
	Name  string `yaml:"name"`
	Dir   string `yaml:"dir"`   // extra scheme files, empty for built-ins only
	Watch bool   `yaml:"watch"` // reload schemes in Dir when they change
}

// RenderConfig holds model and output settings.
type RenderConfig struct {
	Model         string `yaml:"model"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Samples:    4,
		},
		View: ViewConfig{
			ShowAxes:         true,
			ShowScaleMarkers: true,
			ShowFaces:        true,
			ShowEdges:        false,
			UseShaders:       true,
		},
		Camera: CameraConfig{
			Projection:    "perspective",
			FOV:           22.5,
			Rotation:      [3]float64{35, 0, -25},
			Distance:      140,
			ViewAll:       true,
			RotateSpeed:   0.7,
			ZoomSmoothing: true,
		},
		ColorScheme: ColorSchemeConfig{
			Name: "Cornfield",
		},
		Render: RenderConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
