// cadview-render renders models to image files without a visible window.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/backend/null"
	"github.com/Faultbox/cadview/internal/backend/offscreen"
	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/internal/config"
	"github.com/Faultbox/cadview/internal/logger"
	"github.com/Faultbox/cadview/internal/scene"
	"github.com/Faultbox/cadview/internal/scene/render"
	"github.com/Faultbox/cadview/internal/view"
)

var (
	configPath string
	debug      bool
	schemeDir  string

	output         string
	cameraArg      string
	viewArg        string
	sizeArg        string
	schemeName     string
	projection     string
	viewAll        bool
	showAxes       bool
	showScale      bool
	showCrosshairs bool
	showEdges      bool
	showAuxAxes    bool
	auxOffset      string
	dryRun         bool

	listRoles bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "cadview-render",
		Short: "Offscreen model renderer",
		Long: `cadview-render - offscreen renderer for glTF models

Renders a model with the cadview camera, color schemes and overlays
(axes, scale markers, crosshairs) into a PNG, BMP or TIFF image.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if debug {
				level = "debug"
			}
			return logger.Init(level, "")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&schemeDir, "colorscheme-dir", "", "Directory with extra color scheme files")

	renderCmd := &cobra.Command{
		Use:   "render <model.glb|model.gltf>",
		Short: "Render a model to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0])
		},
	}
	f := renderCmd.Flags()
	f.StringVarP(&output, "output", "o", "out.png", "Output image (.png, .bmp, .tif)")
	f.StringVar(&cameraArg, "camera", "", "Camera: tx,ty,tz,rx,ry,rz,dist (gimbal) or ex,ey,ez,cx,cy,cz (vector)")
	f.StringVar(&viewArg, "view", "", "Standard view: top, bottom, left, right, front, back, diagonal")
	f.StringVar(&sizeArg, "size", "800x600", "Image size WIDTHxHEIGHT")
	f.StringVar(&schemeName, "colorscheme", "", "Color scheme name")
	f.StringVar(&projection, "projection", "", "Projection: perspective or ortho")
	f.BoolVar(&viewAll, "viewall", false, "Fit the model into the view")
	f.BoolVar(&showAxes, "show-axes", false, "Draw axes and the corner triad")
	f.BoolVar(&showScale, "show-scale", false, "Draw scale markers on the axes")
	f.BoolVar(&showCrosshairs, "show-crosshairs", false, "Draw crosshairs at the pivot")
	f.BoolVar(&showEdges, "show-edges", false, "Draw mesh edges")
	f.BoolVar(&showAuxAxes, "show-aux-axes", false, "Draw auxiliary axes")
	f.StringVar(&auxOffset, "aux-offset", "", "Auxiliary axes position: x,y,z")
	f.BoolVar(&dryRun, "dry-run", false, "Run the view without a GL context and report draw counts")

	schemesCmd := &cobra.Command{
		Use:   "schemes",
		Short: "List available color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemes()
		},
	}
	schemesCmd.Flags().BoolVar(&listRoles, "roles", false, "Print every role color of each scheme")

	infoCmd := &cobra.Command{
		Use:   "info [model.glb]",
		Short: "Show renderer information, and model statistics if a model is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}

	cmd.AddCommand(renderCmd, schemesCmd, infoCmd)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadRegistry() (*colorscheme.Registry, error) {
	reg := colorscheme.NewRegistry()
	if schemeDir == "" {
		return reg, nil
	}
	if _, err := reg.LoadDir(schemeDir); err != nil {
		return reg, err
	}
	return reg, nil
}

// configure applies the config file and then the explicitly set flags.
func configure(cmd *cobra.Command, v *view.View, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("colorscheme") {
		cfg.ColorScheme.Name = schemeName
	}
	if flags.Changed("projection") {
		cfg.Camera.Projection = projection
	}
	// overlays are off unless asked for
	cfg.View.ShowAxes = showAxes
	cfg.View.ShowScaleMarkers = showScale
	cfg.View.ShowCrosshairs = showCrosshairs
	if flags.Changed("show-edges") {
		cfg.View.ShowEdges = showEdges
	}
	cfg.View.ShowAuxAxes = showAuxAxes
	if auxOffset != "" {
		off, err := config.ParseVec3(auxOffset)
		if err != nil {
			return err
		}
		cfg.View.AuxOffset = off
		cfg.View.ShowAuxAxes = true
	}
	// the shader path is optional here; fall back silently
	cfg.View.UseShaders = v.Capabilities().Shaders

	if _, err := cfg.Camera.Build(); err != nil {
		return fmt.Errorf("camera config: %w", err)
	}
	if err := cfg.Apply(v); err != nil {
		if !errors.Is(err, colorscheme.ErrSchemeNotFound) {
			return err
		}
		logger.Warn("unknown color scheme, using default", zap.String("name", cfg.ColorScheme.Name))
	}

	cam := v.Camera()
	if cameraArg != "" {
		params, err := config.ParseFloats(cameraArg)
		if err != nil {
			return err
		}
		if err := cam.Setup(params); err != nil {
			return err
		}
	}
	if viewArg != "" {
		p, err := camera.ParsePreset(viewArg)
		if err != nil {
			return err
		}
		cam.SetPreset(p)
	}
	if err := v.SetCamera(cam); err != nil {
		return err
	}
	if viewAll || (cameraArg == "" && cfg.Camera.ViewAll) {
		v.ViewAll(1.1)
	}
	return nil
}

func runRender(cmd *cobra.Command, modelPath string) error {
	width, height, err := config.ParseSize(sizeArg)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	mesh, err := scene.Load(modelPath)
	if err != nil {
		return err
	}

	if dryRun {
		return dryRender(cmd, mesh, width, height, reg, cfg)
	}

	b, err := offscreen.New(width, height, reg)
	if err != nil {
		return err
	}
	defer b.Close()

	r, err := render.New(mesh)
	if err != nil {
		return err
	}
	defer r.Close()
	b.SetRenderer(r)

	if err := configure(cmd, b.View, cfg); err != nil {
		return err
	}
	logger.Debug("rendering", zap.String("camera", b.Camera().StatusText()))

	if err := b.PaintGL(); err != nil {
		return err
	}
	if err := b.Save(output); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", output, width, height)
	return nil
}

func dryRender(cmd *cobra.Command, mesh *scene.Mesh, width, height int, reg *colorscheme.Registry, cfg *config.Config) error {
	b := null.New(width, height, reg)
	b.SetRenderer(&null.Renderer{Box: mesh.Bounds})
	if err := configure(cmd, b.View, cfg); err != nil {
		return err
	}
	if err := b.PaintGL(); err != nil {
		return err
	}

	s := b.Stats()
	fmt.Println(b.Camera().StatusText())
	fmt.Printf("Scheme:     %s\n", b.ColorScheme().Name())
	fmt.Printf("Passes:     %d\n", s.Passes)
	fmt.Printf("Vertices:   %d\n", s.Vertices)
	names := make([]string, 0, len(s.ByPass))
	for name := range s.ByPass {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %d\n", name, s.ByPass[name])
	}
	return nil
}

func runSchemes() error {
	reg, err := loadRegistry()
	if err != nil {
		logger.Warn("loading color schemes", zap.Error(err))
	}
	for _, name := range reg.Names() {
		s, _ := reg.Lookup(name)
		marker := " "
		if name == colorscheme.DefaultName {
			marker = "*"
		}
		fmt.Printf("%s %-16s %5d  background %s\n", marker, name, s.Index(), s.Color(colorscheme.Background).Hex())
		if !listRoles {
			continue
		}
		for _, r := range colorscheme.Roles() {
			fmt.Printf("      %-16s %s\n", r, s.Color(r).Hex())
		}
	}
	return nil
}

func runInfo(args []string) error {
	b, err := offscreen.New(16, 16, nil)
	if err != nil {
		// no GL available: report the fallback device
		logger.Debug("offscreen context unavailable", zap.Error(err))
		fmt.Println(null.New(16, 16, nil).RendererInfo())
	} else {
		fmt.Println(b.RendererInfo())
		b.Close()
	}

	if len(args) == 0 {
		return nil
	}
	mesh, err := scene.Load(args[0])
	if err != nil {
		return err
	}
	size := mesh.Bounds.Size()
	center := mesh.Bounds.Center()

	fmt.Println()
	fmt.Printf("Model:      %s\n", mesh.Name)
	fmt.Printf("Vertices:   %d\n", len(mesh.Positions))
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Printf("Size:       %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     %.3f, %.3f, %.3f\n", center.X, center.Y, center.Z)
	return nil
}
