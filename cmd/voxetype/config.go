package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/voxetype/pkg/math3d"
	"github.com/taigrr/voxetype/pkg/render"
)

// Mode selects what the scene draws.
type Mode string

const (
	ModeTextured  Mode = "textured"  // textured cube, Lambert lit
	ModeLit       Mode = "lit"       // flat-colored cube, glyph follows the light
	ModeNormals   Mode = "normals"   // cube colored by its normals
	ModeWireframe Mode = "wireframe" // cube edges as lines
	ModePoints    Mode = "points"    // cube corners as points
	ModeModel     Mode = "model"     // glTF/GLB model from Config.Model
)

var modes = []Mode{ModeTextured, ModeLit, ModeNormals, ModeWireframe, ModePoints, ModeModel}

// Next cycles to the following mode. The model mode is skipped when no
// model is loaded.
func (m Mode) Next(haveModel bool) Mode {
	for i, mode := range modes {
		if mode != m {
			continue
		}
		next := modes[(i+1)%len(modes)]
		if next == ModeModel && !haveModel {
			next = modes[0]
		}
		return next
	}
	return modes[0]
}

// Config holds everything the viewer can be told from a YAML file or flags.
// Flags win over the file.
type Config struct {
	FPS        int     `yaml:"fps"`
	Background string  `yaml:"background"` // hex, e.g. "#1e1e28"
	Mode       Mode    `yaml:"mode"`
	HUD        bool    `yaml:"hud"`
	Cull       bool    `yaml:"cull"` // back-face culling
	Ramp       string  `yaml:"ramp"` // glyphs darkest first
	LogFile    string  `yaml:"log_file"`
	Camera     Camera  `yaml:"camera"`
	Texture    Texture `yaml:"texture"`
	Model      string  `yaml:"model"`
	Light      Light   `yaml:"light"`
	Fog        Fog     `yaml:"fog"`
}

// Camera configures the orbit camera.
type Camera struct {
	Radius      float64 `yaml:"radius"`
	MoveSpeed   float64 `yaml:"move_speed"`   // units per second
	RotateSpeed float64 `yaml:"rotate_speed"` // radians per second
	FOV         float64 `yaml:"fov"`          // vertical, degrees
}

// Texture configures the cube texture. An empty Path uses a checkerboard.
type Texture struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Raw    bool   `yaml:"raw"` // glyph+RGB records instead of an image
}

// Light configures the directional light.
type Light struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
	Ambient float64 `yaml:"ambient"`
}

// Fog fades shaded surfaces into the background between Near and Far
// units from the camera. A zero Far turns it off.
type Fog struct {
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// Dir returns the direction towards the light.
func (l Light) Dir() math3d.Vec3 {
	return math3d.V3(l.X, l.Y, l.Z)
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FPS:        60,
		Background: "#000000",
		Mode:       ModeTextured,
		HUD:        true,
		Cull:       true,
		Ramp:       render.DefaultRamp,
		Camera: Camera{
			Radius:      3,
			MoveSpeed:   2,
			RotateSpeed: 1.5,
			FOV:         60,
		},
		Texture: Texture{Width: 16, Height: 16},
		Light:   Light{X: 0.5, Y: 1, Z: 0.8, Ambient: 0.15},
		Fog:     Fog{Near: 3, Far: 12},
	}
}

// LoadConfig merges the YAML file at path into cfg. Keys missing from the
// file keep their current value.
func LoadConfig(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if _, err := render.ParseHex(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background %q: %w", c.Background, err))
	}
	if !validMode(c.Mode) {
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.Mode == ModeModel && c.Model == "" {
		errs = append(errs, errors.New("mode model needs a model path"))
	}
	if c.Ramp == "" {
		errs = append(errs, errors.New("ramp must not be empty"))
	}
	if c.Camera.Radius <= 0 || c.Camera.MoveSpeed <= 0 || c.Camera.RotateSpeed <= 0 {
		errs = append(errs, errors.New("camera radius and speeds must be positive"))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov must be in (0, 180) degrees, got %v", c.Camera.FOV))
	}
	if c.Texture.Width <= 0 || c.Texture.Height <= 0 {
		errs = append(errs, fmt.Errorf("texture size must be positive, got %dx%d", c.Texture.Width, c.Texture.Height))
	}
	if c.Light.Dir().Len() == 0 {
		errs = append(errs, errors.New("light direction must not be zero"))
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		errs = append(errs, fmt.Errorf("ambient must be in [0, 1], got %v", c.Light.Ambient))
	}
	if c.Fog.Far != 0 && (c.Fog.Near < 0 || c.Fog.Far <= c.Fog.Near) {
		errs = append(errs, fmt.Errorf("fog needs 0 <= near < far, got %v..%v", c.Fog.Near, c.Fog.Far))
	}
	return errors.Join(errs...)
}

func validMode(m Mode) bool {
	for _, mode := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

// BackgroundColor returns the parsed background. Call Validate first.
func (c *Config) BackgroundColor() render.Color {
	col, err := render.ParseHex(c.Background)
	if err != nil {
		return render.ColorBlack
	}
	return col
}

// modeFlag adapts Mode to flag.Value.
type modeFlag struct{ m *Mode }

func (f modeFlag) String() string {
	if f.m == nil {
		return ""
	}
	return string(*f.m)
}

func (f modeFlag) Set(s string) error {
	m := Mode(strings.ToLower(s))
	if !validMode(m) {
		return fmt.Errorf("unknown mode %q", s)
	}
	*f.m = m
	return nil
}

// newFlagSet binds the command-line flags to cfg. The returned pointer
// receives the -config path.
func newFlagSet(cfg *Config, output io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("voxetype", flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "Path to a YAML config file")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Target FPS")
	fs.StringVar(&cfg.Background, "bg", cfg.Background, "Background color (#rrggbb)")
	fs.Var(modeFlag{&cfg.Mode}, "mode", "Scene: textured, lit, normals, wireframe, points or model")
	fs.BoolVar(&cfg.HUD, "hud", cfg.HUD, "Show the stats overlay")
	fs.BoolVar(&cfg.Cull, "cull", cfg.Cull, "Cull back faces")
	fs.StringVar(&cfg.Ramp, "ramp", cfg.Ramp, "Glyph ramp, darkest first")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Write debug logs to this file")
	fs.Float64Var(&cfg.Camera.Radius, "radius", cfg.Camera.Radius, "Initial camera distance")
	fs.Float64Var(&cfg.Camera.MoveSpeed, "move-speed", cfg.Camera.MoveSpeed, "Camera zoom speed (units/s)")
	fs.Float64Var(&cfg.Camera.RotateSpeed, "rotate-speed", cfg.Camera.RotateSpeed, "Camera orbit speed (rad/s)")
	fs.Float64Var(&cfg.Camera.FOV, "fov", cfg.Camera.FOV, "Vertical field of view (degrees)")
	fs.StringVar(&cfg.Texture.Path, "texture", cfg.Texture.Path, "Path to a texture (PNG/JPEG/BMP/WebP, or raw with -raw)")
	fs.BoolVar(&cfg.Texture.Raw, "raw", cfg.Texture.Raw, "Texture is raw glyph+RGB records")
	fs.IntVar(&cfg.Texture.Width, "tex-width", cfg.Texture.Width, "Texture width in texels")
	fs.IntVar(&cfg.Texture.Height, "tex-height", cfg.Texture.Height, "Texture height in texels")
	fs.Float64Var(&cfg.Fog.Far, "fog", cfg.Fog.Far, "Distance at which surfaces fade fully into the background (0 disables)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "Path to a .glb/.gltf model")
	return fs, configPath
}

// parseArgs builds the configuration: defaults, then the -config file, then
// the remaining flags. A positional argument is taken as the model path.
func parseArgs(args []string, output io.Writer) (Config, error) {
	cfg := DefaultConfig()
	fs, configPath := newFlagSet(&cfg, output)
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := LoadConfig(*configPath, &cfg); err != nil {
			return cfg, err
		}
		// Parse again so explicit flags override the file.
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	if fs.NArg() > 0 {
		cfg.Model = fs.Arg(0)
		if !explicitlySet(fs, "mode") && cfg.Mode == ModeTextured {
			cfg.Mode = ModeModel
		}
	}

	return cfg, cfg.Validate()
}

func explicitlySet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "voxetype - software 3D rendering in the terminal\n\n")
	fmt.Fprintf(w, "Usage: voxetype [options] [model.glb]\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nControls:\n")
	fmt.Fprintf(w, "  W/S or Up/Down     - Move towards / away from the target\n")
	fmt.Fprintf(w, "  A/D or Left/Right  - Orbit\n")
	fmt.Fprintf(w, "  Space              - Spin the model\n")
	fmt.Fprintf(w, "  M                  - Next scene mode\n")
	fmt.Fprintf(w, "  C                  - Toggle back-face culling\n")
	fmt.Fprintf(w, "  R                  - Reset camera and spin\n")
	fmt.Fprintf(w, "  ?                  - Toggle HUD\n")
	fmt.Fprintf(w, "  Q/Esc              - Quit\n")
}
