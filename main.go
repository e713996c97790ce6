package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// renderFlags override the loaded configuration when set
type renderFlags struct {
	Configs  []string `arg:"" optional:"" name:"configs" help:"Configuration files, applied in order." type:"existingfile"`
	Scene    string   `help:"Scene to render." short:"s"`
	Output   string   `help:"Output file. Defaults to output/<scene>/render_<timestamp>.<format>." short:"o"`
	Format   string   `help:"Image format: png or ppm. Inferred from the output extension when unset."`
	Width    int      `help:"Image width in pixels."`
	Samples  int      `help:"Samples per pixel."`
	MaxDepth int      `help:"Maximum ray bounce depth." name:"max-depth"`
	Seed     int64    `help:"Random seed. 0 seeds from the clock."`
}

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Render renderFlags `cmd:"" help:"Render a scene to an image file."`

	Scenes struct {
	} `cmd:"" help:"List the built-in scenes."`

	Config struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files to merge over the default." type:"existingfile"`
	} `cmd:"" help:"Write the configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("sphere-tracer"),
		kong.Description("a stochastic path tracer for spheres"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "render", "render <configs>":
		if _, err := renderCommand(CLI.Render, time.Now(), log.Logger); err != nil {
			writeError(err)
		}
	case "scenes":
		writeSceneList(os.Stdout)
	case "config":
		os.Stdout.Write(config.DEFAULT)
	case "config <configs>":
		if err := configCommand(CLI.Config.Configs); err != nil {
			writeError(err)
		}
	}
}

// resolveConfig loads the configuration files and applies the flags on top
func resolveConfig(flags renderFlags) (*config.File, error) {
	cfg, err := config.Load(flags.Configs...)
	if err != nil {
		return nil, err
	}

	if flags.Scene != "" {
		cfg.Scene = flags.Scene
	}
	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if flags.Format != "" {
		cfg.Format = flags.Format
	}
	if flags.Seed != 0 {
		cfg.Seed = flags.Seed
	}
	if flags.Width != 0 {
		cfg.Camera.Width = &flags.Width
	}
	if flags.Samples != 0 {
		cfg.Camera.Samples = &flags.Samples
	}
	if flags.MaxDepth != 0 {
		cfg.Camera.MaxDepth = &flags.MaxDepth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createScene builds a built-in scene, seeding its randomized content
func createScene(sceneType string, sampler core.Sampler) (*scene.Scene, error) {
	s, err := scene.New(sceneType, sampler)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	return s, nil
}

func writeSceneList(w io.Writer) {
	for _, info := range scene.List() {
		fmt.Fprintf(w, "%-16s %-16s %s\n", info.ID, info.DisplayName, info.Description)
	}
}

// outputPath picks the destination file and format for a render. An explicit
// format wins; otherwise it comes from the output extension, then png.
func outputPath(cfg *config.File, now time.Time) (string, output.Format, error) {
	var format output.Format
	if cfg.Format != "" {
		f, err := output.ParseFormat(cfg.Format)
		if err != nil {
			return "", "", err
		}
		format = f
	}

	if cfg.Output != "" {
		if format == "" {
			format = output.FormatPNG
			if f, err := output.FormatFromPath(cfg.Output); err == nil {
				format = f
			}
		}
		return cfg.Output, format, nil
	}

	if format == "" {
		format = output.FormatPNG
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", cfg.Scene, fmt.Sprintf("render_%s.%s", timestamp, format)), format, nil
}

func renderCommand(flags renderFlags, now time.Time, logger zerolog.Logger) (string, error) {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return "", err
	}

	logger = logger.With().Str("scene", cfg.Scene).Logger()

	seed := cfg.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	sampler := core.NewSeededSampler(seed)

	s, err := createScene(cfg.Scene, sampler)
	if err != nil {
		return "", err
	}

	cameraConfig := cfg.Apply(s.CameraConfig)
	camera := renderer.NewCamera(cameraConfig)
	logger.Debug().
		Int64("seed", seed).
		Int("spheres", s.World.Len()).
		Float64("vfov", cameraConfig.VFov).
		Float64("defocusAngle", cameraConfig.DefocusAngle).
		Msg("scene ready")

	path, format, err := outputPath(cfg, now)
	if err != nil {
		return "", err
	}
	sink, err := output.NewFileSink(path, format)
	if err != nil {
		return "", err
	}

	pt := integrator.NewPathTracingIntegrator(cameraConfig.MaxDepth).
		WithBackground(cfg.Background(integrator.DefaultSkyGradient()))
	rt := renderer.NewRaytracer(s.World, camera, sampler,
		renderer.WithLogger(logger),
		renderer.WithIntegrator(pt))
	fb, stats := rt.Render()
	if err := fb.WriteTo(sink); err != nil {
		return "", fmt.Errorf("error saving image: %w", err)
	}

	logger.Info().
		Str("path", path).
		Float64("averageSamples", stats.AverageSamples).
		Float64("luminance", renderer.CalculateAverageLuminance(fb.ToImage())).
		Dur("duration", stats.Duration).
		Msg("render saved")
	return path, nil
}

func configCommand(paths []string) error {
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
