// Command nexus-svg renders one frame of the background network to SVG.
//
//	nexus-svg -clock 0.6 -triggers 3 -o frame.svg
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/A5-Website/atom-5-nexus/config"
	"github.com/A5-Website/atom-5-nexus/logging"
	"github.com/A5-Website/atom-5-nexus/render"
	"github.com/A5-Website/atom-5-nexus/scene"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		clock      = flag.Float64("clock", 0.6, "animation time of the frame in seconds")
		triggers   = flag.Int("triggers", 3, "cascades started at time zero")
		seed       = flag.Int64("seed", 0, "override the scene seed (0 keeps the configured one)")
		width      = flag.Int("width", 1200, "canvas width in pixels")
		height     = flag.Int("height", 800, "canvas height in pixels")
		out        = flag.String("o", "", "output file (default stdout)")
	)
	flag.Parse()

	logger := logging.New()
	if err := run(*configPath, *clock, *triggers, *seed, *width, *height, *out, logger); err != nil {
		logger.Error("render failed", logging.Err(err))
		os.Exit(1)
	}
}

func run(configPath string, clock float64, triggers int, seed int64, width, height int, out string, logger logging.Logger) error {
	if clock < 0 {
		return fmt.Errorf("clock must be ≥ 0 (%g)", clock)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Scene.Seed = seed
	}

	sc, err := scene.Build(cfg.SceneParams())
	if err != nil {
		return err
	}
	driver, err := scene.NewDriver(sc, cfg.DriverOptions(logger, nil)...)
	if err != nil {
		return err
	}

	auto := scene.NewSpontaneous(driver, 0, cfg.Scene.Seed+4, logger)
	for i := 0; i < triggers; i++ {
		if _, err := auto.Fire(); err != nil {
			return err
		}
	}
	driver.Step(0)
	frame := driver.Step(clock)

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	r := render.NewSVG(w, width, height, render.DefaultCamera, render.DefaultSVGStyle)
	if err := r.Render(frame); err != nil {
		return err
	}
	logger.Info("frame rendered",
		logging.Float64("clock", frame.Clock),
		logging.Int("visible_pulses", len(frame.VisiblePulses())),
		logging.Path(out))
	return r.Close()
}
