package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Jimin-park1013/delulu-dreams/internal/audio"
	"github.com/Jimin-park1013/delulu-dreams/internal/config"
	game_log "github.com/Jimin-park1013/delulu-dreams/internal/log"
	"github.com/Jimin-park1013/delulu-dreams/internal/ui"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to a YAML config file (optional)")
		demo        = flag.Bool("demo", false, "Drive the visuals with a synthetic pulse instead of the microphone")
		silent      = flag.Bool("silent", false, "Run without any audio input")
		mode        = flag.String("mode", "", "Simulation mode: flow|dream")
		seed        = flag.Uint64("seed", 0, "Random seed for a reproducible run")
		capacity    = flag.Int("capacity", 0, "Population cap (0 = mode default)")
		burst       = flag.Int("burst", 0, "Particles per burst")
		threshold   = flag.Float64("threshold", 0, "Burst trigger threshold in (0,1)")
		noTheme     = flag.Bool("no-theme", false, "Hold the first palette instead of cycling")
		chime       = flag.Float64("chime", 0, "Burst chime volume in [0,1]; 0 mutes")
		width       = flag.Int("width", 0, "Window width")
		height      = flag.Int("height", 0, "Window height")
		snapshotDir = flag.String("snapshot-dir", "", "Directory for S-key snapshots")
		logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error, none")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "delulu: %v\n", err)
			os.Exit(2)
		}
	}

	// Only flags given on the command line override the file.
	var o config.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "demo":
			if *demo {
				s := config.SourceDemo
				o.Source = &s
			}
		case "silent":
			if *silent {
				s := config.SourceSilent
				o.Source = &s
			}
		case "mode":
			o.Mode = mode
		case "seed":
			o.Seed = seed
		case "capacity":
			o.Capacity = capacity
		case "burst":
			o.Burst = burst
		case "threshold":
			o.Threshold = threshold
		case "no-theme":
			themed := !*noTheme
			o.Themed = &themed
		case "chime":
			o.Chime = chime
		case "width":
			o.Width = width
		case "height":
			o.Height = height
		case "snapshot-dir":
			o.SnapshotDir = snapshotDir
		case "log-level":
			o.LogLevel = logLevel
		}
	})
	o.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "delulu: invalid config: %v\n", err)
		os.Exit(2)
	}

	logger := game_log.New(os.Stderr, game_log.LevelFromString(cfg.Logging.Level))
	logger.Infof("[MAIN] mode=%s source=%s seed=%d", cfg.Sim.Mode, cfg.Audio.Source, cfg.Sim.Seed)

	var newSource ui.SourceFactory
	switch cfg.Audio.Source {
	case config.SourceDemo:
		newSource = func() audio.Source { return audio.NewOscillator() }
	case config.SourceSilent:
		newSource = func() audio.Source { return audio.Silent{} }
	default:
		mic := cfg.MicConfig()
		newSource = func() audio.Source { return audio.NewMicrophone(mic, logger) }
	}

	ctrl := ui.NewController(cfg.SimParams(), newSource, logger)
	if cfg.Audio.Chime > 0 {
		ctrl.OnBurst = audio.NewChime(cfg.Audio.Chime, logger).Ring
	}
	g := ui.New(ctrl, cfg.SnapshotPath(), logger)

	// Optional window settings (not used in WASM, but for desktop builds)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)

	// Run the game. On WASM, this will create a <canvas> in index.html
	if err := ebiten.RunGame(g); err != nil {
		if errors.Is(err, ui.ErrRenderSurfaceUnavailable) {
			logger.Errorf("[MAIN] %v", err)
		}
		fmt.Fprintf(os.Stderr, "delulu: %v\n", err)
		os.Exit(1)
	}
	if err := ctrl.Stop(); err != nil {
		logger.Warnf("[MAIN] Stop: %v", err)
	}
}
