package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jimin-park1013/delulu-dreams/core/sim"
	"github.com/Jimin-park1013/delulu-dreams/internal/audio"
)

// Config is the YAML configuration for a delulu run. Defaults, file and flag
// overrides are layered in that order, then Validate runs once so the rest of
// the program can assume a well-formed config.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Sim      SimConfig      `yaml:"sim"`
	Audio    AudioConfig    `yaml:"audio"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

type SimConfig struct {
	Mode string `yaml:"mode"` // "flow" or "dream"

	// Capacity 0 picks the mode's default (150 flow, 50 dream).
	Capacity      int     `yaml:"capacity"`
	Initial       int     `yaml:"initial"`
	Burst         int     `yaml:"burst"`
	Threshold     float64 `yaml:"threshold"`
	Cooldown      int     `yaml:"cooldown_frames"`
	ThemeDuration int     `yaml:"theme_frames"`
	Themed        bool    `yaml:"themed"`
	Flickers      int     `yaml:"flickers"`
	Seed          uint64  `yaml:"seed"`
}

type AudioConfig struct {
	Source     string  `yaml:"source"` // "mic", "demo" or "silent"
	SampleRate float64 `yaml:"sample_rate"`
	Buffer     int     `yaml:"buffer_frames"`
	Attack     float64 `yaml:"attack"`
	Release    float64 `yaml:"release"`
	Gain       float64 `yaml:"gain"`
	Chime      float64 `yaml:"chime"` // 0 mutes burst chimes
}

type SnapshotConfig struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

const (
	SourceMic    = "mic"
	SourceDemo   = "demo"
	SourceSilent = "silent"
)

// Default returns a fully-populated Config.
func Default() Config {
	p := sim.DefaultParams()
	mic := audio.DefaultMicConfig()
	return Config{
		Window: WindowConfig{Width: 960, Height: 640, Title: "delulu dreams", Resizable: true},
		Sim: SimConfig{
			Mode:          string(p.Mode),
			Initial:       p.Initial,
			Burst:         p.BurstSize,
			Threshold:     p.Threshold,
			Cooldown:      p.Cooldown,
			ThemeDuration: p.ThemeDuration,
			Themed:        p.Themed,
			Flickers:      p.FlickerCount,
			Seed:          p.Seed,
		},
		Audio: AudioConfig{
			Source:     SourceMic,
			SampleRate: mic.SampleRate,
			Buffer:     mic.Buffer,
			Attack:     mic.Envelope.Attack,
			Release:    mic.Envelope.Release,
			Gain:       mic.Envelope.Gain,
			Chime:      0,
		},
		Snapshot: SnapshotConfig{Dir: ".", Name: "delulu-dream"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML file on top of Default. Unknown fields are rejected.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes on top of Default.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty or comment-only file.
			return cfg, nil
		}
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}
	// Only whitespace and comments may follow the document.
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}
	return cfg, nil
}

// Overrides carries flag values; nil pointers are left alone.
type Overrides struct {
	Mode      *string
	Capacity  *int
	Burst     *int
	Threshold *float64
	Seed      *uint64
	Themed    *bool

	Source *string
	Chime  *float64

	Width  *int
	Height *int

	SnapshotDir *string
	LogLevel    *string
}

// Apply merges the overrides into cfg.
func (o Overrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.Mode != nil {
		cfg.Sim.Mode = *o.Mode
	}
	if o.Capacity != nil {
		cfg.Sim.Capacity = *o.Capacity
	}
	if o.Burst != nil {
		cfg.Sim.Burst = *o.Burst
	}
	if o.Threshold != nil {
		cfg.Sim.Threshold = *o.Threshold
	}
	if o.Seed != nil {
		cfg.Sim.Seed = *o.Seed
	}
	if o.Themed != nil {
		cfg.Sim.Themed = *o.Themed
	}
	if o.Source != nil {
		cfg.Audio.Source = *o.Source
	}
	if o.Chime != nil {
		cfg.Audio.Chime = *o.Chime
	}
	if o.Width != nil {
		cfg.Window.Width = *o.Width
	}
	if o.Height != nil {
		cfg.Window.Height = *o.Height
	}
	if o.SnapshotDir != nil {
		cfg.Snapshot.Dir = *o.SnapshotDir
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

// Validate checks invariants and returns a user-facing error.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Sim.Capacity < 0 {
		return errors.New("sim.capacity must be >= 0 (0 picks the mode default)")
	}
	if err := c.SimParams().Validate(); err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	switch c.Audio.Source {
	case SourceMic, SourceDemo, SourceSilent:
	default:
		return fmt.Errorf("audio.source must be %q, %q or %q", SourceMic, SourceDemo, SourceSilent)
	}
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be > 0")
	}
	if c.Audio.Buffer <= 0 {
		return errors.New("audio.buffer_frames must be > 0")
	}
	for name, v := range map[string]float64{"attack": c.Audio.Attack, "release": c.Audio.Release} {
		if v <= 0 || v > 1 {
			return fmt.Errorf("audio.%s must be in (0,1], got %v", name, v)
		}
	}
	if c.Audio.Gain <= 0 {
		return errors.New("audio.gain must be > 0")
	}
	if c.Audio.Chime < 0 || c.Audio.Chime > 1 {
		return errors.New("audio.chime must be in [0,1]")
	}

	if strings.TrimSpace(c.Snapshot.Name) == "" {
		return errors.New("snapshot.name must not be empty")
	}
	if strings.ContainsAny(c.Snapshot.Name, `/\`) {
		return errors.New("snapshot.name must be a bare file name")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "none", "off":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error, none", c.Logging.Level)
	}
	return nil
}

// SimParams converts the sim section into simulation parameters.
func (c *Config) SimParams() sim.Params {
	p := sim.Params{
		Mode:          sim.Mode(c.Sim.Mode),
		Capacity:      c.Sim.Capacity,
		Initial:       c.Sim.Initial,
		BurstSize:     c.Sim.Burst,
		Threshold:     c.Sim.Threshold,
		Cooldown:      c.Sim.Cooldown,
		ThemeDuration: c.Sim.ThemeDuration,
		Themed:        c.Sim.Themed,
		FlickerCount:  c.Sim.Flickers,
		Seed:          c.Sim.Seed,
	}
	if p.Capacity == 0 {
		p.Capacity = sim.DefaultFlowCapacity
		if p.Mode == sim.ModeDream {
			p.Capacity = sim.DefaultDreamCapacity
		}
	}
	return p
}

// MicConfig converts the audio section into microphone settings.
func (c *Config) MicConfig() audio.MicConfig {
	return audio.MicConfig{
		SampleRate: c.Audio.SampleRate,
		Buffer:     c.Audio.Buffer,
		Envelope: audio.EnvelopeConfig{
			Attack:  c.Audio.Attack,
			Release: c.Audio.Release,
			Gain:    c.Audio.Gain,
		},
	}
}

// SnapshotPath is where a desktop snapshot is written.
func (c *Config) SnapshotPath() string {
	return filepath.Join(ExpandPath(c.Snapshot.Dir), c.Snapshot.Name+".png")
}

// ExpandPath expands a leading "~" using the user's home directory.
func ExpandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
