package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jimin-park1013/delulu-dreams/core/sim"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	p := cfg.SimParams()
	if p.Capacity != sim.DefaultFlowCapacity || p.BurstSize != 80 || p.Threshold != 0.12 || p.Cooldown != 10 {
		t.Fatalf("unexpected default params %+v", p)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "delulu.yaml")
	body := `
sim:
  mode: dream
  seed: 42
audio:
  source: demo
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Sim.Mode != "dream" || cfg.Sim.Seed != 42 || cfg.Audio.Source != SourceDemo {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Window.Width != 960 || cfg.Sim.Burst != 80 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.SimParams().Capacity != sim.DefaultDreamCapacity {
		t.Fatalf("dream capacity=%d want %d", cfg.SimParams().Capacity, sim.DefaultDreamCapacity)
	}
}

func TestParseRejectsUnknownAndTrailing(t *testing.T) {
	if _, err := Parse([]byte("sim:\n  mdoe: flow\n")); err == nil {
		t.Fatalf("typo field accepted")
	}
	if _, err := Parse([]byte("sim:\n  mode: flow\n---\nsim:\n  mode: dream\n")); err == nil || !strings.Contains(err.Error(), "trailing") {
		t.Fatalf("trailing document accepted: %v", err)
	}
	if _, err := Parse([]byte("sim:\n  mode: flow\n---\n- not: [a config\n")); err == nil {
		t.Fatalf("malformed trailing document accepted: %v", err)
	}
	if _, err := Parse([]byte("sim:\n  mode: dream\n# trailing comment\n")); err != nil {
		t.Fatalf("trailing comment rejected: %v", err)
	}
	cfg, err := Parse([]byte("  \n# only a comment\n"))
	if err != nil {
		t.Fatalf("comment-only file: %v", err)
	}
	if cfg.Sim.Mode != "flow" {
		t.Fatalf("comment-only file changed mode to %q", cfg.Sim.Mode)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("empty path accepted")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}

func TestOverridesApply(t *testing.T) {
	cfg := Default()
	mode := "dream"
	seed := uint64(7)
	chime := 0.0
	level := "warn"
	Overrides{Mode: &mode, Seed: &seed, Chime: &chime, LogLevel: &level}.Apply(&cfg)
	if cfg.Sim.Mode != mode || cfg.Sim.Seed != 7 || cfg.Audio.Chime != 0 || cfg.Logging.Level != "warn" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Sim.Burst != 80 {
		t.Fatalf("nil override touched burst")
	}
	Overrides{}.Apply(nil)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"window":    func(c *Config) { c.Window.Width = 0 },
		"mode":      func(c *Config) { c.Sim.Mode = "disco" },
		"capacity":  func(c *Config) { c.Sim.Capacity = -1 },
		"threshold": func(c *Config) { c.Sim.Threshold = 0 },
		"source":    func(c *Config) { c.Audio.Source = "radio" },
		"attack":    func(c *Config) { c.Audio.Attack = 2 },
		"chime":     func(c *Config) { c.Audio.Chime = 3 },
		"snapshot":  func(c *Config) { c.Snapshot.Name = "a/b" },
		"level":     func(c *Config) { c.Logging.Level = "loud" },
	}
	for name, mut := range cases {
		cfg := Default()
		mut(&cfg)
		if cfg.Validate() == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestSnapshotPathAndMic(t *testing.T) {
	cfg := Default()
	cfg.Snapshot.Dir = "shots"
	if got := cfg.SnapshotPath(); got != filepath.Join("shots", "delulu-dream.png") {
		t.Fatalf("snapshot path %q", got)
	}
	mc := cfg.MicConfig()
	if mc.SampleRate != 44100 || mc.Buffer != 512 || mc.Envelope.Gain != cfg.Audio.Gain {
		t.Fatalf("mic config %+v", mc)
	}
	if ExpandPath("plain") != "plain" || ExpandPath("") != "" {
		t.Fatalf("expand path altered plain input")
	}
}
