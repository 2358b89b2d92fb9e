package trigger

import "testing"

func run(d *Detector, levels ...float64) (fires []int) {
	for i, l := range levels {
		if d.Step(l) {
			fires = append(fires, i)
		}
	}
	return fires
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestHeldAboveThresholdFiresOncePerCooldown(t *testing.T) {
	d := NewDetector(DefaultThreshold, DefaultCooldown)
	levels := append([]float64{0}, repeat(0.5, 11)...)
	fires := run(d, levels...)
	if len(fires) != 1 || fires[0] != 1 {
		t.Fatalf("fires=%v want [1]", fires)
	}
	if d.State() != Idle {
		t.Fatalf("state=%v after full cooldown, want idle", d.State())
	}
	// Cooldown has fully elapsed; a still-loud signal may fire again.
	if !d.Step(0.5) {
		t.Fatalf("expected re-fire after cooldown elapsed")
	}
}

func TestSpikeThenSilenceCooldownWindow(t *testing.T) {
	d := NewDetector(DefaultThreshold, DefaultCooldown)
	if !d.Step(0.5) {
		t.Fatalf("spike did not fire")
	}
	for i := 0; i < DefaultCooldown; i++ {
		if d.State() != Cooldown {
			t.Fatalf("frame %d: state=%v want cooldown", i+1, d.State())
		}
		if d.Step(0.9) {
			t.Fatalf("fired during cooldown at frame %d", i+1)
		}
	}
	if d.State() != Idle || d.Remaining() != 0 {
		t.Fatalf("state=%v remaining=%d after cooldown", d.State(), d.Remaining())
	}
}

func TestThresholdIsStrict(t *testing.T) {
	d := NewDetector(0.12, 10)
	if fires := run(d, repeat(0.12, 300)...); len(fires) != 0 {
		t.Fatalf("level equal to threshold fired %v", fires)
	}
	if fires := run(d, repeat(0, 300)...); len(fires) != 0 {
		t.Fatalf("silence fired %v", fires)
	}
}

func TestOnFireAndReset(t *testing.T) {
	d := NewDetector(0.12, 3)
	var got []float64
	d.OnFire = func(l float64) { got = append(got, l) }
	d.Step(0.4)
	if len(got) != 1 || got[0] != 0.4 {
		t.Fatalf("OnFire got %v", got)
	}
	d.Reset()
	if d.State() != Idle {
		t.Fatalf("Reset left state %v", d.State())
	}
	if !d.Step(0.3) {
		t.Fatalf("expected fire right after reset")
	}
}
