package colour

import (
	"image/color"
	"math"
	"testing"
)

func TestToNRGBAPrimaries(t *testing.T) {
	cases := []struct {
		in   HSBA
		want color.NRGBA
	}{
		{HSBA{H: 0, S: 1, B: 1, A: 1}, color.NRGBA{255, 0, 0, 255}},
		{HSBA{H: 120, S: 1, B: 1, A: 1}, color.NRGBA{0, 255, 0, 255}},
		{HSBA{H: 240, S: 1, B: 1, A: 0}, color.NRGBA{0, 0, 255, 0}},
		{HSBA{H: 480, S: 1, B: 1, A: 1}, color.NRGBA{0, 255, 0, 255}},
		{HSBA{H: -120, S: 1, B: 1, A: 1}, color.NRGBA{0, 0, 255, 255}},
		{HSBA{H: 77, S: 0, B: 1, A: 0.5}, color.NRGBA{255, 255, 255, 128}},
	}
	for _, c := range cases {
		if got := c.in.ToNRGBA(); got != c.want {
			t.Fatalf("%+v -> %v want %v", c.in, got, c.want)
		}
	}
}

func TestNewNormalises(t *testing.T) {
	c := New(-30, 2, -1, math.NaN())
	if c.H != 330 || c.S != 1 || c.B != 0 || c.A != 0 {
		t.Fatalf("New normalised to %+v", c)
	}
	if c.WithAlpha(0.25).A != 0.25 {
		t.Fatalf("WithAlpha did not apply")
	}
}
