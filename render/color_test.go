package render

import (
	"image/color"
	"testing"
)

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= 0.005
}

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGB
	}{
		{"six digit red", "ff0000", RGB{R: 1}},
		{"six digit mixed", "3498db", RGB{R: 0x34 / 255.0, G: 0x98 / 255.0, B: 0xdb / 255.0}},
		{"leading hash", "#00ff00", RGB{G: 1}},
		{"three digit", "f80", RGB{R: 1, G: 0x88 / 255.0}},
		{"three digit with hash", "#fff", RGB{R: 1, G: 1, B: 1}},
		{"uppercase", "FF00FF", RGB{R: 1, B: 1}},
		{"wrong length", "12345", Black},
		{"not hex at all", "red!", Black},
		{"empty", "", Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want RGB
	}{
		{"opaque red", color.NRGBA{R: 255, A: 255}, RGB{R: 1}},
		{"opaque gray", color.Gray{Y: 128}, RGB{R: 0.502, G: 0.502, B: 0.502}},
		{"white", color.White, White},
		{"black", color.Black, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColor(tt.c)
			if !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("FromColor(%v) = %+v, want %+v", tt.c, got, tt.want)
			}
		})
	}
}

func TestNRGBA(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want color.NRGBA
	}{
		{"white", White, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"half gray", Gray, color.NRGBA{R: 127, G: 127, B: 127, A: 255}},
		{"clamps high", RGB{R: 1.5, G: 2, B: 1}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"clamps low", RGB{R: -0.5}, color.NRGBA{A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.NRGBA(); got != tt.want {
				t.Errorf("%+v.NRGBA() = %+v, want %+v", tt.c, got, tt.want)
			}
		})
	}
}

func TestFromColorRoundtrip(t *testing.T) {
	orig := RGB{R: 0.2, G: 0.55, B: 0.9}
	got := FromColor(orig.NRGBA())
	if !near(got.R, orig.R) || !near(got.G, orig.G) || !near(got.B, orig.B) {
		t.Errorf("roundtrip %+v -> %+v", orig, got)
	}
}
