package scene

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		hex     string
		alpha   float64
		wantErr bool
	}{
		{in: "#f3d4d4", hex: "#f3d4d4", alpha: 1},
		{in: "#FFF", hex: "#ffffff", alpha: 1},
		{in: "white", hex: "#ffffff", alpha: 1},
		{in: "gray", hex: "#808080", alpha: 1},
		{in: "rgb(31, 109, 246)", hex: "#1f6df6", alpha: 1},
		{in: "rgba(0,0,0,0.4)", hex: "#000000", alpha: 0.4},
		{in: "transparent", hex: "#000000", alpha: 0},
		{in: "rgba(1,2)", wantErr: true},
		{in: "chartreuse-ish", wantErr: true},
		{in: "#12", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, a, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("error = %v, want %v", err, ErrInvalidColor)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Hex() != tt.hex || a != tt.alpha {
				t.Errorf("ParseColor(%q) = %s/%v, want %s/%v", tt.in, c.Hex(), a, tt.hex, tt.alpha)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}

	c, ok := Flatten("rgba(0,0,0,0.5)", 1, white)
	if !ok {
		t.Fatal("expected parse success")
	}
	if c.Hex() != "#808080" {
		t.Errorf("half black over white = %s, want #808080", c.Hex())
	}

	c, _ = Flatten("#000000", 0, white)
	if c.Hex() != "#ffffff" {
		t.Errorf("zero opacity should leave the background, got %s", c.Hex())
	}

	if _, ok := Flatten("nope", 1, white); ok {
		t.Error("expected failure for invalid colour")
	}
	if MustHex("nope", "#123456") != "#123456" {
		t.Error("MustHex should fall back")
	}
}
