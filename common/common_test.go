package common

import (
	"image/color"
	"testing"
)

func TestFollowAxis(t *testing.T) {
	cases := []struct {
		name                  string
		cam, target, dz, lerp float64
		want                  float64
	}{
		{"inside_deadzone", 100, 120, 50, 0.25, 100},
		{"right_of_deadzone", 100, 145, 50, 1, 120},
		{"left_of_deadzone_lerped", 100, 35, 50, 0.25, 90},
		{"no_deadzone", 0, 40, 0, 0.25, 10},
		{"invalid_lerp_snaps", 0, 40, 0, 0, 40},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FollowAxis(c.cam, c.target, c.dz, c.lerp); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestClampView(t *testing.T) {
	cases := []struct {
		center, view, world, want float64
	}{
		{0, 320, 810, 160},
		{800, 320, 810, 650},
		{400, 320, 810, 400},
		{50, 640, 450, 225},
	}
	for _, c := range cases {
		if got := ClampView(c.center, c.view, c.world); got != c.want {
			t.Fatalf("ClampView(%v,%v,%v): expected %v, got %v", c.center, c.view, c.world, c.want, got)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{"#87CEEB", color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}, false},
		{"11223380", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{"#fff", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if (err != nil) != c.err {
			t.Fatalf("%q: unexpected error state %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q: expected %v, got %v", c.in, c.want, got)
		}
	}
}
