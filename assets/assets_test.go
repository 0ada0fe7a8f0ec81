package assets

import (
	"image"
	"testing"

	"golang.org/x/image/colornames"
)

func TestPCM(t *testing.T) {
	cases := []struct {
		name string
		min  int
	}{
		{SoundCoin, SampleRate / 5 * 4},
		{SoundKey, SampleRate / 5 * 4},
		{SoundJump, SampleRate / 10 * 4},
		{SoundChest, SampleRate * 2 / 5 * 4},
		{MusicTheme, SampleRate * 3 * 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := PCM(c.name)
			if err != nil {
				t.Fatalf("pcm: %v", err)
			}
			if len(b)%4 != 0 {
				t.Fatalf("expected whole stereo frames, got %d bytes", len(b))
			}
			if len(b) < c.min {
				t.Fatalf("expected at least %d bytes, got %d", c.min, len(b))
			}
			silent := true
			for _, v := range b {
				if v != 0 {
					silent = false
					break
				}
			}
			if silent {
				t.Fatalf("sound %q rendered silence", c.name)
			}
		})
	}

	if _, err := PCM("explosion"); err == nil {
		t.Fatalf("expected error for unknown sound")
	}
}

func TestPicture(t *testing.T) {
	for _, name := range []string{"player", "assets/coin.png", "KEY", "chest", "particle", "star", "smoke"} {
		img, err := Picture(name)
		if err != nil {
			t.Fatalf("picture %q: %v", name, err)
		}
		if img.Bounds().Empty() {
			t.Fatalf("picture %q is empty", name)
		}
	}

	sheet, _ := Picture("player")
	want := image.Rect(0, 0, PlayerWalkFrames*PlayerFrameW, 3*PlayerFrameH)
	if sheet.Bounds() != want {
		t.Fatalf("unexpected sheet bounds %v", sheet.Bounds())
	}

	if _, err := Picture("dragon"); err == nil {
		t.Fatalf("expected error for unknown picture")
	}
}

func TestTileImage(t *testing.T) {
	img := TileImage(18, colornames.Green)
	if got := img.RGBAAt(5, 5); got != colornames.Green {
		t.Fatalf("unexpected fill %v", got)
	}
	if got := img.RGBAAt(5, 17); got == colornames.Green {
		t.Fatalf("expected shaded bottom edge")
	}
}
