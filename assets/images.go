package assets

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
)

// Player sheet layout: one row per animation, PlayerFrameW x PlayerFrameH
// frames.
const (
	PlayerFrameW = 16
	PlayerFrameH = 24

	PlayerRowIdle = 0
	PlayerRowWalk = 1
	PlayerRowJump = 2

	PlayerIdleFrames = 2
	PlayerWalkFrames = 4
	PlayerJumpFrames = 1
)

var pictures = map[string]func() *image.RGBA{
	"player":   playerSheet,
	"coin":     coinImage,
	"key":      keyImage,
	"chest":    chestImage,
	"particle": particleImage,
	"star":     starImage,
	"smoke":    smokeImage,
}

// Picture builds the CPU-side image for name.
func Picture(name string) (*image.RGBA, error) {
	build, ok := pictures[cleanAssetName(name)]
	if !ok {
		return nil, unknownAsset("image", name)
	}
	return build(), nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func playerSheet() *image.RGBA {
	cols := PlayerWalkFrames
	img := image.NewRGBA(image.Rect(0, 0, cols*PlayerFrameW, 3*PlayerFrameH))

	frame := func(row, col, legShift, bob int) {
		ox, oy := col*PlayerFrameW, row*PlayerFrameH+bob
		// body
		fill(img, image.Rect(ox+3, oy+6, ox+13, oy+18), colornames.Tomato)
		// head
		fill(img, image.Rect(ox+4, oy+1, ox+12, oy+7), colornames.Peachpuff)
		// eye on the right so flipping faces left
		fill(img, image.Rect(ox+9, oy+3, ox+11, oy+5), colornames.Black)
		// legs
		fill(img, image.Rect(ox+4+legShift, oy+18, ox+7+legShift, oy+24-bob), colornames.Midnightblue)
		fill(img, image.Rect(ox+9-legShift, oy+18, ox+12-legShift, oy+24-bob), colornames.Midnightblue)
	}

	for i := 0; i < PlayerIdleFrames; i++ {
		frame(PlayerRowIdle, i, 0, i)
	}
	for i, shift := range []int{-1, 0, 1, 0} {
		frame(PlayerRowWalk, i, shift, 0)
	}
	frame(PlayerRowJump, 0, 1, 0)
	return img
}

func disc(size int, c color.RGBA, soft bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			if d > r {
				continue
			}
			px := c
			if soft {
				k := 1 - d/r
				px.A = uint8(float64(c.A) * k)
				px.R = uint8(float64(c.R) * k)
				px.G = uint8(float64(c.G) * k)
				px.B = uint8(float64(c.B) * k)
			}
			img.SetRGBA(x, y, px)
		}
	}
	return img
}

func coinImage() *image.RGBA {
	img := disc(12, colornames.Gold, false)
	fill(img, image.Rect(5, 3, 7, 9), colornames.Goldenrod)
	return img
}

func keyImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 10))
	fill(img, image.Rect(0, 1, 7, 9), colornames.Gold)
	fill(img, image.Rect(2, 3, 5, 7), color.RGBA{})
	fill(img, image.Rect(7, 4, 16, 6), colornames.Gold)
	fill(img, image.Rect(12, 6, 14, 9), colornames.Gold)
	return img
}

func chestImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 18, 16))
	fill(img, image.Rect(0, 0, 18, 16), colornames.Saddlebrown)
	fill(img, image.Rect(0, 6, 18, 8), colornames.Goldenrod)
	fill(img, image.Rect(7, 5, 11, 10), colornames.Gold)
	return img
}

func particleImage() *image.RGBA {
	return disc(6, colornames.White, false)
}

func starImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	fill(img, image.Rect(4, 0, 5, 9), colornames.Yellow)
	fill(img, image.Rect(0, 4, 9, 5), colornames.Yellow)
	fill(img, image.Rect(3, 3, 6, 6), colornames.Lightyellow)
	return img
}

func smokeImage() *image.RGBA {
	return disc(32, colornames.Whitesmoke, true)
}

// TileImage is a solid tile of the given color with a darker bottom edge.
func TileImage(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill(img, img.Bounds(), c)
	shade := color.RGBA{R: c.R / 4 * 3, G: c.G / 4 * 3, B: c.B / 4 * 3, A: c.A}
	fill(img, image.Rect(0, size-2, size, size), shade)
	return img
}
