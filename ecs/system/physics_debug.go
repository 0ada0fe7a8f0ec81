package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug outlines every cp shape when the debug overlay is on.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil || !debugEnabled(w) {
		return
	}

	camX, camY, zoom := cameraCenter(w)
	drawer := &physicsDebugDrawer{
		screen: screen,
		camX:   camX,
		camY:   camY,
		zoom:   zoom,
		halfW:  float64(screen.Bounds().Dx()) / 2,
		halfH:  float64(screen.Bounds().Dy()) / 2,
	}
	cp.DrawSpace(space, drawer)
}

// DrawPlayerStateDebug prints the controller's last resolved motion.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil || !debugEnabled(w) {
		return
	}
	if text, ok := playerStateText(w); ok {
		ebitenutil.DebugPrintAt(screen, text, 10, 40)
	}
}

func playerStateText(w *ecs.World) (string, bool) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return "", false
	}
	pc, ok := ecs.Get(w, player, component.PlayerControllerComponent.Kind())
	if !ok {
		return "", false
	}
	grounded := false
	if col, ok := ecs.Get(w, player, component.PlayerCollisionComponent.Kind()); ok {
		grounded = col.Grounded
	}
	x, y := 0.0, 0.0
	if tr, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		x, y = tr.X, tr.Y
	}
	text := fmt.Sprintf("State: %s\nGrounded: %v\nOutcome: %s\nPos: %.1f, %.1f", pc.Last.State, grounded, pc.Outcome, x, y)
	if pc.Controller != nil {
		if cell, ok := pc.Controller.Flag(); ok {
			text += fmt.Sprintf("\nFlag: %d, %d", cell.X, cell.Y)
		}
	}
	if _, st, ok := levelState(w); ok {
		text += fmt.Sprintf("\nScore: %d\nHas key: %v", st.Session.Score, st.Session.HasKey)
	}
	return text, true
}

func debugEnabled(w *ecs.World) bool {
	e, ok := w.First(component.DebugOverlayComponent.Kind())
	if !ok {
		return false
	}
	d, ok := ecs.Get(w, e, component.DebugOverlayComponent.Kind())
	return ok && d.Enabled
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
	halfW  float64
	halfH  float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
	if radius > 0 {
		d.drawLine(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), outline)
	}
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.toScreen(pos)
	half := float32(size * d.zoom / 2)
	vector.FillRect(d.screen, float32(x)-half, float32(y)-half, half*2, half*2, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(color), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	if len(verts) == 0 {
		return
	}
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		d.drawLine(a, b, color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X-d.camX)*d.zoom + d.halfW, (v.Y-d.camY)*d.zoom + d.halfH
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
