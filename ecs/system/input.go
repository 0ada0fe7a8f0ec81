package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/gameplay"
)

// InputSource reports the held state of the controls for one tick.
type InputSource interface {
	Poll() gameplay.RawInput
}

// InputFunc adapts a function to InputSource.
type InputFunc func() gameplay.RawInput

func (f InputFunc) Poll() gameplay.RawInput {
	return f()
}

// KeyboardSource reads the arrow keys, R and D, plus the first standard
// gamepad when one is connected.
type KeyboardSource struct {
	keys []ebiten.Key
}

func (k *KeyboardSource) Poll() gameplay.RawInput {
	const stickDeadzone = 0.2

	var raw gameplay.RawInput
	k.keys = inpututil.AppendPressedKeys(k.keys[:0])
	for _, key := range k.keys {
		switch key {
		case ebiten.KeyArrowLeft:
			raw.Left = true
		case ebiten.KeyArrowRight:
			raw.Right = true
		case ebiten.KeyArrowUp:
			raw.Jump = true
		case ebiten.KeyR:
			raw.Restart = true
		case ebiten.KeyD:
			raw.Debug = true
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		raw.Left = raw.Left || x < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		raw.Right = raw.Right || x > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.Restart = raw.Restart || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}
	return raw
}

type InputSystem struct {
	source InputSource
}

// NewInputSystem polls source every tick. A nil source reads the keyboard.
func NewInputSystem(source InputSource) *InputSystem {
	if source == nil {
		source = &KeyboardSource{}
	}
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	raw := i.source.Poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.Raw = raw
		input.Current = input.Edges.Next(raw)
	})
}
