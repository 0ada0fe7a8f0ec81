package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/treasurerun/assets"
	"github.com/milk9111/treasurerun/common"
	"github.com/milk9111/treasurerun/ecs"
	"github.com/milk9111/treasurerun/ecs/component"
	"github.com/milk9111/treasurerun/ecs/render"
	"github.com/milk9111/treasurerun/gameplay"
	"github.com/milk9111/treasurerun/prefabs"
)

// Options controls what a build may load besides world data.
type Options struct {
	// Headless skips every image, for scenes that are never drawn.
	Headless bool
	// Mute skips audio players. Audio components keep their slot names so
	// requests still resolve.
	Mute bool
}

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Options
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":       addPlayerTag,
	"camera_tag":       addCameraTag,
	"player":           addPlayer,
	"input":            addInput,
	"player_collision": addPlayerCollision,
	"transform":        addTransform,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"camera":           addCamera,
	"animation":        addAnimation,
	"audio":            addAudio,
	"physics_body":     addPhysicsBody,
	"collectible":      addCollectible,
	"music_player":     addMusicPlayer,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"player_collision",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"animation",
	"audio",
	"collectible",
	"physics_body",
	"music_player",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWithOptions(w, prefabPath, Options{})
}

func BuildEntityWithOptions(w *ecs.World, prefabPath string, opts Options) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, &buildContext{PrefabPath: prefabPath, Options: opts})
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	apply := func(name string) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, remaining[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
		return nil
	}

	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; !ok {
			continue
		}
		if err := apply(name); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := apply(name); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, err
			}
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	tuning := gameplay.DefaultTuning()
	if spec.Acceleration != 0 {
		tuning.Acceleration = spec.Acceleration
	}
	if spec.Drag != 0 {
		tuning.Drag = spec.Drag
	}
	if spec.JumpVelocity != 0 {
		tuning.JumpVelocity = spec.JumpVelocity
	}
	if spec.ParticleVelocity != 0 {
		tuning.ParticleVelocity = spec.ParticleVelocity
	}
	if spec.MaxSpeed != 0 {
		tuning.MaxSpeed = spec.MaxSpeed
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Tuning: tuning})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	if spec.Image != "" && !ctx.Headless {
		img, err := render.LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	}

	sprite.UseSource = spec.UseSource
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOriginIfZero && sprite.Image != nil {
		w, h := sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
		sprite.OriginX = float64(w) / 2
		sprite.OriginY = float64(h) / 2
	}
	sprite.FacingLeft = spec.FacingLeft

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 2
	}
	if spec.Lerp <= 0 {
		spec.Lerp = 0.25
	}
	if spec.TargetName == "" {
		spec.TargetName = "player"
	}
	bg := spec.Background.RGBA
	if bg.A == 0 {
		bg, _ = common.ParseHexColor("#87CEEB")
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Lerp:       spec.Lerp,
		DeadzoneW:  spec.DeadzoneW,
		DeadzoneH:  spec.DeadzoneH,
		Background: bg,
		ViewW:      common.BaseWidth,
		ViewH:      common.BaseHeight,
	})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	var anim component.Animation
	if !ctx.Headless {
		sheet, err := render.LoadImage(spec.Sheet)
		if err != nil {
			return fmt.Errorf("load animation sheet %q: %w", spec.Sheet, err)
		}
		anim.Sheet = sheet
	}

	anim.Defs = make(map[string]component.AnimationDef, len(spec.Defs))
	for name, def := range spec.Defs {
		anim.Defs[name] = component.AnimationDef{
			Name:       name,
			Row:        def.Row,
			ColStart:   def.ColStart,
			FrameCount: def.FrameCount,
			FrameW:     def.FrameW,
			FrameH:     def.FrameH,
			FPS:        def.FPS,
			Loop:       def.Loop,
		}
	}
	if _, ok := anim.Defs[spec.Current]; !ok && spec.Current != "" {
		return fmt.Errorf("animation %q is not defined", spec.Current)
	}
	anim.Current = spec.Current

	anim.Playing = spec.Playing
	if m, ok := raw.(map[string]any); ok {
		if _, has := m["playing"]; !has {
			anim.Playing = true
		}
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), &anim)
}

type audioClipSpec = prefabs.AudioClipSpec

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponentFromSpec(spec.Clips, ctx.Mute)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	for _, name := range spec.Autoplay {
		comp.Request(name)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponentFromSpec(clips []audioClipSpec, mute bool) (*component.Audio, error) {
	n := len(clips)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]*audio.Player, 0, n),
		Volume:  make([]float64, 0, n),
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}

	for i, clip := range clips {
		var player *audio.Player
		if !mute {
			var err error
			player, err = assets.LoadAudioPlayer(clip.File)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
		}
		volume := clip.Volume
		if volume <= 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
	}
	return comp, nil
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

var errUnknownBodyKind = errors.New("unknown body kind")

func parseBodyKind(s string) (component.BodyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solid":
		return component.BodySolid, nil
	case "player":
		return component.BodyPlayer, nil
	case "collectible":
		return component.BodyCollectible, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownBodyKind, s)
	}
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	kind, err := parseBodyKind(spec.Kind)
	if err != nil {
		return err
	}

	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = 16
	}
	if height <= 0 {
		height = 16
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:          kind,
		Width:         width,
		Height:        height,
		OffsetX:       spec.OffsetX,
		OffsetY:       spec.OffsetY,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Sensor:        spec.Sensor,
		AlignTopLeft:  spec.AlignTopLeft,
		FixedRotation: spec.FixedRotation,
	})
}

type collectibleSpec = prefabs.CollectibleComponentSpec

func addCollectible(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collectibleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collectible spec: %w", err)
	}
	kind, ok := gameplay.ParseCollectibleKind(spec.Kind)
	if !ok {
		return fmt.Errorf("unknown collectible kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.CollectibleComponent.Kind(), &component.Collectible{
		Item:   gameplay.Collectible{Kind: kind},
		Width:  spec.Width,
		Height: spec.Height,
	})
}

type musicPlayerSpec = prefabs.MusicPlayerComponentSpec

const musicFadeFrames = 30

func addMusicPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[musicPlayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode music player spec: %w", err)
	}

	player := &component.MusicPlayer{
		Players:      make(map[string]*audio.Player, len(spec.Tracks)),
		TrackVolumes: make(map[string]float64, len(spec.Tracks)),
		Muted:        ctx.Mute,
	}
	for _, track := range spec.Tracks {
		player.TrackVolumes[track.Name] = track.Volume
	}
	if err := ecs.Add(w, e, component.MusicTagComponent.Kind(), &component.MusicTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.MusicPlayerComponent.Kind(), player); err != nil {
		return err
	}

	if spec.Autoplay == "" {
		return nil
	}
	req := ecs.CreateEntity(w)
	return ecs.Add(w, req, component.MusicRequestComponent.Kind(), &component.MusicRequest{
		Track:         spec.Autoplay,
		Volume:        player.TrackVolumes[spec.Autoplay],
		Loop:          spec.Loop,
		FadeOutFrames: musicFadeFrames,
	})
}
