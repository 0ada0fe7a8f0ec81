package prefabs

import (
	"image/color"
	"testing"
)

func TestLoadEntityBuildSpecs(t *testing.T) {
	cases := []struct {
		file       string
		components []string
	}{
		{"player.yaml", []string{"player_tag", "player", "physics_body", "animation", "audio"}},
		{"coin.yaml", []string{"collectible", "physics_body", "sprite"}},
		{"key.yaml", []string{"collectible", "physics_body"}},
		{"chest.yaml", []string{"collectible", "physics_body"}},
		{"camera.yaml", []string{"camera_tag", "camera"}},
		{"music_player.yaml", []string{"music_player"}},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(c.file)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			for _, name := range c.components {
				if _, ok := spec.Components[name]; !ok {
					t.Fatalf("expected component %q in %s", name, c.file)
				}
			}
		})
	}
}

func TestDecodePlayerSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("prefabs/player.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	player, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if player.Acceleration != 400 || player.Drag != 2000 || player.JumpVelocity != -600 || player.ParticleVelocity != 50 {
		t.Fatalf("unexpected player tuning %+v", player)
	}
	if player.MaxSpeed != 10000 {
		t.Fatalf("expected max speed 10000, got %v", player.MaxSpeed)
	}

	audio, err := DecodeComponentSpec[AudioComponentSpec](spec.Components["audio"])
	if err != nil {
		t.Fatalf("decode audio: %v", err)
	}
	volumes := map[string]float64{}
	for _, clip := range audio.Clips {
		volumes[clip.Name] = clip.Volume
	}
	for name, want := range map[string]float64{"jump": 0.2, "coin": 0.4, "key": 1, "chest": 1} {
		if got, ok := volumes[name]; !ok || got != want {
			t.Fatalf("clip %s: expected volume %v, got %v ok=%v", name, want, got, ok)
		}
	}

	cam, _ := LoadEntityBuildSpec("camera.yaml")
	camSpec, err := DecodeComponentSpec[CameraComponentSpec](cam.Components["camera"])
	if err != nil {
		t.Fatalf("decode camera: %v", err)
	}
	if camSpec.Background.RGBA != (color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}) {
		t.Fatalf("unexpected background %v", camSpec.Background)
	}
	if camSpec.Zoom != 2 || camSpec.Lerp != 0.25 || camSpec.DeadzoneW != 50 {
		t.Fatalf("unexpected camera %+v", camSpec)
	}

	none, err := DecodeComponentSpec[PlayerComponentSpec](nil)
	if err != nil || none != (PlayerComponentSpec{}) {
		t.Fatalf("nil raw should decode to zero value, got %+v err=%v", none, err)
	}
}

func TestSceneAndParticles(t *testing.T) {
	scene, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("scene: %v", err)
	}
	if scene.Physics.Gravity != 1500 || scene.Water.IntervalMS != 250 {
		t.Fatalf("unexpected scene spec %+v", scene)
	}
	if scene.Scoring.Coin != 10 || scene.Scoring.Chest != 1000 || scene.Scoring.SpecialWin != 1200 {
		t.Fatalf("unexpected scoring %+v", scene.Scoring)
	}

	particles, err := LoadParticlesSpec()
	if err != nil {
		t.Fatalf("particles: %v", err)
	}
	for _, name := range []string{"walking", "jump", "coin", "water"} {
		if _, ok := particles.Emitters[name]; !ok {
			t.Fatalf("missing emitter %q", name)
		}
	}
	if w := particles.Emitters["walking"]; w.MaxAlive != 8 || w.Lifespan != 350 || w.GravityY != -200 {
		t.Fatalf("unexpected walking emitter %+v", w)
	}
	if c := particles.Emitters["coin"]; c.Quantity != 5 || c.Lifespan != 500 {
		t.Fatalf("unexpected coin emitter %+v", c)
	}
	if w := particles.Emitters["water"]; !w.Additive || w.Lifespan != 2000 {
		t.Fatalf("unexpected water emitter %+v", w)
	}
}

func TestWinRule(t *testing.T) {
	rule, err := LoadWinRule("win_message.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		score int
		want  string
	}{
		{0, "You Win!"},
		{1010, "You Win!"},
		{1200, "You Win!"},
		{1201, "Special Winner!"},
	}
	for _, c := range cases {
		got, err := rule.Message(c.score, 1200, true)
		if err != nil {
			t.Fatalf("score %d: %v", c.score, err)
		}
		if got != c.want {
			t.Fatalf("score %d: expected %q, got %q", c.score, c.want, got)
		}
	}
}

func TestWinRuleErrors(t *testing.T) {
	if _, err := NewWinRule("bad", []byte("message := ")); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := NewWinRule("missing", []byte(`title := "x"`)); err == nil {
		t.Fatalf("expected error when message is undefined")
	}
	rule, err := NewWinRule("empty", []byte(`message := ""`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := rule.Message(0, 0, false); err == nil {
		t.Fatalf("expected error for empty message")
	}
	if _, err := LoadWinRule("nope"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestCleanScriptPath(t *testing.T) {
	for in, want := range map[string]string{
		"win_message":                       "scripts/win_message.tengo",
		"win_message.tengo":                 "scripts/win_message.tengo",
		"prefabs/scripts/win_message.tengo": "scripts/win_message.tengo",
		"scripts/win_message.tengo":         "scripts/win_message.tengo",
	} {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestSceneWinScriptLoads(t *testing.T) {
	spec, err := LoadSceneSpec()
	if err != nil {
		t.Fatalf("scene spec: %v", err)
	}
	rule, err := LoadWinRule(spec.WinScript)
	if err != nil {
		t.Fatalf("load %s: %v", spec.WinScript, err)
	}
	got, err := rule.Message(1210, 1200, true)
	if err != nil {
		t.Fatalf("message: %v", err)
	}
	if got != "Special Winner!" {
		t.Fatalf("expected %q, got %q", "Special Winner!", got)
	}
}

func TestWinRuleUsesScriptMessage(t *testing.T) {
	src := []byte(`message := has_key ? "Key Keeper " + string(score) : "Done"`)
	rule, err := NewWinRule("custom", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	cases := []struct {
		score  int
		hasKey bool
		want   string
	}{
		{10, true, "Key Keeper 10"},
		{10, false, "Done"},
	}
	for _, c := range cases {
		got, err := rule.Message(c.score, 0, c.hasKey)
		if err != nil {
			t.Fatalf("score %d: %v", c.score, err)
		}
		if got != c.want {
			t.Fatalf("score %d key %v: expected %q, got %q", c.score, c.hasKey, c.want, got)
		}
	}
}
