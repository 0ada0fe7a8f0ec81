package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	Acceleration     float64 `yaml:"acceleration"`
	Drag             float64 `yaml:"drag"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	ParticleVelocity float64 `yaml:"particle_velocity"`
	MaxSpeed         float64 `yaml:"max_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	UseSource          bool    `yaml:"use_source"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	TargetName string    `yaml:"target_name"`
	Zoom       float64   `yaml:"zoom"`
	Lerp       float64   `yaml:"lerp"`
	DeadzoneW  float64   `yaml:"deadzone_w"`
	DeadzoneH  float64   `yaml:"deadzone_h"`
	Background YAMLColor `yaml:"background"`
}

type AnimationDefComponentSpec struct {
	Row        int     `yaml:"row"`
	ColStart   int     `yaml:"col_start"`
	FrameCount int     `yaml:"frame_count"`
	FrameW     int     `yaml:"frame_w"`
	FrameH     int     `yaml:"frame_h"`
	FPS        float64 `yaml:"fps"`
	Loop       bool    `yaml:"loop"`
}

type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
	Playing bool                                 `yaml:"playing"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

type PhysicsBodyComponentSpec struct {
	Kind          string  `yaml:"kind"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Sensor        bool    `yaml:"sensor"`
	AlignTopLeft  bool    `yaml:"align_top_left"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
}

type CollectibleComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type MusicTrackSpec struct {
	Name   string  `yaml:"name"`
	Volume float64 `yaml:"volume"`
}

type MusicPlayerComponentSpec struct {
	Tracks   []MusicTrackSpec `yaml:"tracks"`
	Autoplay string           `yaml:"autoplay"`
	Loop     bool             `yaml:"loop"`
}
