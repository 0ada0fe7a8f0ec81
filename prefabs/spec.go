package prefabs

import (
	"fmt"
	"image/color"

	"github.com/milk9111/treasurerun/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// YAMLColor accepts "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	rgba, err := common.ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.RGBA = rgba
	return nil
}

// SceneSpec holds the level-wide tuning in scene.yaml.
type SceneSpec struct {
	Physics struct {
		Gravity    float64 `yaml:"gravity"`
		Iterations int     `yaml:"iterations"`
	} `yaml:"physics"`
	Scoring struct {
		Coin       int `yaml:"coin"`
		Chest      int `yaml:"chest"`
		SpecialWin int `yaml:"special_win"`
	} `yaml:"scoring"`
	Water struct {
		IntervalMS float64 `yaml:"interval_ms"`
		Emitter    string  `yaml:"emitter"`
	} `yaml:"water"`
	HUD struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	} `yaml:"hud"`
	WinScript string `yaml:"win_script"`
}

func LoadSceneSpec() (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec]("scene.yaml")
	if err != nil {
		return spec, err
	}
	if spec.Physics.Gravity == 0 {
		spec.Physics.Gravity = common.Gravity
	}
	if spec.Physics.Iterations <= 0 {
		spec.Physics.Iterations = 10
	}
	if spec.Water.IntervalMS <= 0 {
		spec.Water.IntervalMS = 250
	}
	return spec, nil
}

// EmitterSpec is one particle emitter in particles.yaml.
type EmitterSpec struct {
	Image      string    `yaml:"image"`
	Quantity   int       `yaml:"quantity"`
	MaxAlive   int       `yaml:"max_alive"`
	Frequency  float64   `yaml:"frequency"`
	Lifespan   float64   `yaml:"lifespan"`
	SpeedX     RangeSpec `yaml:"speed_x"`
	SpeedY     RangeSpec `yaml:"speed_y"`
	Speed      RangeSpec `yaml:"speed"`
	GravityY   float64   `yaml:"gravity_y"`
	Alpha      RangeSpec `yaml:"alpha"`
	Scale      RangeSpec `yaml:"scale"`
	Additive   bool      `yaml:"additive"`
	Layer      int       `yaml:"layer"`
	OffsetX    float64   `yaml:"offset_x"`
	OffsetY    float64   `yaml:"offset_y"`
	Follow     string    `yaml:"follow"`
	StartEmits bool      `yaml:"start_emitting"`
}

// RangeSpec is a start/end or min/max pair.
type RangeSpec struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type ParticlesSpec struct {
	Emitters map[string]EmitterSpec `yaml:"emitters"`
}

func LoadParticlesSpec() (ParticlesSpec, error) {
	return LoadSpec[ParticlesSpec]("particles.yaml")
}
