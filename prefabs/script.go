package prefabs

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// WinRule evaluates the end-of-level script. The script sees score,
// threshold and has_key and must define a string global named message.
type WinRule struct {
	name     string
	compiled *tengo.Compiled
}

func LoadWinRule(name string) (*WinRule, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	rule, err := NewWinRule(name, src)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func NewWinRule(name string, src []byte) (*WinRule, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("text", "fmt", "math"))
	for _, v := range []struct {
		name  string
		value any
	}{
		{"score", 0},
		{"threshold", 0},
		{"has_key", false},
	} {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("prefabs: script %s: add %s: %w", name, v.name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile script %s: %w", name, err)
	}
	rule := &WinRule{name: name, compiled: compiled}

	// globals only hold values once the script has run
	trial := compiled.Clone()
	if err := trial.Run(); err != nil {
		return nil, fmt.Errorf("prefabs: run script %s: %w", name, err)
	}
	if !trial.IsDefined("message") {
		return nil, fmt.Errorf("prefabs: script %s does not define message", name)
	}
	return rule, nil
}

func (r *WinRule) Name() string {
	return r.name
}

// Message runs the script for a final score.
func (r *WinRule) Message(score, threshold int, hasKey bool) (string, error) {
	if r == nil || r.compiled == nil {
		return "", fmt.Errorf("prefabs: win rule not loaded")
	}
	c := r.compiled.Clone()
	if err := c.Set("score", score); err != nil {
		return "", err
	}
	if err := c.Set("threshold", threshold); err != nil {
		return "", err
	}
	if err := c.Set("has_key", hasKey); err != nil {
		return "", err
	}
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("prefabs: run script %s: %w", r.name, err)
	}
	if !c.IsDefined("message") {
		return "", fmt.Errorf("prefabs: script %s does not define message", r.name)
	}
	msg := strings.TrimSpace(c.Get("message").String())
	if msg == "" {
		return "", fmt.Errorf("prefabs: script %s produced an empty message", r.name)
	}
	return msg, nil
}
