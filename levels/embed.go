package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is named on the command line.
const DefaultLevel = "level1.json"

// Load reads a level by name, preferring a copy under levels/ on disk so
// edited levels can be tried without rebuilding.
func Load(name string) (*Level, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("read level %s: %w", clean, err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates level JSON.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func cleanLevelName(name string) string {
	if name == "" {
		return DefaultLevel
	}
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(strings.ToLower(s), ".json") {
		s += ".json"
	}
	return s
}
