package gazetteer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a gazetteer override.
//
//	fallback = "Others"
//
//	[[stations]]
//	name = "Thoothukudi North"
//	subdivision = "Thoothukudi Town"
//
//	[aliases]
//	"tut/north" = "Thoothukudi North"
//
//	[[categories]]
//	name = "Theft / Robbery"
//	keywords = ["Theft", "Robbery"]
type File struct {
	Fallback   string            `json:"fallback" toml:"fallback" yaml:"fallback"`
	Stations   []Station         `json:"stations" toml:"stations" yaml:"stations"`
	Aliases    map[string]string `json:"aliases" toml:"aliases" yaml:"aliases"`
	Categories []Category        `json:"categories" toml:"categories" yaml:"categories"`
}

// LoadFile reads a gazetteer from a .toml, .yaml/.yml or .json file.
// An empty fallback defaults to DefaultFallback.
func LoadFile(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes gazetteer data in the format named by ext (".toml", ".yaml",
// ".yml" or ".json").
func Parse(data []byte, ext string) (*Gazetteer, error) {
	var f File
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported gazetteer format %q", ext)
	}

	if f.Fallback == "" {
		f.Fallback = DefaultFallback
	}
	return New(f.Stations, f.Aliases, f.Categories, f.Fallback)
}

// Export returns the File form of g, suitable for encoding.
func (g *Gazetteer) Export() File {
	return File{
		Fallback:   g.fallback,
		Stations:   g.Stations(),
		Aliases:    g.Aliases(),
		Categories: g.Categories(),
	}
}
