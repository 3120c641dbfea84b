package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"ogre-meshxml/internal/meshtool"
)

// Config holds output paths, compiler settings and preview settings.
type Config struct {
	// Paths
	OutputDir  string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	TextureDir string `json:"texture_dir" toml:"texture_dir" yaml:"texture_dir"`

	// Mesh compiler
	Compile         bool           `json:"compile" toml:"compile" yaml:"compile"`
	MeshToolCommand string         `json:"meshtool_command" toml:"meshtool_command" yaml:"meshtool_command"`
	MeshToolOptions map[string]any `json:"meshtool_options" toml:"meshtool_options" yaml:"meshtool_options"`

	// Document settings
	BoneAssignments bool `json:"bone_assignments" toml:"bone_assignments" yaml:"bone_assignments"`
	Triangulate     bool `json:"triangulate" toml:"triangulate" yaml:"triangulate"`

	// Preview settings
	Preview     bool `json:"preview" toml:"preview" yaml:"preview"`
	PreviewSize int  `json:"preview_size" toml:"preview_size" yaml:"preview_size"`
	Supersample int  `json:"supersample" toml:"supersample" yaml:"supersample"`

	Workers int `json:"workers" toml:"workers" yaml:"workers"`
}

// Load reads a config file and returns Config. The format follows the
// extension: .json, .toml, .yaml or .yml.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when set.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.MeshToolCommand != "" {
		c.MeshToolCommand = flags.MeshToolCommand
	}
	if flags.Compile {
		c.Compile = true
	}
	if flags.Preview {
		c.Preview = true
	}
	if flags.BoneAssignments {
		c.BoneAssignments = true
	}
	if flags.Triangulate {
		c.Triangulate = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	for k, v := range flags.MeshToolOptions {
		if c.MeshToolOptions == nil {
			c.MeshToolOptions = make(map[string]any)
		}
		c.MeshToolOptions[k] = v
	}

	if c.MeshToolCommand == "" {
		c.MeshToolCommand = meshtool.DefaultCommand
	}

	// Defaults for preview settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// MeshTool returns the compiler options from MeshToolOptions.
func (c *Config) MeshTool() meshtool.Options {
	return meshtool.OptionsFromMap(c.MeshToolOptions)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir       string
	TextureDir      string
	MeshToolCommand string
	MeshToolOptions map[string]any
	Compile         bool
	Preview         bool
	BoneAssignments bool
	Triangulate     bool
	Workers         int
}

// OutputPath returns where the artifact derived from input with the given
// extension goes: next to the input unless an output directory is set.
// E.g. model.fbx becomes model.xml.
func (c *Config) OutputPath(input, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext
	if c.OutputDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(c.OutputDir, base)
}
