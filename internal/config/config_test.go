package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogre-meshxml/internal/meshtool"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"config.json", `{
  "output_dir": "out",
  "compile": true,
  "meshtool_command": "wine OgreMeshTool.exe",
  "meshtool_options": {"generate_tangents": true, "optimize_for_desktop": "no"},
  "preview_size": 128,
  "workers": 3
}`},
		{"config.toml", `output_dir = "out"
compile = true
meshtool_command = "wine OgreMeshTool.exe"
preview_size = 128
workers = 3

[meshtool_options]
generate_tangents = true
optimize_for_desktop = "no"
`},
		{"config.yaml", `output_dir: out
compile: true
meshtool_command: wine OgreMeshTool.exe
meshtool_options:
  generate_tangents: true
  optimize_for_desktop: "no"
preview_size: 128
workers: 3
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.name, tt.data))
			require.NoError(t, err)
			assert.Equal(t, "out", cfg.OutputDir)
			assert.True(t, cfg.Compile)
			assert.Equal(t, "wine OgreMeshTool.exe", cfg.MeshToolCommand)
			assert.Equal(t, 128, cfg.PreviewSize)
			assert.Equal(t, 3, cfg.Workers)
			assert.Equal(t, meshtool.Options{GenerateTangents: true}, cfg.MeshTool())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(writeConfig(t, "config.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported format")

	_, err = Load(writeConfig(t, "config.json", "{"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	assert.Equal(t, meshtool.DefaultCommand, cfg.MeshToolCommand)
	assert.Equal(t, 256, cfg.PreviewSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.False(t, cfg.Compile)
	assert.False(t, cfg.BoneAssignments)
	assert.Equal(t, meshtool.DefaultOptions(), cfg.MeshTool())
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{
		OutputDir:       "from-file",
		MeshToolCommand: "file-tool",
		MeshToolOptions: map[string]any{"generate_tangents": true},
		Workers:         2,
	}
	cfg.Resolve(Flags{
		OutputDir:       "from-flag",
		MeshToolOptions: map[string]any{"optimize_for_desktop": "false"},
		Compile:         true,
		BoneAssignments: true,
	})

	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.Equal(t, "file-tool", cfg.MeshToolCommand)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Compile)
	assert.True(t, cfg.BoneAssignments)
	assert.Equal(t, meshtool.Options{GenerateTangents: true}, cfg.MeshTool())
}

func TestOutputPath(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, filepath.Join("models", "hero.xml"), cfg.OutputPath(filepath.Join("models", "hero.obj"), ".xml"))

	cfg.OutputDir = "build"
	assert.Equal(t, filepath.Join("build", "hero.mesh"), cfg.OutputPath(filepath.Join("models", "hero.obj"), ".mesh"))
}
