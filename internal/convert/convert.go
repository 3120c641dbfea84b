// Package convert runs the per-file pipeline: import a model, build and
// write its mesh XML document, then optionally compile it to a binary mesh
// and render a WebP preview.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"ogre-meshxml/internal/config"
	"ogre-meshxml/internal/importer"
	"ogre-meshxml/internal/meshtool"
	"ogre-meshxml/internal/meshxml"
	"ogre-meshxml/internal/postprocess"
	"ogre-meshxml/internal/raster"
	"ogre-meshxml/internal/scene"
	"ogre-meshxml/internal/texture"
)

// Artifact extensions.
const (
	ExtXML     = ".xml"
	ExtMesh    = ".mesh"
	ExtPreview = ".webp"
)

// Result describes the outcome of converting one input. Paths are empty for
// artifacts that were not produced.
type Result struct {
	Input   string
	XML     string
	Mesh    string
	Preview string
	Err     error
}

// OK reports whether every requested step succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Converter holds the settings and shared resources for converting inputs.
// It is safe for concurrent use when its texture resolver is.
type Converter struct {
	cfg      config.Config
	builder  *meshxml.Builder
	planner  *meshtool.Planner
	tool     meshtool.Options
	textures texture.Resolver
}

// New returns a converter for a resolved config. When textures is nil,
// previews look for textures in each input's own directory.
func New(cfg config.Config, textures texture.Resolver) *Converter {
	return &Converter{
		cfg:      cfg,
		builder:  meshxml.NewBuilder(meshxml.Options{BoneAssignments: cfg.BoneAssignments}),
		planner:  meshtool.NewPlanner(cfg.MeshToolCommand),
		tool:     cfg.MeshTool(),
		textures: textures,
	}
}

// Convert runs the pipeline for one input file.
func (c *Converter) Convert(ctx context.Context, input string) Result {
	res := Result{Input: input}

	s, err := importer.Load(input, importer.Options{Triangulate: c.cfg.Triangulate})
	if err != nil {
		res.Err = err
		return res
	}

	doc, err := c.builder.Build(s)
	if err != nil {
		res.Err = fmt.Errorf("convert %s: %w", input, err)
		return res
	}

	xmlPath := c.cfg.OutputPath(input, ExtXML)
	if err := os.MkdirAll(filepath.Dir(xmlPath), 0755); err != nil {
		res.Err = fmt.Errorf("convert %s: %w", input, err)
		return res
	}
	if err := doc.WriteFile(xmlPath); err != nil {
		res.Err = err
		return res
	}
	res.XML = xmlPath

	if c.cfg.Compile {
		meshPath, err := c.compile(ctx, xmlPath, c.cfg.OutputPath(input, ExtMesh))
		if err != nil {
			res.Err = err
			return res
		}
		res.Mesh = meshPath
	}

	if c.cfg.Preview {
		previewPath := c.cfg.OutputPath(input, ExtPreview)
		if err := c.renderPreview(s, c.resolverFor(input), previewPath); err != nil {
			res.Err = err
			return res
		}
		res.Preview = previewPath
	}

	return res
}

// compile hands the written document to the external mesh compiler. The
// compiler's exit status is not trusted: success means a non-empty output
// written by this run, so a mesh left over from an earlier run is removed
// first.
func (c *Converter) compile(ctx context.Context, xmlPath, meshPath string) (string, error) {
	if err := os.Remove(meshPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("compile %s: remove stale output: %w", xmlPath, err)
	}

	inv := c.planner.Plan(c.tool, xmlPath, meshPath)
	if err := meshtool.Run(ctx, inv); err != nil && ctx.Err() != nil {
		return "", fmt.Errorf("compile %s: %w", xmlPath, ctx.Err())
	}
	if !meshtool.Compiled(meshPath) {
		return "", fmt.Errorf("compile %s: no output at %s (%s)", xmlPath, meshPath, inv)
	}
	return meshPath, nil
}

func (c *Converter) resolverFor(input string) texture.Resolver {
	if c.textures != nil {
		return c.textures
	}
	return texture.NewCache(texture.BuildIndex(filepath.Dir(input)))
}

func (c *Converter) renderPreview(s *scene.Scene, tex texture.Resolver, path string) error {
	img := raster.RenderScene(s, tex, c.cfg.PreviewSize, c.cfg.Supersample)
	if c.cfg.Supersample > 1 {
		img = postprocess.Downsample(img, c.cfg.PreviewSize)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("preview %s: webp encode: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("preview %s: %w", path, err)
	}
	slog.Debug("convert: preview written", "path", path)
	return nil
}
