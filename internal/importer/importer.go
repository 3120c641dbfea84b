// Package importer reads model files into a scene.Scene.
package importer

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"ogre-meshxml/internal/scene"
)

// ErrUnsupportedFormat is returned for file extensions with no importer.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Options control importer post-processing.
type Options struct {
	// Triangulate splits quads and larger polygons into fans. Without it
	// they are kept as-is and rejected when the document is built.
	Triangulate bool
}

// Extensions lists the supported file extensions.
var Extensions = []string{".obj", ".gltf", ".glb", ".bmd"}

// Supported reports whether path has an importer.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load imports the model at path, picking the reader by extension.
func Load(path string, opts Options) (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		s, err = LoadOBJ(path, opts)
	case ".gltf", ".glb":
		s, err = LoadGLTF(path, opts)
	case ".bmd":
		s, err = LoadBMD(path, opts)
	default:
		return nil, fmt.Errorf("importer: %s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	slog.Debug("importer: loaded scene", "path", path, "submeshes", len(s.SubMeshes))
	return s, nil
}

// triangulate fans a polygon around its first corner: 0-1-2, 0-2-3, ...
func triangulate(idx []uint32) []scene.Face {
	if len(idx) <= 3 {
		return []scene.Face{{Indices: idx}}
	}
	faces := make([]scene.Face, 0, len(idx)-2)
	for k := 1; k+1 < len(idx); k++ {
		faces = append(faces, scene.Tri(idx[0], idx[k], idx[k+1]))
	}
	return faces
}

func addFace(sub *scene.SubMesh, idx []uint32, opts Options) {
	if opts.Triangulate {
		sub.Faces = append(sub.Faces, triangulate(idx)...)
		return
	}
	sub.Faces = append(sub.Faces, scene.Face{Indices: idx})
}
