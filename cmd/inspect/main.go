package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"ogre-meshxml/internal/geometry"
	"ogre-meshxml/internal/importer"
	"ogre-meshxml/internal/mathutil"
	"ogre-meshxml/internal/scene"
	"ogre-meshxml/internal/weights"
)

func main() {
	triangulate := flag.Bool("triangulate", false, "Split quads and polygons into triangles before inspecting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-triangulate] model...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		s, err := importer.Load(path, importer.Options{Triangulate: *triangulate})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}
		printScene(path, s)
	}
	if failed {
		os.Exit(1)
	}
}

func printScene(path string, s *scene.Scene) {
	fmt.Printf("%s: submeshes=%d\n", path, len(s.SubMeshes))
	if err := geometry.CheckTopology(s); err != nil {
		fmt.Printf("  not convertible: %v\n", err)
	}

	for i := range s.SubMeshes {
		sub := &s.SubMeshes[i]
		fmt.Printf("  SubMesh[%d] %q: verts=%d faces=%d bones=%d", i, sub.Name, len(sub.Vertices), len(sub.Faces), len(sub.Bones))
		if sub.Texture != "" {
			fmt.Printf(" texture=%q", sub.Texture)
		}
		fmt.Println()

		if g, err := geometry.Extract(sub); err == nil {
			ch := g.Channels()
			fmt.Printf("    Channels: normals=%t tangents=%t uv0=%t\n", ch.HasNormals, ch.HasTangents, ch.HasTexCoord0)
		}

		box := mathutil.EmptyBounds()
		for _, v := range sub.Vertices {
			box.Extend(mathutil.FromFloat32(v.Position))
		}
		if !box.Empty() {
			size := box.Size()
			fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
				box.Min[0], box.Max[0], box.Min[1], box.Max[1], box.Min[2], box.Max[2])
			fmt.Printf("    Size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
		}

		if len(sub.Bones) > 0 {
			assigned := weights.Consolidate(sub.Bones)
			fmt.Printf("    Bone assignments: %d\n", len(assigned))
			for bi, b := range sub.Bones {
				fmt.Printf("      Bone[%d] %q: weights=%d\n", bi, b.Name, len(b.Weights))
			}
		}
	}
}
