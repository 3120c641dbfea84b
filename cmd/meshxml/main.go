package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"ogre-meshxml/internal/batch"
	"ogre-meshxml/internal/config"
	"ogre-meshxml/internal/convert"
	"ogre-meshxml/internal/importer"
	"ogre-meshxml/internal/texture"
	"ogre-meshxml/internal/watch"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml)")
	outputDir := flag.String("output", "", "Output directory (default: next to each input)")
	textureDir := flag.String("textures", "", "Texture search directory for previews (default: input directory)")
	meshTool := flag.String("meshtool", "", "Mesh compiler command (default: OgreMeshTool)")
	compile := flag.Bool("compile", false, "Compile each document to a binary .mesh")
	preview := flag.Bool("preview", false, "Render a .webp preview of each input")
	bones := flag.Bool("bones", false, "Write vertex bone assignments")
	triangulate := flag.Bool("triangulate", false, "Split quads and polygons into triangles")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	watchMode := flag.Bool("watch", false, "Convert again whenever an input changes")
	manifest := flag.String("manifest", "", "Write a JSON manifest of the results to this path")
	verbose := flag.Bool("v", false, "Verbose logging")
	toolOpts := map[string]any{}
	flag.Func("opt", "Mesh compiler option key=value, e.g. generate_tangents=true (repeatable)", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		toolOpts[k] = v
		return nil
	})

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] model|dir...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:       *outputDir,
		TextureDir:      *textureDir,
		MeshToolCommand: *meshTool,
		MeshToolOptions: toolOpts,
		Compile:         *compile,
		Preview:         *preview,
		BoneAssignments: *bones,
		Triangulate:     *triangulate,
		Workers:         *workers,
	})

	inputs, err := collectInputs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) == 0 && !*watchMode {
		fmt.Println("No models to convert.")
		os.Exit(0)
	}

	var textures texture.Resolver
	if cfg.Preview && cfg.TextureDir != "" {
		index := texture.BuildIndex(cfg.TextureDir)
		textures = texture.NewCache(index)
		fmt.Printf("Textures: %d indexed\n", index.Len())
	}
	conv := convert.New(cfg, textures)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := termenv.NewOutput(os.Stdout)
	failed := runBatch(ctx, out, cfg, conv, inputs, *manifest)

	if *watchMode {
		fmt.Println("Watching for changes, Ctrl-C to stop.")
		w, err := watch.New(flag.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
		w.Match = importer.Supported
		w.Run(ctx, func(path string) {
			report(out, conv.Convert(ctx, path))
		})
		return
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runBatch(ctx context.Context, out *termenv.Output, cfg config.Config, conv *convert.Converter, inputs []string, manifest string) int {
	if len(inputs) == 0 {
		return 0
	}
	fmt.Printf("Models: %d, Workers: %d\n", len(inputs), cfg.Workers)
	if cfg.Compile {
		fmt.Printf("Compiler: %s\n", cfg.MeshToolCommand)
	}

	start := time.Now()
	progress := time.Duration(0)
	if len(inputs) > 1 {
		progress = 2 * time.Second
	}
	results := batch.Run(ctx, batch.Config{Workers: cfg.Workers, Progress: progress}, conv, inputs)

	for _, r := range results {
		report(out, r)
	}
	failed := batch.Failed(results)
	fmt.Printf("Converted %d/%d in %.1fs\n", len(results)-failed, len(results), time.Since(start).Seconds())

	if manifest != "" {
		err := os.MkdirAll(filepath.Dir(manifest), 0755)
		if err == nil {
			err = batch.WriteManifest(manifest, results)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifest)
		}
	}
	return failed
}

func report(out *termenv.Output, r convert.Result) {
	if r.Err != nil {
		fmt.Printf("%s %s: %v\n", out.String("FAIL").Foreground(termenv.ANSIRed).Bold(), r.Input, r.Err)
		return
	}
	artifacts := []string{r.XML}
	for _, p := range []string{r.Mesh, r.Preview} {
		if p != "" {
			artifacts = append(artifacts, p)
		}
	}
	fmt.Printf("%s %s -> %s\n", out.String("OK").Foreground(termenv.ANSIGreen), r.Input, strings.Join(artifacts, ", "))
}

// collectInputs expands directories to the supported model files they
// contain.
func collectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && importer.Supported(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		inputs = append(inputs, found...)
	}
	return inputs, nil
}
