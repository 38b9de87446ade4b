// terraintool is a CLI utility for inspecting heightmaps and models offline.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/model"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/engine/texture"
	"github.com/Faultbox/terrainview/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "query", "q":
		cmdQuery(args)
	case "export", "x":
		cmdExport(args)
	case "model", "m":
		cmdModel(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - heightmap terrain utility

Usage:
  terraintool <command> [options]

Commands:
  info [options] <heightmap>             Show heightmap and mesh statistics
  query [options] <heightmap> <x> <z>    Print the terrain height at world (x, z)
  export [options] <heightmap> <out.obj> Write the terrain mesh as Wavefront OBJ
  model <file.obj>                       Show model statistics
  init [path]                            Write a default config file

Terrain options:
  -config <file>  Read scales and flip setting from a config file
  -hs <value>     Horizontal scale (world units per sample)
  -vs <value>     Vertical scale (world units per height unit)
  -flip           Treat image rows as bottom-up (default true)

Examples:
  terraintool info -hs 25 -vs 0.01 heightmap.png
  terraintool query -config config.yaml heightmap.png 120 -40
  terraintool export -hs 25 -vs 0.01 heightmap.png terrain.obj
  terraintool model lighthouse/lighthouse.obj`)
}

// terrainFlags are shared by the commands that build a terrain.
type terrainFlags struct {
	config     *string
	horizontal *float64
	vertical   *float64
	flip       *bool
}

func newTerrainFlags(fs *flag.FlagSet) *terrainFlags {
	return &terrainFlags{
		config:     fs.String("config", "", "Config file with terrain settings"),
		horizontal: fs.Float64("hs", 0, "Horizontal scale"),
		vertical:   fs.Float64("vs", 0, "Vertical scale"),
		flip:       fs.Bool("flip", true, "Image rows are bottom-up"),
	}
}

// settings resolves the scale, with explicit flags overriding the config file.
func (f *terrainFlags) settings(fs *flag.FlagSet) (terrain.Scale, bool, error) {
	scale := terrain.Scale{}
	flip := *f.flip

	if *f.config != "" {
		cfg, err := config.LoadFile(*f.config)
		if err != nil {
			return scale, flip, err
		}
		scale = terrain.Scale{Horizontal: cfg.Terrain.HorizontalScale, Vertical: cfg.Terrain.VerticalScale}
		flip = cfg.Terrain.FlipVertical
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "hs":
			scale.Horizontal = float32(*f.horizontal)
		case "vs":
			scale.Vertical = float32(*f.vertical)
		case "flip":
			flip = *f.flip
		}
	})

	if err := scale.Validate(); err != nil {
		return scale, flip, fmt.Errorf("%w (set -hs and -vs or -config)", err)
	}
	return scale, flip, nil
}

func loadTerrain(path string, scale terrain.Scale, flip bool) (*terrain.Terrain, error) {
	img, err := texture.LoadImage(path)
	if err != nil {
		return nil, err
	}
	field, err := terrain.FromImage(img, flip)
	if err != nil {
		return nil, err
	}
	return terrain.New(field, scale)
}

// parseTerrainArgs parses the shared flags and loads the heightmap named by the
// first positional argument.
func parseTerrainArgs(fs *flag.FlagSet, args []string, usage string, nargs int) (*terrain.Terrain, []string) {
	tf := newTerrainFlags(fs)
	fs.Parse(args)

	if fs.NArg() < nargs {
		fmt.Fprintln(os.Stderr, "Usage: terraintool "+usage)
		os.Exit(1)
	}

	scale, flip, err := tf.settings(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	terr, err := loadTerrain(fs.Arg(0), scale, flip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return terr, fs.Args()[1:]
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	terr, _ := parseTerrainArgs(fs, args, "info [options] <heightmap>", 1)

	lo, hi := terr.Field.MinMax()
	sx, sz := terr.Extent()
	b := terr.Mesh.Bounds

	fmt.Printf("Heightmap: %s\n", fs.Arg(0))
	fmt.Printf("Grid:      %d rows x %d cols\n", terr.Field.Rows(), terr.Field.Cols())
	fmt.Printf("Samples:   min %d, max %d\n", lo, hi)
	fmt.Printf("Scale:     horizontal %g, vertical %g\n", terr.Scale.Horizontal, terr.Scale.Vertical)
	fmt.Printf("Extent:    %.2f x %.2f\n", sx, sz)
	fmt.Printf("Bounds:    (%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("Mesh:      %d triangles, %d vertices\n", terr.Mesh.TriangleCount(), len(terr.Mesh.Vertices))
}

func cmdQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	terr, rest := parseTerrainArgs(fs, args, "query [options] <heightmap> <x> <z>", 3)

	x, errX := strconv.ParseFloat(rest[0], 32)
	z, errZ := strconv.ParseFloat(rest[1], 32)
	if err := errors.Join(errX, errZ); err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad coordinate: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%g\n", terr.HeightAt(float32(x), float32(z)))
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	terr, rest := parseTerrainArgs(fs, args, "export [options] <heightmap> <out.obj>", 2)

	outputPath := rest[0]
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = formats.WriteOBJ(f, meshToOBJ(terr.Mesh))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}

	fmt.Printf("Exported: %s (%d triangles)\n", outputPath, terr.Mesh.TriangleCount())
}

// meshToOBJ converts terrain geometry to OBJ, one normal per triangle.
func meshToOBJ(mesh *terrain.Mesh) *formats.OBJ {
	tris := mesh.TriangleCount()
	obj := &formats.OBJ{
		Vertices: make([][3]float32, len(mesh.Vertices)),
		Normals:  make([][3]float32, 0, tris),
		Faces:    make([]formats.OBJFace, 0, tris),
	}
	for k, v := range mesh.Vertices {
		obj.Vertices[k] = v.Position
	}

	for t := range tris {
		face := formats.OBJFace{Group: "terrain"}
		for c := range 3 {
			idx := int(mesh.Indices[t*3+c])
			face.Corners[c] = formats.OBJIndex{Vertex: idx, TexCoord: -1, Normal: t}
		}
		obj.Normals = append(obj.Normals, mesh.Vertices[mesh.Indices[t*3]].Normal)
		obj.Faces = append(obj.Faces, face)
	}
	return obj
}

func cmdModel(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool model <file.obj>")
		os.Exit(1)
	}
	path := args[0]

	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Model:     %s\n", path)
	fmt.Printf("Vertices:  %d\n", len(obj.Vertices))
	fmt.Printf("Normals:   %d\n", len(obj.Normals))
	fmt.Printf("TexCoords: %d\n", len(obj.TexCoords))
	fmt.Printf("Triangles: %d\n", len(obj.Faces))

	useCount := make(map[string]int)
	for _, f := range obj.Faces {
		useCount[f.Material]++
	}

	materials := make(map[string]*formats.Material)
	for _, lib := range obj.MaterialLibs {
		libPath := filepath.Join(filepath.Dir(path), lib)
		mats, err := formats.ParseMTLFile(libPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		for name, m := range mats {
			materials[name] = m
		}
	}

	names := make([]string, 0, len(useCount))
	for name := range useCount {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Println("Materials:")
	for _, name := range names {
		color := formats.DefaultDiffuse
		label := name
		if m, ok := materials[name]; ok {
			color = m.Diffuse
		} else if name == "" {
			label = "(none)"
		} else {
			label += " (missing)"
		}
		fmt.Printf("  %-24s %6d faces  Kd %.2f %.2f %.2f\n", label, useCount[name], color[0], color[1], color[2])
	}

	// Same path the viewer takes, including recentering and deduplication.
	mesh, err := model.Load(path, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building mesh: %v\n", err)
		os.Exit(1)
	}
	size := mesh.Bounds.Size()
	fmt.Println()
	fmt.Printf("Mesh:      %d vertices, %d indices\n", len(mesh.Vertices), len(mesh.Indices))
	fmt.Printf("Size:      %.2f x %.2f x %.2f\n", size[0], size[1], size[2])
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing file")
	fs.Parse(args)

	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "File exists: %s (use -f to overwrite)\n", path)
		os.Exit(1)
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set terrain.horizontal_scale and terrain.vertical_scale before running the viewer.")
}
