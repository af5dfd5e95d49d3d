// cavemesh builds cave surface and wall meshes from occupancy grids.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/cavemesh/internal/config"
	"github.com/Faultbox/cavemesh/internal/export"
	"github.com/Faultbox/cavemesh/internal/logger"
	"github.com/Faultbox/cavemesh/internal/mesh"
	"github.com/Faultbox/cavemesh/internal/preview"
	"github.com/Faultbox/cavemesh/pkg/grid"
)

func main() {
	config.ParseFlags()
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "generate", "gen":
		err = cmdGenerate(cfg, args)
	case "info":
		err = cmdInfo(cfg, args)
	case "preview":
		err = cmdPreview(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cavemesh - marching squares cave mesh generator

Usage:
  cavemesh [flags] <command> [args]

Commands:
  generate <grid.txt>             Write surface and wall meshes as OBJ
  info <grid.txt>                 Show grid and mesh statistics
  preview <grid.txt> [out.png]    Render a top-down preview

Flags:
  -config <path>       Config file (default ./cavemesh.yaml)
  -cell-size <n>       World size of one grid cell
  -wall-height <n>     Height of the extruded walls
  -out <dir>           Output directory
  -debug               Enable debug logging

Grid files hold one row per line, '#' or '1' for solid and '.' or '0' for empty.

Examples:
  cavemesh generate caves/level1.txt
  cavemesh -cell-size 2 -out build info caves/level1.txt
  cavemesh preview caves/level1.txt level1.svg`)
}

func options(cfg *config.Config) mesh.Options {
	return mesh.Options{
		CellSize:   cfg.Mesh.CellSize,
		WallHeight: cfg.Mesh.WallHeight,
		Normals:    cfg.Mesh.Normals,
	}
}

// load parses the grid file and runs generation on it.
func load(cfg *config.Config, path string) (*grid.Occupancy, *mesh.Result, error) {
	occ, err := grid.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	res, err := mesh.GenerateOccupancy(occ, options(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("generating %s: %w", path, err)
	}
	return occ, res, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func cmdGenerate(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cavemesh generate <grid.txt>")
	}

	_, res, err := load(cfg, args[0])
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.Output.Dir, baseName(args[0])+".obj")
	if err := export.WriteOBJFile(outPath, export.Objects(res)...); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	logger.Info("wrote mesh",
		zap.String("path", outPath),
		zap.Int("surface_triangles", res.Surface.TriangleCount()),
		zap.Int("wall_triangles", res.Walls.TriangleCount()),
	)
	fmt.Printf("Wrote: %s\n", outPath)
	return nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cavemesh info <grid.txt>")
	}

	occ, res, err := load(cfg, args[0])
	if err != nil {
		return err
	}
	s := res.Stats

	fmt.Printf("Grid:      %s (%dx%d, %d solid)\n", args[0], occ.Width, occ.Height, occ.Count())
	fmt.Printf("Cell size: %g\n", cfg.Mesh.CellSize)
	fmt.Printf("Surface:   %d vertices, %d triangles\n", len(res.Surface.Vertices), res.Surface.TriangleCount())
	fmt.Printf("Walls:     %d vertices, %d triangles\n", len(res.Walls.Vertices), res.Walls.TriangleCount())
	fmt.Printf("Boundary:  %d edges, %d chains, %d closed loops\n", s.BoundaryEdges, s.WallChains, s.ClosedLoops)
	fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		res.Surface.Bounds.Min.X, res.Walls.Bounds.Min.Y, res.Surface.Bounds.Min.Z,
		res.Surface.Bounds.Max.X, res.Surface.Bounds.Max.Y, res.Surface.Bounds.Max.Z)
	fmt.Println()
	fmt.Println("Cells by configuration:")
	for c, count := range s.Configurations {
		if count > 0 {
			fmt.Printf("  %2d %04b  %d\n", c, c, count)
		}
	}
	if s.AnomalousPolygons > 0 {
		fmt.Printf("\n%d cell polygons had more than 6 points\n", s.AnomalousPolygons)
	}
	return nil
}

func cmdPreview(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cavemesh preview <grid.txt> [out.png]")
	}

	_, res, err := load(cfg, args[0])
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.Output.Dir, baseName(args[0])+"."+cfg.Output.PreviewFormat)
	if len(args) > 1 {
		outPath = args[1]
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}

	size := vg.Length(cfg.Output.PreviewSize) * vg.Inch
	if err := preview.Save(res, baseName(args[0]), outPath, size); err != nil {
		return err
	}

	fmt.Printf("Wrote: %s\n", outPath)
	return nil
}
