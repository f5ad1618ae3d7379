// scenetool is a CLI utility for inspecting and querying scene files.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/engine/camera"
	"github.com/Faultbox/scenekit/internal/engine/debug"
	"github.com/Faultbox/scenekit/internal/engine/scene"
	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "cast":
		cmdCast(cfg, args)
	case "query":
		cmdQuery(cfg, args)
	case "pick":
		cmdPick(cfg, args)
	case "wire":
		cmdWire(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - scene file inspection utility

Usage:
  scenetool <command> [options]

Commands:
  info <scene.yaml>                        Show scene information
  cast <scene.yaml> <origin> <direction>   Cast a ray and report the hit
  query <scene.yaml> <min> <max>           List objects inside a region
  pick <scene.yaml> <px,py>                Pick through an editor camera
  wire <scene.yaml> <id>                   Print a selection wireframe

Points are comma-separated triples, e.g. 0,2,10.

Examples:
  scenetool info level1.yaml
  scenetool cast level1.yaml 0,0,10 0,0,-1
  scenetool query level1.yaml -5,-1,-5 5,3,5
  scenetool pick -dist 20 level1.yaml 640,360
  scenetool wire -pad 0.1 level1.yaml crate`)
}

func loadScene(cfg *config.Config, path string) *scene.Scene {
	s, err := scene.LoadFile(path, cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// parseVec3 parses an "x,y,z" triple.
func parseVec3(arg string) (math.Vec3, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("want x,y,z, got %q", arg)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("bad component %q in %q", p, arg)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func mustVec3(arg string) math.Vec3 {
	v, err := parseVec3(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return v
}

func cmdInfo(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool info <scene.yaml>")
		os.Exit(1)
	}

	s := loadScene(cfg, args[0])
	nodes := s.Index().All()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	fmt.Printf("Scene:   %s\n", args[0])
	fmt.Printf("Objects: %d\n", len(nodes))
	if b, ok := s.Bounds(); ok {
		fmt.Printf("Bounds:  min (%.2f, %.2f, %.2f)  max (%.2f, %.2f, %.2f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
	if len(nodes) == 0 {
		return
	}

	fmt.Println()
	for _, n := range nodes {
		p := n.Position()
		vis := ""
		if n.Payload != nil && !n.Payload.Visible {
			vis = "  (hidden)"
		}
		fmt.Printf("  %-20s (%.2f, %.2f, %.2f)%s\n", n.ID(), p.X, p.Y, p.Z, vis)
	}
}

func cmdCast(cfg *config.Config, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool cast <scene.yaml> <origin> <direction>")
		os.Exit(1)
	}

	s := loadScene(cfg, args[0])
	origin := mustVec3(args[1])
	dir := mustVec3(args[2])

	hit, ok := s.Index().CastRay(origin, dir)
	if !ok {
		fmt.Println("No hit")
		return
	}
	fmt.Printf("Hit:      %s\n", hit.Node.ID())
	fmt.Printf("Distance: %.4f\n", hit.Distance)
	fmt.Printf("Point:    (%.4f, %.4f, %.4f)\n", hit.Point.X, hit.Point.Y, hit.Point.Z)
}

func cmdQuery(cfg *config.Config, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool query <scene.yaml> <min> <max>")
		os.Exit(1)
	}

	s := loadScene(cfg, args[0])
	region := math.NewBox3(mustVec3(args[1]), mustVec3(args[2]))

	nodes := s.Index().QueryBounds(region)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	for _, n := range nodes {
		fmt.Println(n.ID())
	}
	fmt.Fprintf(os.Stderr, "\n(%d objects in region)\n", len(nodes))
}

func cmdPick(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	dist := fs.Float64("dist", 0, "Camera distance (0 = frame the whole scene)")
	yaw := fs.Float64("yaw", 0, "Camera yaw in degrees")
	pitch := fs.Float64("pitch", 30, "Camera pitch in degrees")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool pick [-dist 20] [-yaw 0] [-pitch 30] <scene.yaml> <px,py>")
		os.Exit(1)
	}

	s := loadScene(cfg, fs.Arg(0))
	w := float32(cfg.Editor.Width)
	h := float32(cfg.Editor.Height)

	cam := camera.New()
	cam.Yaw = math.DegToRad(float32(*yaw))
	cam.Pitch = math.DegToRad(float32(*pitch))
	if *dist > 0 {
		if b, ok := s.Bounds(); ok {
			cam.FocusOn(b.Center())
		}
		cam.Distance = float32(*dist)
	} else if b, ok := s.Bounds(); ok {
		cam.FitToBounds(b)
	}

	parts := strings.SplitN(fs.Arg(1), ",", 2)
	if len(parts) != 2 {
		fmt.Fprintf(os.Stderr, "Error: want px,py, got %q\n", fs.Arg(1))
		os.Exit(1)
	}
	px, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	py, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err1 != nil || err2 != nil {
		fmt.Fprintf(os.Stderr, "Error: bad pixel coordinates %q\n", fs.Arg(1))
		os.Exit(1)
	}

	inv := cam.InverseViewProjection(w, h)
	n := s.PickAt(math.Vec2{X: float32(px), Y: float32(py)}, w, h, inv, false)
	if n == nil {
		fmt.Println("No hit")
		return
	}
	p := n.Position()
	fmt.Printf("Picked: %s\n", n.ID())
	fmt.Printf("At:     (%.2f, %.2f, %.2f)\n", p.X, p.Y, p.Z)
}

func cmdWire(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("wire", flag.ExitOnError)
	pad := fs.Float64("pad", float64(cfg.Scene.SelectionPadding), "Padding around the box")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool wire [-pad 0.05] <scene.yaml> <id>")
		os.Exit(1)
	}

	s := loadScene(cfg, fs.Arg(0))
	n, ok := s.Index().Get(fs.Arg(1))
	if !ok {
		fmt.Fprintf(os.Stderr, "Object not found: %s\n", fs.Arg(1))
		os.Exit(1)
	}

	verts := debug.SelectionWireframe(n.WorldBounds(), float32(*pad))
	for i := 0; i+2 < len(verts); i += 3 {
		fmt.Printf("%.4f %.4f %.4f\n", verts[i], verts[i+1], verts[i+2])
	}
	fmt.Fprintf(os.Stderr, "\n(%d line segment vertices)\n", len(verts)/3)
}
