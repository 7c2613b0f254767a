// World generator: writes demo voxel scenes as .sec files for the headless
// client.
//
// Usage:
//
//	go run ./cmd/genworld all                       # generate every scene
//	go run ./cmd/genworld -out data/world house     # generate only the listed scenes
//	go run ./cmd/genworld --list                    # list available scenes
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/udisondev/roomcull/internal/voxel"
)

const defaultOutputDir = "data/world"

type scene struct {
	name  string
	desc  string
	build func(w *voxel.World) []voxel.Coord // returns suggested marker anchors
}

var scenes []scene

func registerScene(name, desc string, fn func(w *voxel.World) []voxel.Coord) {
	scenes = append(scenes, scene{name: name, desc: desc, build: fn})
}

func init() {
	registerScene("house", "Two stone rooms sharing a glass-windowed wall", buildHouse)
	registerScene("cave", "Hollow carved into solid stone below ground", buildCave)
	registerScene("meadow", "Open terrain with grass and water, no enclosures", buildMeadow)
}

func main() {
	out := flag.String("out", defaultOutputDir, "output directory")
	list := flag.Bool("list", false, "list available scenes")
	flag.Parse()

	if *list {
		printList()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var toRun []scene
	if args[0] == "all" {
		toRun = scenes
	} else {
		byName := make(map[string]scene, len(scenes))
		for _, s := range scenes {
			byName[s.name] = s
		}
		for _, name := range args {
			s, ok := byName[name]
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown scene: %s\n", name)
				printList()
				os.Exit(1)
			}
			toRun = append(toRun, s)
		}
	}

	start := time.Now()
	world := voxel.NewWorld(nil)
	var anchors []voxel.Coord
	for _, s := range toRun {
		fmt.Printf("[genworld] building %s...\n", s.name)
		anchors = append(anchors, s.build(world)...)
	}

	n, err := world.SaveAll(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[genworld] FAILED: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[genworld] %d sections written to %s (%s)\n", n, *out, time.Since(start).Round(time.Millisecond))

	if len(anchors) > 0 {
		fmt.Println("markers:")
		for _, a := range anchors {
			fmt.Printf("  - {x: %d, y: %d, z: %d}\n", a.X, a.Y, a.Z)
		}
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/genworld [-out dir] <all | name1 name2 ...>")
	fmt.Fprintln(os.Stderr, "       go run ./cmd/genworld --list")
}

func printList() {
	maxLen := 0
	for _, s := range scenes {
		maxLen = max(maxLen, len(s.name))
	}
	sorted := make([]scene, len(scenes))
	copy(sorted, scenes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	fmt.Println("Available scenes:")
	for _, s := range sorted {
		padding := strings.Repeat(" ", maxLen-len(s.name)+2)
		fmt.Printf("  %s%s%s\n", s.name, padding, s.desc)
	}
}
