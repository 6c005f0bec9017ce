package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/term"

	"github.com/memmaker/voxelstream/engine/config"
	"github.com/memmaker/voxelstream/engine/export"
	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
	"github.com/memmaker/voxelstream/engine/world"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Uint64("seed", 0, "world seed, overrides the config when non-zero")
	radius := flag.Int("radius", -1, "retention radius in partitions, overrides the config when >= 0")
	maxTicks := flag.Int("ticks", 20000, "upper bound of simulated ticks")
	dt := flag.Float64("dt", 1.0/60.0, "seconds per tick")
	tour := flag.Int("tour", 3, "side of the square the observer walks, in partitions")
	legTime := flag.Float64("leg", 4, "seconds per leg of the tour")
	statsEvery := flag.Int("stats", 600, "log stats every n ticks, 0 disables")
	flag.Parse()

	util.SetLogColors(term.IsTerminal(int(os.Stdout.Fd())))

	cfg, err := config.Load(*configPath)
	if err != nil {
		util.LogConfigError(err.Error())
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *radius >= 0 {
		cfg.Streaming.RetentionRadius = int32(*radius)
	}
	if err := cfg.Validate(); err != nil {
		util.LogConfigError(err.Error())
		os.Exit(1)
	}
	if err := cfg.ApplyLogging(); err != nil {
		util.LogConfigError(err.Error())
		os.Exit(1)
	}

	if err := run(cfg, *maxTicks, *dt, int32(*tour), *legTime, *statsEvery); err != nil {
		util.LogDriverError(err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Config, maxTicks int, dt float64, tour int32, legTime float64, statsEvery int) error {
	sink := newMeshCounter()
	w := world.New(cfg, world.WithMeshSink(sink))
	defer w.Close()

	start := spawnPoint(w)
	observer := newObserverPath(w, start, squareTour(start, tour), legTime)

	ticks := 0
	for ; ticks < maxTicks && !observer.Done(); ticks++ {
		observer.Update(dt)
		w.Tick(observer.position, dt)
		if statsEvery > 0 && ticks > 0 && ticks%statsEvery == 0 {
			util.LogDriverInfo(fmt.Sprintf("[Driver] Tick %d at %v: %s", ticks, w.Observer(), sink))
		}
	}
	util.LogDriverInfo(fmt.Sprintf("[Driver] Finished after %d ticks\n%s\n%s", ticks, sink, w.Stats()))

	return writeExports(cfg, w)
}

// spawnPoint puts the observer a little above the surface at the world origin.
func spawnPoint(w *world.World) mgl32.Vec3 {
	half := voxel.CHUNK_SIZE / 2
	h := w.Generator().HeightAt(half, half)
	return voxel.Int3{X: half, Y: h + 2, Z: half}.ToVec3()
}

// writeExports writes every configured export. A failing export is logged and does not stop
// the others; the first error is returned.
func writeExports(cfg config.Config, w *world.World) error {
	var first error
	report := func(kind string, err error) {
		if err == nil {
			return
		}
		util.LogExportError(fmt.Sprintf("[Export] %s failed: %v", kind, err))
		if first == nil {
			first = err
		}
	}
	if path := cfg.Export.GLTF; path != "" {
		report("glTF", export.WriteGLB(path, w))
	}
	if path := cfg.Export.NBT; path != "" {
		report("snapshot", export.WriteSnapshot(path, cfg.Seed, w))
	}
	if path := cfg.Export.Preview; path != "" {
		report("preview", export.WritePreview(path, w.Generator(), w.Observer(), w.RetentionRadius(), 2))
	}
	return first
}
