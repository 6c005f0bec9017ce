package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/memmaker/voxelstream/engine/terrain"
	"github.com/memmaker/voxelstream/engine/voxel"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
seed: 7
streaming:
  retention_radius: 2
  remesh_strategy: full
  async_planning: true
terrain:
  sparse_threshold: 0.2
log:
  level: debug
  categories: [stream, mesh]
export:
  gltf: out/world.glb
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := Default()
	want.Seed = 7
	want.Streaming.RetentionRadius = 2
	want.Streaming.RemeshStrategy = "full"
	want.Streaming.AsyncPlanning = true
	want.Terrain.SparseThreshold = 0.2
	want.Log = LogConfig{Level: "debug", Categories: []string{"stream", "mesh"}}
	want.Export.GLTF = "out/world.glb"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	strategy, err := cfg.RemeshStrategy()
	if err != nil || strategy != voxel.RemeshFull {
		t.Fatalf("expected full strategy, got %v %v", strategy, err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"negative radius": "streaming:\n  retention_radius: -1\n",
		"zero budget":     "streaming:\n  generation_budget: 0\n",
		"zero mesh":       "streaming:\n  mesh_budget: 0\n",
		"zero interval":   "streaming:\n  unload_interval: 0\n",
		"strategy":        "streaming:\n  remesh_strategy: greedy\n",
		"threshold":       "terrain:\n  sparse_threshold: 1.5\n",
		"frequency":       "terrain:\n  base:\n    frequency: 0\n",
		"octaves":         "terrain:\n  detail:\n    octaves: 0\n",
		"amplitude":       "terrain:\n  mountain:\n    amplitude: -3\n",
		"level":           "log:\n  level: loud\n",
		"category":        "log:\n  categories: [physics]\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse([]byte("seed: [")); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("expected a wrapped parse error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg.Seed != Default().Seed {
		t.Fatalf("empty path should return defaults, got %v %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "stream.yaml")
	if err := os.WriteFile(path, []byte("seed: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected seed 99, got %d", cfg.Seed)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestTerrainLayersFromYAML(t *testing.T) {
	cfg, err := Parse([]byte(`
terrain:
  mountain:
    amplitude: 120
  detail:
    frequency: 0.01
    octaves: 3
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := terrain.DefaultParams()
	want.Mountain.Amplitude = 120
	want.Detail.Frequency = 0.01
	want.Detail.Octaves = 3
	if diff := cmp.Diff(want, cfg.Terrain.Params()); diff != "" {
		t.Fatalf("unexpected terrain params (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(terrain.DefaultParams(), Default().Terrain.Params()); diff != "" {
		t.Fatalf("default terrain config drifted from the generator defaults:\n%s", diff)
	}
}
