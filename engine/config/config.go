package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/memmaker/voxelstream/engine/terrain"
	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

type Config struct {
	Seed      uint64          `yaml:"seed"`
	Streaming StreamingConfig `yaml:"streaming"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Log       LogConfig       `yaml:"log"`
	Export    ExportConfig    `yaml:"export"`
}

type StreamingConfig struct {
	// RetentionRadius is the Chebyshev radius in partitions kept around the observer.
	RetentionRadius  int32   `yaml:"retention_radius"`
	GenerationBudget int     `yaml:"generation_budget"`
	MeshBudget       int     `yaml:"mesh_budget"`
	// UnloadInterval is in seconds.
	UnloadInterval float64 `yaml:"unload_interval"`
	RemeshStrategy string  `yaml:"remesh_strategy"`
	AsyncPlanning  bool    `yaml:"async_planning"`
}

// TerrainConfig holds the generator parameters. The elevation is the sum of the base,
// mountain (squared) and detail layers.
type TerrainConfig struct {
	Base            terrain.Layer `yaml:"base"`
	Mountain        terrain.Layer `yaml:"mountain"`
	Detail          terrain.Layer `yaml:"detail"`
	SparseThreshold float64       `yaml:"sparse_threshold"`
	DirtDepth       int32         `yaml:"dirt_depth"`
}

func (t TerrainConfig) Params() terrain.Params {
	return terrain.Params{
		Base:            t.Base,
		Mountain:        t.Mountain,
		Detail:          t.Detail,
		DirtDepth:       t.DirtDepth,
		SparseThreshold: t.SparseThreshold,
	}
}

func validateLayer(name string, l terrain.Layer) error {
	switch {
	case l.Frequency <= 0:
		return errors.Errorf("terrain.%s.frequency must be positive, got %v", name, l.Frequency)
	case l.Octaves < 1:
		return errors.Errorf("terrain.%s.octaves must be at least 1, got %d", name, l.Octaves)
	case l.Persistence <= 0:
		return errors.Errorf("terrain.%s.persistence must be positive, got %v", name, l.Persistence)
	case l.Amplitude < 0:
		return errors.Errorf("terrain.%s.amplitude must not be negative, got %v", name, l.Amplitude)
	}
	return nil
}

type LogConfig struct {
	Level      string   `yaml:"level"`
	Categories []string `yaml:"categories"`
}

// ExportConfig holds optional output paths. Empty paths disable the export.
type ExportConfig struct {
	GLTF    string `yaml:"gltf"`
	NBT     string `yaml:"nbt"`
	Preview string `yaml:"preview"`
}

func Default() Config {
	defaults := terrain.DefaultParams()
	return Config{
		Seed: 42,
		Streaming: StreamingConfig{
			RetentionRadius:  5,
			GenerationBudget: 4,
			MeshBudget:       4,
			UnloadInterval:   1.0,
			RemeshStrategy:   voxel.RemeshDirty.String(),
		},
		Terrain: TerrainConfig{
			Base:            defaults.Base,
			Mountain:        defaults.Mountain,
			Detail:          defaults.Detail,
			SparseThreshold: defaults.SparseThreshold,
			DirtDepth:       defaults.DirtDepth,
		},
		Log: LogConfig{
			Level:      "info",
			Categories: []string{"stream", "terrain", "config", "export", "driver"},
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Default(), errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := Parse(b)
	if err != nil {
		return cfg, errors.Wrap(err, path)
	}
	util.LogConfigInfo(fmt.Sprintf("[Config] Loaded %s (seed %d, radius %d)", path, cfg.Seed, cfg.Streaming.RetentionRadius))
	return cfg, nil
}

func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	s := c.Streaming
	if s.RetentionRadius < 0 {
		return errors.Errorf("streaming.retention_radius must not be negative, got %d", s.RetentionRadius)
	}
	if s.GenerationBudget <= 0 {
		return errors.Errorf("streaming.generation_budget must be positive, got %d", s.GenerationBudget)
	}
	if s.MeshBudget <= 0 {
		return errors.Errorf("streaming.mesh_budget must be positive, got %d", s.MeshBudget)
	}
	if s.UnloadInterval <= 0 {
		return errors.Errorf("streaming.unload_interval must be positive, got %v", s.UnloadInterval)
	}
	if _, err := c.RemeshStrategy(); err != nil {
		return err
	}
	if c.Terrain.SparseThreshold < 0 || c.Terrain.SparseThreshold > 1 {
		return errors.Errorf("terrain.sparse_threshold must be within [0,1], got %v", c.Terrain.SparseThreshold)
	}
	if c.Terrain.DirtDepth < 0 {
		return errors.Errorf("terrain.dirt_depth must not be negative, got %d", c.Terrain.DirtDepth)
	}
	if err := validateLayer("base", c.Terrain.Base); err != nil {
		return err
	}
	if err := validateLayer("mountain", c.Terrain.Mountain); err != nil {
		return err
	}
	if err := validateLayer("detail", c.Terrain.Detail); err != nil {
		return err
	}
	if _, err := util.ParseLogLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if _, err := util.ParseLogCategories(c.Log.Categories); err != nil {
		return errors.Wrap(err, "log.categories")
	}
	return nil
}

func (c Config) RemeshStrategy() (voxel.RemeshStrategy, error) {
	switch strings.ToLower(c.Streaming.RemeshStrategy) {
	case "", voxel.RemeshDirty.String():
		return voxel.RemeshDirty, nil
	case voxel.RemeshFull.String():
		return voxel.RemeshFull, nil
	}
	return voxel.RemeshDirty, errors.Errorf("streaming.remesh_strategy: unknown strategy %q", c.Streaming.RemeshStrategy)
}

// ApplyLogging pushes the log section into the global logger.
func (c Config) ApplyLogging() error {
	level, err := util.ParseLogLevel(c.Log.Level)
	if err != nil {
		return errors.Wrap(err, "log.level")
	}
	cats, err := util.ParseLogCategories(c.Log.Categories)
	if err != nil {
		return errors.Wrap(err, "log.categories")
	}
	util.SetLogLevel(level)
	util.SetLogCategories(cats)
	return nil
}
