package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Layer is one fractal noise field summed into the elevation.
type Layer struct {
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Amplitude   float64 `yaml:"amplitude"`
}

// octave offsets keep the octaves of one layer from sampling the same lattice region
const octaveShift = 1013.0

// fractal2D sums octaves of normalized noise and renormalizes the result into [0,1).
func fractal2D(noise opensimplex.Noise, x, z float64, l Layer) float64 {
	amplitude := 1.0
	frequency := l.Frequency
	sum := 0.0
	norm := 0.0
	for i := 0; i < l.Octaves; i++ {
		shift := float64(i) * octaveShift
		sum += noise.Eval2(x*frequency+shift, z*frequency-shift) * amplitude
		norm += amplitude
		amplitude *= l.Persistence
		frequency *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
