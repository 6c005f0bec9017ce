package voxel

import (
	"math"
	"testing"
)

func TestDistanceSquared(t *testing.T) {
	cases := []struct {
		a, b Int3
		want int64
	}{
		{Int3{}, Int3{X: 1, Y: 2, Z: 2}, 9},
		{Int3{X: -3}, Int3{X: 4}, 49},
		{Int3{X: math.MaxInt32}, Int3{X: -1000}, (int64(math.MaxInt32) + 1000) * (int64(math.MaxInt32) + 1000)},
		{Int3{Y: math.MinInt32}, Int3{Y: 1}, (int64(math.MaxInt32) + 2) * (int64(math.MaxInt32) + 2)},
	}
	for _, c := range cases {
		if got := DistanceSquared(c.a, c.b); got != c.want {
			t.Errorf("DistanceSquared(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got := DistanceSquared(c.b, c.a); got != c.want {
			t.Errorf("DistanceSquared is not symmetric for %v, %v", c.a, c.b)
		}
	}
}
