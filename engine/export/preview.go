package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/memmaker/voxelstream/engine/util"
	"github.com/memmaker/voxelstream/engine/voxel"
)

// HeightSource is satisfied by terrain.Generator.
type HeightSource interface {
	HeightAt(worldX, worldZ int32) int32
}

type heightBand struct {
	below int32
	color color.RGBA
}

var heightBands = []heightBand{
	{below: 8, color: colornames.Seagreen},
	{below: 40, color: colornames.Forestgreen},
	{below: 90, color: colornames.Olivedrab},
	{below: 160, color: colornames.Sienna},
	{below: 260, color: colornames.Slategray},
}

var peakColor = colornames.Snow

func bandColor(height int32) color.RGBA {
	for _, band := range heightBands {
		if height < band.below {
			return band.color
		}
	}
	return peakColor
}

// RenderPreview draws a top-down height map of the partition columns within radius of center,
// scaled up by scale pixels per block.
func RenderPreview(src HeightSource, center voxel.Int3, radius int32, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	side := int((2*radius + 1) * voxel.CHUNK_SIZE)
	minX := (center.X - radius) * voxel.CHUNK_SIZE
	minZ := (center.Z - radius) * voxel.CHUNK_SIZE

	small := image.NewRGBA(image.Rect(0, 0, side, side))
	for pz := 0; pz < side; pz++ {
		for px := 0; px < side; px++ {
			h := src.HeightAt(minX+int32(px), minZ+int32(pz))
			small.SetRGBA(px, pz, bandColor(h))
		}
	}
	if scale == 1 {
		return small
	}
	big := image.NewRGBA(image.Rect(0, 0, side*scale, side*scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big
}

func WritePreview(path string, src HeightSource, center voxel.Int3, radius int32, scale int) error {
	img := RenderPreview(src, center, radius, scale)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating preview %s", path)
	}
	err = png.Encode(f, img)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.Wrapf(err, "writing preview %s", path)
	}
	util.LogExportInfo(fmt.Sprintf("[Export] Wrote %dx%d preview to %s", img.Bounds().Dx(), img.Bounds().Dy(), path))
	return nil
}
