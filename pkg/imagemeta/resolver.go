// Package imagemeta resolves the intrinsic display size of images.
package imagemeta

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
)

// ErrNoDimensions is returned when an image reports a zero size.
var ErrNoDimensions = errors.New("imagemeta: image has no dimensions")

// Info describes an image as it will be displayed.
type Info struct {
	Width       int
	Height      int
	Format      string
	Orientation int // EXIF orientation, 1 when absent
}

// Size returns the display size.
func (i Info) Size() geom.Size {
	return geom.Size{Width: float64(i.Width), Height: float64(i.Height)}
}

// FileResolver reads image headers from the filesystem.
type FileResolver struct{}

// NewFileResolver creates a new FileResolver.
func NewFileResolver() *FileResolver {
	return &FileResolver{}
}

// Resolve returns the display size of the image at path.
func (r *FileResolver) Resolve(path string) (geom.Size, error) {
	info, err := r.Info(path)
	if err != nil {
		return geom.Size{}, err
	}
	return info.Size(), nil
}

// Info reads the image header without decoding pixels.
func (r *FileResolver) Info(path string) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads dimensions and orientation from an image stream. Width and
// height are swapped for EXIF orientations that rotate by 90 degrees.
func Decode(rs io.ReadSeeker) (Info, error) {
	config, format, err := image.DecodeConfig(rs)
	if err != nil {
		return Info{}, fmt.Errorf("decoding image config: %w", err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return Info{}, ErrNoDimensions
	}

	info := Info{
		Width:       config.Width,
		Height:      config.Height,
		Format:      format,
		Orientation: 1,
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seeking file for exif: %w", err)
	}
	if o, ok := orientation(rs); ok {
		info.Orientation = o
	}
	if info.Orientation >= 5 && info.Orientation <= 8 {
		info.Width, info.Height = info.Height, info.Width
	}
	return info, nil
}

func orientation(r io.Reader) (int, bool) {
	x, err := exif.Decode(r)
	if err != nil {
		// Most PNGs and GIFs have no EXIF block.
		return 0, false
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0, false
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 0, false
	}
	return o, true
}

// StaticResolver returns the same size for every reference.
type StaticResolver geom.Size

// Resolve implements zoom.Resolver.
func (s StaticResolver) Resolve(string) (geom.Size, error) {
	size := geom.Size(s)
	if size.IsZero() {
		return geom.Size{}, ErrNoDimensions
	}
	return size, nil
}
