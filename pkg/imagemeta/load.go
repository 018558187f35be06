package imagemeta

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// Load decodes the image at path and rotates it upright according to its
// EXIF orientation, so its bounds match Info.Width and Info.Height.
func Load(path string) (image.Image, Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := Decode(file)
	if err != nil {
		return nil, Info{}, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, Info{}, fmt.Errorf("seeking file: %w", err)
	}
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, Info{}, fmt.Errorf("decoding image: %w", err)
	}
	return Orient(img, info.Orientation), info, nil
}

// Orient returns img transformed so that EXIF orientation o displays
// upright. Orientation 1 and unknown values return img unchanged.
func Orient(img image.Image, o int) image.Image {
	switch o {
	case 2: // mirrored horizontally
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4: // mirrored vertically
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6: // rotated 90 CW when stored
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8: // rotated 90 CCW when stored
		return imaging.Rotate90(img)
	}
	return img
}
