// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
)

// Crops a region in the bitmap image (0,0  is at the top-left of the image)
//
// The result gets fresh headers describing the new size; the resolution and
// the row orientation of b are kept, any gap bytes are dropped.
func Crop(b *bmp.BitmapImage, x, y, width, height int) (*bmp.BitmapImage, error) {
	src := b.Pixels

	// Validate bounds
	if x < 0 || y < 0 {
		return nil, errors.New("invalid bounds: negative origin")
	} else if width+x > src.Width {
		return nil, errors.New("invalid bounds: width out of bounds")
	} else if height+y > src.Height {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	cropped, err := bmp.CreateBitmap(width, height)
	if err != nil {
		return nil, err
	}
	cropped.Filename = b.Filename
	cropped.BIHeader.XPixelsPerM = b.BIHeader.XPixelsPerM
	cropped.BIHeader.YPixelsPerM = b.BIHeader.YPixelsPerM

	// Bottom-up bitmaps store the top row last
	bottomUp := b.BIHeader.Height > 0
	if !bottomUp {
		cropped.BIHeader.Height = -cropped.BIHeader.Height
	}

	for row := range height { // Rows, in stored order
		srcRow := y + row
		if bottomUp {
			srcRow = src.Height - y - height + row
		}
		copy(cropped.Pixels.Row(row), src.Row(srcRow)[x:x+width])
	}

	return cropped, nil
}
