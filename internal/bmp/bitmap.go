// bmp package implements a 24-bit bitmap decoder and encoder
package bmp

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// MaxPixels bounds the number of pixels a decoded bitmap may hold.
const MaxPixels = 1 << 28

type Pixel struct {
	B, G, R byte
}

// Grid holds the pixels of an image in a single row-major buffer.
// Rows are kept in the order they are stored in the file.
type Grid struct {
	Width  int
	Height int
	Pix    []Pixel
}

type BitmapImage struct {
	Filename string
	BFHeader *BitmapFileHeader
	BIHeader *BitmapInfoHeader
	Gap      []byte // Bytes between the info header and the pixel array
	Stride   int
	Padding  int
	Pixels   *Grid
}

// Creates a zeroed grid of width x height pixels
func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Pix: make([]Pixel, width*height)}
}

// Returns the pixels of row y (as stored)
func (g *Grid) Row(y int) []Pixel {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

func (g *Grid) At(x, y int) Pixel {
	return g.Pix[y*g.Width+x]
}

func (g *Grid) Set(x, y int, p Pixel) {
	g.Pix[y*g.Width+x] = p
}

// RowPadding returns the number of zero bytes that follow each row of a
// 24-bit image of the given width, so that rows are 4-byte aligned.
func RowPadding(width int) int {
	return (4 - (width*BytesPerPixel)%4) % 4
}

// Creates and returns a bitmap image (24 bit uncompressed)
func CreateBitmap(width, height int) (*BitmapImage, error) {
	if width <= 0 {
		return nil, errors.New("width must be greater than 0")
	} else if height <= 0 {
		return nil, errors.New("height must be greater than 0")
	}

	padding := RowPadding(width)
	stride := width*BytesPerPixel + padding
	biSizeImage := uint32(stride * height)
	fileSize := FileHeaderSize + InfoHeaderSize + biSizeImage // Size of the whole bitmap file

	bfh := BitmapFileHeader{Type: Signature, OffBits: FileHeaderSize + InfoHeaderSize, Size: fileSize}
	bih := BitmapInfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(width),
		Height:      int32(height),
		Planes:      1,
		BitCount:    24,
		SizeImage:   biSizeImage,
		XPixelsPerM: 2835,
		YPixelsPerM: 2835,
	}

	return &BitmapImage{
		Stride:   stride,
		Padding:  padding,
		BFHeader: &bfh,
		BIHeader: &bih,
		Pixels:   NewGrid(width, height),
	}, nil
}

// Decode reads a 24-bit bitmap from r.
//
// The headers are kept exactly as read. Rows are stored in the grid in the
// order they appear in the stream; the padding after each row is skipped.
// The padding after the last row may be missing. Encode always writes it,
// so such a file does not round-trip byte for byte.
func Decode(r io.Reader) (*BitmapImage, error) {
	var buf [FileHeaderSize + InfoHeaderSize]byte

	// Read File Header
	if _, err := io.ReadFull(r, buf[:FileHeaderSize]); err != nil {
		return nil, &FormatError{Reason: "reading the file header failed", Err: err}
	}
	var bfHeader BitmapFileHeader
	if err := bfHeader.UnmarshalBinary(buf[:FileHeaderSize]); err != nil {
		return nil, err
	}

	// Read Info Header
	if _, err := io.ReadFull(r, buf[FileHeaderSize:]); err != nil {
		return nil, &FormatError{Reason: "reading the info header failed", Err: err}
	}
	var biHeader BitmapInfoHeader
	if err := biHeader.UnmarshalBinary(buf[FileHeaderSize:]); err != nil {
		return nil, err
	}

	if bfHeader.Type != Signature {
		return nil, &FormatError{Reason: "not a Windows BMP file"}
	}
	if biHeader.BitCount != 24 {
		return nil, &UnsupportedDepthError{BitCount: biHeader.BitCount}
	}
	if biHeader.Compression != 0 {
		return nil, &FormatError{Reason: "compressed bitmaps are not supported"}
	}
	if biHeader.Width < 0 {
		return nil, &FormatError{Reason: "negative width"}
	}

	width := int64(biHeader.Width)
	height := int64(biHeader.Height)
	if height < 0 {
		height = -height // Top-down bitmap; rows are still kept as stored
	}
	if width*height > MaxPixels {
		return nil, &AllocationError{Width: width, Height: height}
	}

	// Keep anything between the headers and the pixel array
	var gap []byte
	if off := int64(bfHeader.OffBits); off > FileHeaderSize+InfoHeaderSize {
		var gb bytes.Buffer
		if _, err := io.CopyN(&gb, r, off-(FileHeaderSize+InfoHeaderSize)); err != nil {
			return nil, &FormatError{Reason: "pixel data offset is beyond the end of the file", Err: err}
		}
		gap = gb.Bytes()
	}

	w, h := int(width), int(height)
	padding := RowPadding(w)
	stride := w*BytesPerPixel + padding
	grid := NewGrid(w, h)

	// Populate the grid row by row
	row := make([]byte, stride)
	for y := range h {
		n := w * BytesPerPixel
		if y < h-1 {
			n = stride // Padding is only skipped between rows
		}
		if _, err := io.ReadFull(r, row[:n]); err != nil {
			return nil, &FormatError{Reason: "reading the image data failed", Err: err}
		}
		pixels := grid.Row(y)
		for x := range pixels {
			pixels[x] = Pixel{B: row[3*x], G: row[3*x+1], R: row[3*x+2]}
		}
	}

	return &BitmapImage{
		BFHeader: &bfHeader,
		BIHeader: &biHeader,
		Gap:      gap,
		Stride:   stride,
		Padding:  padding,
		Pixels:   grid,
	}, nil
}

// Encode writes b to w: both headers verbatim, any gap bytes, then every row
// in stored order followed by zeroed padding. No size field is recomputed.
func Encode(w io.Writer, b *BitmapImage) error {
	if b.BFHeader == nil || b.BIHeader == nil || b.Pixels == nil {
		return errors.New("bmp: incomplete bitmap")
	}
	grid := b.Pixels
	height := int(b.BIHeader.Height)
	if height < 0 {
		height = -height
	}
	if grid.Width != int(b.BIHeader.Width) || grid.Height != height || len(grid.Pix) != grid.Width*grid.Height {
		return &FormatError{Reason: "pixel grid does not match the info header"}
	}

	bfh, err := b.BFHeader.MarshalBinary()
	if err != nil {
		return err
	}
	bih, err := b.BIHeader.MarshalBinary()
	if err != nil {
		return err
	}

	// Create a buffer (to reduce syscalls)
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(bfh); err != nil {
		return err
	}
	if _, err := bw.Write(bih); err != nil {
		return err
	}
	if _, err := bw.Write(b.Gap); err != nil {
		return err
	}

	// The tail of row stays zero and becomes the padding
	row := make([]byte, grid.Width*BytesPerPixel+RowPadding(grid.Width))
	for y := range grid.Height {
		for x, p := range grid.Row(y) {
			row[3*x], row[3*x+1], row[3*x+2] = p.B, p.G, p.R
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}

	return bw.Flush()
}
