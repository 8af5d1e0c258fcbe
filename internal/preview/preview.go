// Package preview prints bitmaps and their metadata to a terminal.
package preview

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
	"github.com/anas-shakeel/bmpedit/internal/utils"
)

// DefaultColumns is used when the output is not a terminal.
const DefaultColumns = 80

// Columns returns the width of the terminal behind fd, or DefaultColumns.
func Columns(fd int) int {
	if !term.IsTerminal(fd) {
		return DefaultColumns
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultColumns
	}
	return width
}

// WriterColumns returns the terminal width behind w when w is a terminal,
// and DefaultColumns for anything else.
func WriterColumns(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultColumns
	}
	return Columns(int(f.Fd()))
}

// Print the bitmap as colored blocks, two columns per block. Images wider
// than columns are shrunk by averaging square tiles of pixels.
func PrintBitmap(w io.Writer, b *bmp.BitmapImage, columns int) error {
	g := b.Pixels
	if g.Width == 0 || g.Height == 0 {
		return nil
	}

	step := 1
	if blocks := max(columns/2, 1); g.Width > blocks {
		step = (g.Width + blocks - 1) / blocks
	}

	// Bottom-up bitmaps (positive height) store the last row first
	bottomUp := b.BIHeader.Height > 0

	var sb strings.Builder
	for top := 0; top < g.Height; top += step {
		for left := 0; left < g.Width; left += step {
			var rs, gs, bs []int
			for y := top; y < min(top+step, g.Height); y++ {
				row := y
				if bottomUp {
					row = g.Height - 1 - y
				}
				for x := left; x < min(left+step, g.Width); x++ {
					p := g.At(x, row)
					rs = append(rs, int(p.R))
					gs = append(gs, int(p.G))
					bs = append(bs, int(p.B))
				}
			}
			sb.WriteString(utils.ColoredBlock("  ", utils.Average(rs...), utils.Average(gs...), utils.Average(bs...)))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Print the Metadata of the bitmap (in human-readable format)
func PrintMetadata(w io.Writer, b *bmp.BitmapImage) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Filename: \t%v\n", b.Filename)
	p.Fprintf(w, "Filesize: \t%d bytes\n", b.BFHeader.Size)
	p.Fprintf(w, "Width: \t\t%d px\n", b.BIHeader.Width)
	p.Fprintf(w, "Height: \t%d px\n", b.BIHeader.Height)
	p.Fprintf(w, "BitCount: \t%dbits\n", b.BIHeader.BitCount)
	p.Fprintf(w, "PixelOffset: \t%d bytes\n", b.BFHeader.OffBits)
	p.Fprintf(w, "PixelCount: \t%d pixels\n", len(b.Pixels.Pix))
	p.Fprintf(w, "Stride: \t%d bytes\n", b.Stride)
	p.Fprintf(w, "Padding: \t%d bytes\n", b.Padding)
}
