package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
	"github.com/anas-shakeel/bmpedit/internal/utils"
)

func TestPrintBitmapFlipsBottomUp(t *testing.T) {
	b, err := bmp.CreateBitmap(1, 2)
	require.NoError(t, err)
	b.Pixels.Set(0, 0, bmp.Pixel{R: 255}) // bottom row
	b.Pixels.Set(0, 1, bmp.Pixel{B: 255}) // top row

	var out bytes.Buffer
	require.NoError(t, PrintBitmap(&out, b, 80))

	want := utils.ColoredBlock("  ", 0, 0, 255) + "\n" + utils.ColoredBlock("  ", 255, 0, 0) + "\n"
	assert.Equal(t, want, out.String())

	// Top-down bitmaps print in stored order
	b.BIHeader.Height = -2
	out.Reset()
	require.NoError(t, PrintBitmap(&out, b, 80))
	want = utils.ColoredBlock("  ", 255, 0, 0) + "\n" + utils.ColoredBlock("  ", 0, 0, 255) + "\n"
	assert.Equal(t, want, out.String())
}

func TestPrintBitmapDownscales(t *testing.T) {
	b, err := bmp.CreateBitmap(10, 4)
	require.NoError(t, err)
	for i := range b.Pixels.Pix {
		b.Pixels.Pix[i] = bmp.Pixel{B: 10, G: 20, R: 30}
	}

	var out bytes.Buffer
	require.NoError(t, PrintBitmap(&out, b, 4)) // two blocks, 5x5 tiles

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, strings.Repeat(utils.ColoredBlock("  ", 30, 20, 10), 2), lines[0])
}

func TestPrintMetadata(t *testing.T) {
	b, err := bmp.CreateBitmap(1000, 2)
	require.NoError(t, err)
	b.Filename = "wide.bmp"

	var out bytes.Buffer
	PrintMetadata(&out, b)
	s := out.String()

	for _, want := range []string{
		"Filename: \twide.bmp\n",
		"Filesize: \t6,054 bytes\n",
		"Width: \t\t1,000 px\n",
		"Height: \t2 px\n",
		"BitCount: \t24bits\n",
		"PixelOffset: \t54 bytes\n",
		"PixelCount: \t2,000 pixels\n",
		"Stride: \t3,000 bytes\n",
		"Padding: \t0 bytes\n",
	} {
		assert.Contains(t, s, want)
	}
}

func TestColumnsWithoutTerminal(t *testing.T) {
	assert.Equal(t, DefaultColumns, Columns(-1))

	var buf bytes.Buffer
	assert.Equal(t, DefaultColumns, WriterColumns(&buf))

	f, err := os.Create(filepath.Join(t.TempDir(), "preview.txt"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, DefaultColumns, WriterColumns(f))
}
