// BMP-specific structs and types
package bmp

import "encoding/binary"

const (
	FileHeaderSize = 14 // Size of the BitmapFileHeader on disk
	InfoHeaderSize = 40 // Size of the BitmapInfoHeader on disk
	BytesPerPixel  = 3  // Only 24-bit true-color is supported
)

// Signature is the file type every bitmap must start with ("BM", 0x4d42).
var Signature = [2]byte{'B', 'M'}

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader

type BitmapFileHeader struct {
	Type      [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size      uint32  // The size, in bytes, of the bitmap file.
	Reserved1 uint16  // Reserved; must be zero.
	Reserved2 uint16  // Reserved; must be zero.
	OffBits   uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].

type BitmapInfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// MarshalBinary lays the file header out as its 14 on-disk bytes (little-endian).
func (h *BitmapFileHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, FileHeaderSize)
	b[0], b[1] = h.Type[0], h.Type[1]
	binary.LittleEndian.PutUint32(b[2:], h.Size)
	binary.LittleEndian.PutUint16(b[6:], h.Reserved1)
	binary.LittleEndian.PutUint16(b[8:], h.Reserved2)
	binary.LittleEndian.PutUint32(b[10:], h.OffBits)
	return b, nil
}

// UnmarshalBinary reads the file header from its 14 on-disk bytes.
func (h *BitmapFileHeader) UnmarshalBinary(b []byte) error {
	if len(b) < FileHeaderSize {
		return &FormatError{Reason: "file header is truncated"}
	}
	h.Type = [2]byte{b[0], b[1]}
	h.Size = binary.LittleEndian.Uint32(b[2:])
	h.Reserved1 = binary.LittleEndian.Uint16(b[6:])
	h.Reserved2 = binary.LittleEndian.Uint16(b[8:])
	h.OffBits = binary.LittleEndian.Uint32(b[10:])
	return nil
}

// MarshalBinary lays the info header out as its 40 on-disk bytes (little-endian).
func (h *BitmapInfoHeader) MarshalBinary() ([]byte, error) {
	b := make([]byte, InfoHeaderSize)
	binary.LittleEndian.PutUint32(b[0:], h.Size)
	binary.LittleEndian.PutUint32(b[4:], uint32(h.Width))
	binary.LittleEndian.PutUint32(b[8:], uint32(h.Height))
	binary.LittleEndian.PutUint16(b[12:], h.Planes)
	binary.LittleEndian.PutUint16(b[14:], h.BitCount)
	binary.LittleEndian.PutUint32(b[16:], h.Compression)
	binary.LittleEndian.PutUint32(b[20:], h.SizeImage)
	binary.LittleEndian.PutUint32(b[24:], uint32(h.XPixelsPerM))
	binary.LittleEndian.PutUint32(b[28:], uint32(h.YPixelsPerM))
	binary.LittleEndian.PutUint32(b[32:], h.ColorsUsed)
	binary.LittleEndian.PutUint32(b[36:], h.ColorsImportant)
	return b, nil
}

// UnmarshalBinary reads the info header from its 40 on-disk bytes.
func (h *BitmapInfoHeader) UnmarshalBinary(b []byte) error {
	if len(b) < InfoHeaderSize {
		return &FormatError{Reason: "info header is truncated"}
	}
	h.Size = binary.LittleEndian.Uint32(b[0:])
	h.Width = int32(binary.LittleEndian.Uint32(b[4:]))
	h.Height = int32(binary.LittleEndian.Uint32(b[8:]))
	h.Planes = binary.LittleEndian.Uint16(b[12:])
	h.BitCount = binary.LittleEndian.Uint16(b[14:])
	h.Compression = binary.LittleEndian.Uint32(b[16:])
	h.SizeImage = binary.LittleEndian.Uint32(b[20:])
	h.XPixelsPerM = int32(binary.LittleEndian.Uint32(b[24:]))
	h.YPixelsPerM = int32(binary.LittleEndian.Uint32(b[28:]))
	h.ColorsUsed = binary.LittleEndian.Uint32(b[32:])
	h.ColorsImportant = binary.LittleEndian.Uint32(b[36:])
	return nil
}
