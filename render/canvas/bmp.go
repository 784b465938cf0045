package canvas

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpBitsPerPixel   = 32
	bmpCompressionRGB = 0
)

type bmpFileHeader struct {
	Magic     [2]byte
	FileSize  uint32
	Reserved1 uint16
	Reserved2 uint16
	Offset    uint32
}

type bmpInfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// WriteBMP serializes the visible window as an uncompressed 32-bit BMP.
// Rows are written bottom to top; each pixel is stored as R, G, B, A bytes.
func (c *Canvas) WriteBMP(w io.Writer) error {
	imageSize := uint32(c.width * c.height * 4)
	offset := uint32(bmpFileHeaderSize + bmpInfoHeaderSize)

	fh := bmpFileHeader{
		Magic:    [2]byte{'B', 'M'},
		FileSize: offset + imageSize,
		Offset:   offset,
	}
	ih := bmpInfoHeader{
		Size:        bmpInfoHeaderSize,
		Width:       int32(c.width),
		Height:      int32(c.height),
		Planes:      1,
		BitCount:    bmpBitsPerPixel,
		Compression: bmpCompressionRGB,
		ImageSize:   imageSize,
	}

	if err := binary.Write(w, binary.LittleEndian, fh); err != nil {
		return fmt.Errorf("canvas: write bmp file header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, ih); err != nil {
		return fmt.Errorf("canvas: write bmp info header: %w", err)
	}

	row := make([]byte, c.width*4)
	for y := c.height - 1; y >= 0; y-- {
		for x := range c.width {
			px := c.pixels[c.slot(x)*c.height+y]
			row[x*4+0] = px.R
			row[x*4+1] = px.G
			row[x*4+2] = px.B
			row[x*4+3] = px.A
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("canvas: write bmp row %d: %w", y, err)
		}
	}

	return nil
}

// SaveBMP writes the visible window to path.
func (c *Canvas) SaveBMP(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("canvas: close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := c.WriteBMP(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("canvas: flush %s: %w", path, err)
	}
	return nil
}
