package canvas

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteBMPLayout(t *testing.T) {
	c := mustNew(t, 2, 3)

	// Column n, row y gets R=10n+y so every pixel is distinct.
	for n := range 3 {
		col := make([]color.RGBA, 3)
		for y := range col {
			col[y] = color.RGBA{R: uint8(10*n + y), G: 100, B: 200, A: 255}
		}
		if err := c.AddColumn(col); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := c.WriteBMP(&buf); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	const pixelBytes = 2 * 3 * 4
	if len(data) != 54+pixelBytes {
		t.Fatalf("len = %d, want %d", len(data), 54+pixelBytes)
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"file size", le.Uint32(data[2:]), 54 + pixelBytes},
		{"reserved", le.Uint32(data[6:]), 0},
		{"pixel offset", le.Uint32(data[10:]), 54},
		{"info size", le.Uint32(data[14:]), 40},
		{"width", le.Uint32(data[18:]), 2},
		{"height", le.Uint32(data[22:]), 3},
		{"planes", uint32(le.Uint16(data[26:])), 1},
		{"bpp", uint32(le.Uint16(data[28:])), 32},
		{"compression", le.Uint32(data[30:]), 0},
		{"image size", le.Uint32(data[34:]), pixelBytes},
		{"x ppm", le.Uint32(data[38:]), 0},
		{"colors used", le.Uint32(data[46:]), 0},
	}

	if string(data[:2]) != "BM" {
		t.Fatalf("magic = %q", data[:2])
	}
	for _, ck := range checks {
		if ck.got != ck.want {
			t.Fatalf("%s = %d, want %d", ck.name, ck.got, ck.want)
		}
	}

	// Visible columns are 1 and 2; first stored row is the bottom row (y=2).
	pix := data[54:]
	want := []byte{
		12, 100, 200, 255, 22, 100, 200, 255,
		11, 100, 200, 255, 21, 100, 200, 255,
		10, 100, 200, 255, 20, 100, 200, 255,
	}
	if !bytes.Equal(pix, want) {
		t.Fatalf("pixel data = %v, want %v", pix, want)
	}
}

func TestSaveBMP(t *testing.T) {
	c := mustNew(t, 4, 4)
	if err := c.AddColumn(tagColumn(3, 4)); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "spectrogram.bmp")
	if err := c.SaveBMP(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := c.WriteBMP(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Fatal("SaveBMP output differs from WriteBMP")
	}
}

func TestSaveBMPBadPath(t *testing.T) {
	c := mustNew(t, 1, 1)
	if err := c.SaveBMP(filepath.Join(t.TempDir(), "missing", "x.bmp")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
