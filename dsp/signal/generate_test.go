package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectrogram/dsp/core"
)

func zeroCrossings(x []float32) int {
	n := 0
	for i := 1; i < len(x); i++ {
		if (x[i-1] < 0) != (x[i] < 0) {
			n++
		}
	}
	return n
}

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineFrequency(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 0.5, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if n := zeroCrossings(s); n < 1995 || n > 2003 {
		t.Fatalf("zero crossings = %d, want ~2000", n)
	}
	for i, v := range s {
		if math.Abs(float64(v)) > 0.5+1e-6 {
			t.Fatalf("s[%d] = %v exceeds amplitude", i, v)
		}
	}
}

func TestChirpSweepsUp(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	c, err := g.Chirp(100, 1000, 1, 48000)
	if err != nil {
		t.Fatal(err)
	}

	// Crossings in a window equal twice the integrated frequency.
	first := zeroCrossings(c[:4800])
	last := zeroCrossings(c[48000-4800:])
	if first < 27 || first > 31 {
		t.Fatalf("first 100 ms crossings = %d, want ~29", first)
	}
	if last < 187 || last > 193 {
		t.Fatalf("last 100 ms crossings = %d, want ~191", last)
	}
}

func TestChirpRejectsOutOfRange(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))
	if _, err := g.Chirp(100, 5000, 1, 64); !errors.Is(err, core.ErrArgument) {
		t.Fatalf("err = %v, want ErrArgument", err)
	}
	if _, err := g.Chirp(100, 200, 1, 0); !errors.Is(err, core.ErrArgument) {
		t.Fatalf("err = %v, want ErrArgument", err)
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestWhiteNoiseErrors(t *testing.T) {
	g := NewGenerator()
	if _, err := g.WhiteNoise(-1, 8); !errors.Is(err, core.ErrArgument) {
		t.Fatalf("negative amplitude err = %v", err)
	}
	if _, err := g.WhiteNoise(1, 0); !errors.Is(err, core.ErrArgument) {
		t.Fatalf("zero samples err = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float32{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}

	silent, err := Normalize([]float32{0, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if silent[0] != 0 || silent[1] != 0 {
		t.Fatalf("silent input normalized to %v", silent)
	}

	if _, err := Normalize(nil, 1); !errors.Is(err, core.ErrArgument) {
		t.Fatalf("empty input err = %v", err)
	}
}

func TestConfig(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(22050), core.WithBlockSize(128))
	cfg := g.Config()
	if cfg.SampleRate != 22050 || cfg.BlockSize != 128 {
		t.Fatalf("Config() = %+v", cfg)
	}
}
