package testutil

import (
	"math"
	"testing"
)

func TestSine32(t *testing.T) {
	s := Sine32(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(float64(s[0])) > 1e-7 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestNoise32Reproducible(t *testing.T) {
	a := Noise32(42, 1.0, 64)
	b := Noise32(42, 1.0, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}

	c := Noise32(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRamp32(t *testing.T) {
	r := Ramp32(1<<20, 4)
	for i, v := range r {
		if want := float32(1<<20 + i); v != want {
			t.Fatalf("r[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestFlat(t *testing.T) {
	f := Flat(-42, 5)
	for i, v := range f {
		if v != -42 {
			t.Fatalf("f[%d] = %v, want -42", i, v)
		}
	}
}
