package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestLogger() (*DefaultLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewWriterLogger(&out, &errOut, 0), &out, &errOut
}

func TestDefaultLoggerRouting(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.SetLevel(DebugLevel)

	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error(errors.New("boom"), "e")

	if got, want := out.String(), "[DEBUG] d\n[INFO] i\n"; got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}

	if got, want := errOut.String(), "[WARN] w\n[ERROR] e: boom\n"; got != want {
		t.Fatalf("stderr = %q, want %q", got, want)
	}
}

func TestDefaultLoggerLevelFilter(t *testing.T) {
	l, out, errOut := newTestLogger()
	l.SetLevel(WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	if out.Len() != 0 {
		t.Fatalf("stdout = %q, want empty", out.String())
	}

	if !strings.Contains(errOut.String(), "shown") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestDefaultLoggerFieldsSorted(t *testing.T) {
	l, out, _ := newTestLogger()

	child := l.WithFields(Fields{"stage": "pipeline", "a": 1})
	child.Info("column", Fields{"slot": 7, "a": 2})

	if got, want := out.String(), "[INFO] column a=2 slot=7 stage=pipeline\n"; got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestWithFieldsSharesLevel(t *testing.T) {
	l, out, _ := newTestLogger()
	child := l.WithFields(Fields{"k": "v"})

	l.SetLevel(ErrorLevel)
	child.Info("suppressed")

	if out.Len() != 0 {
		t.Fatalf("child ignored parent level: %q", out.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", DebugLevel, true},
		{"INFO", InfoLevel, true},
		{"", InfoLevel, true},
		{"warning", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"trace", InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}

	if Level(42).String() != "UNKNOWN" {
		t.Fatal("unknown level string")
	}
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NoOpLogger{}
	l.SetLevel(DebugLevel)
	l.WithFields(Fields{"x": 1}).Error(errors.New("ignored"), "nothing")
}
