package testutil

import (
	"os"
	"strings"
	"testing"
)

func TestTelemetryCSV(t *testing.T) {
	doc := TelemetryCSV(Sample{Time: 0.5, Sx: 1, Sy: 2, Sz: 3, Vx: 4, Vy: 5, Vz: 6, Ax: 7, Ay: 8, Az: -9.81})
	want := "Time,Sx,Sy,Sz,Vx,Vy,Vz,Ax,Ay,Az\n0.5,1,2,3,4,5,6,7,8,-9.81\n"
	if doc != want {
		t.Errorf("TelemetryCSV() = %q, want %q", doc, want)
	}
}

func TestBallisticSamples(t *testing.T) {
	samples := BallisticSamples(3)
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0].Sz != 0 || samples[1].Sz <= 0 {
		t.Errorf("unexpected altitude profile: %+v", samples)
	}
}

func TestDropColumn(t *testing.T) {
	doc := DropColumn("A,B,C\n1,2,3\n", "B")
	if doc != "A,C\n1,3\n" {
		t.Errorf("DropColumn() = %q", doc)
	}
}

func TestDropColumnUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown column")
		}
	}()
	DropColumn("A\n1\n", "Z")
}

func TestWriteTempCSV(t *testing.T) {
	path := WriteTempCSV(t, "Sx\n1\n")
	data, err := os.ReadFile(path)
	AssertNoError(t, err)
	if !strings.HasPrefix(string(data), "Sx") {
		t.Errorf("unexpected fixture content %q", data)
	}
}
