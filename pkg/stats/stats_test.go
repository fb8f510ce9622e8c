package stats

import (
	"bytes"
	"strings"
	"testing"
)

func sampleMatrix() Matrix {
	m := New(2)
	m.Names = []string{"alpha", "beta"}
	m.Elo = []float64{1500.5, 1490}
	m.Cells[0][1] = Record{Wins: 3, Draws: 1, Losses: 2}
	m.Cells[1][0] = Record{Wins: 2, Draws: 1, Losses: 3}
	return m
}

func TestWriteReadRoundtrip(t *testing.T) {
	want := sampleMatrix()
	var buf bytes.Buffer
	if err := Write(&buf, want); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Names) != 2 || got.Names[0] != "alpha" || got.Names[1] != "beta" {
		t.Fatalf("names mismatch: %+v", got.Names)
	}
	if got.Elo[0] != 1500.5 || got.Elo[1] != 1490 {
		t.Fatalf("elo mismatch: %+v", got.Elo)
	}
	if got.Cells[0][1] != want.Cells[0][1] || got.Cells[1][0] != want.Cells[1][0] {
		t.Fatalf("cells mismatch: %+v", got.Cells)
	}
}

func TestReadRejectsShortRow(t *testing.T) {
	text := "1\nsolo 1000\n1 0\n"
	if _, err := Read(strings.NewReader(text)); err == nil {
		t.Fatalf("expected error for a row missing a cell field")
	}
}

func TestReadRejectsMissingNameLine(t *testing.T) {
	text := "1\n"
	if _, err := Read(strings.NewReader(text)); err == nil {
		t.Fatalf("expected error for a missing name/elo line")
	}
}

func TestNewProducesZeroedMatrix(t *testing.T) {
	m := New(3)
	for i := range m.Cells {
		for j := range m.Cells[i] {
			if m.Cells[i][j] != (Record{}) {
				t.Fatalf("expected zero record at %d,%d", i, j)
			}
		}
	}
}
