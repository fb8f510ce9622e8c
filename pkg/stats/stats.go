// Package stats reads and writes the tournament harness's win/draw/loss
// matrix file: a human-readable, line-oriented text format.
package stats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one player's cumulative result against another.
type Record struct {
	Wins, Draws, Losses int
}

// Matrix is a size x size win/draw/loss table between named,
// rated players. Cells[i][j] is player i's record against player j.
type Matrix struct {
	Names []string
	Elo   []float64
	Cells [][]Record
}

// New returns an empty size x size matrix with blank names and zero elo.
func New(size int) Matrix {
	m := Matrix{
		Names: make([]string, size),
		Elo:   make([]float64, size),
		Cells: make([][]Record, size),
	}
	for i := range m.Cells {
		m.Cells[i] = make([]Record, size)
	}
	return m
}

// Write renders m as: a line with the size, then one "name elo" line
// per player, then one line per row with two-space-separated
// "wins draws losses" cells.
func Write(w io.Writer, m Matrix) error {
	bw := bufio.NewWriter(w)
	size := len(m.Names)
	if _, err := fmt.Fprintln(bw, size); err != nil {
		return err
	}
	for i := 0; i < size; i++ {
		if _, err := fmt.Fprintf(bw, "%s %v\n", m.Names[i], m.Elo[i]); err != nil {
			return err
		}
	}
	for i := 0; i < size; i++ {
		cells := make([]string, size)
		for j := 0; j < size; j++ {
			c := m.Cells[i][j]
			cells[j] = fmt.Sprintf("%d %d %d", c.Wins, c.Draws, c.Losses)
		}
		if _, err := fmt.Fprintln(bw, strings.Join(cells, "  ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses the format written by Write.
func Read(r io.Reader) (Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !scanner.Scan() {
		return Matrix{}, fmt.Errorf("stats: missing size line")
	}
	size, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return Matrix{}, fmt.Errorf("stats: invalid size: %w", err)
	}
	if size < 0 {
		return Matrix{}, fmt.Errorf("stats: negative size %d", size)
	}

	m := New(size)
	for i := 0; i < size; i++ {
		if !scanner.Scan() {
			return Matrix{}, fmt.Errorf("stats: missing name/elo line %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			return Matrix{}, fmt.Errorf("stats: malformed name/elo line %q", scanner.Text())
		}
		elo, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Matrix{}, fmt.Errorf("stats: invalid elo on line %d: %w", i, err)
		}
		m.Names[i] = fields[0]
		m.Elo[i] = elo
	}

	for i := 0; i < size; i++ {
		if !scanner.Scan() {
			return Matrix{}, fmt.Errorf("stats: missing row %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3*size {
			return Matrix{}, fmt.Errorf("stats: row %d has %d fields, want %d", i, len(fields), 3*size)
		}
		for j := 0; j < size; j++ {
			wins, err := strconv.Atoi(fields[3*j])
			if err != nil {
				return Matrix{}, fmt.Errorf("stats: row %d cell %d wins: %w", i, j, err)
			}
			draws, err := strconv.Atoi(fields[3*j+1])
			if err != nil {
				return Matrix{}, fmt.Errorf("stats: row %d cell %d draws: %w", i, j, err)
			}
			losses, err := strconv.Atoi(fields[3*j+2])
			if err != nil {
				return Matrix{}, fmt.Errorf("stats: row %d cell %d losses: %w", i, j, err)
			}
			m.Cells[i][j] = Record{Wins: wins, Draws: draws, Losses: losses}
		}
	}

	if err := scanner.Err(); err != nil {
		return Matrix{}, err
	}
	return m, nil
}
