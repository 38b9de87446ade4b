package terrain

import (
	"fmt"
	"image"
	"image/color"
)

// HeightField is an immutable row-major grid of 16-bit height samples.
type HeightField struct {
	rows    int
	cols    int
	samples []uint16
}

// NewHeightField wraps samples (row-major, rows*cols long) in a HeightField.
// The slice is copied.
func NewHeightField(rows, cols int, samples []uint16) (*HeightField, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyField, rows, cols)
	}
	if len(samples) != rows*cols {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(samples), rows*cols)
	}

	data := make([]uint16, len(samples))
	copy(data, samples)
	return &HeightField{rows: rows, cols: cols, samples: data}, nil
}

// FromRows builds a HeightField from a slice of rows.
// Every row must have the same length.
func FromRows(grid [][]uint16) (*HeightField, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyField
	}

	cols := len(grid[0])
	samples := make([]uint16, 0, len(grid)*cols)
	for i, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrNotRectangular, i, len(row), cols)
		}
		samples = append(samples, row...)
	}

	return &HeightField{rows: len(grid), cols: cols, samples: samples}, nil
}

// FromImage samples every pixel of img as a 16-bit gray value.
// Row i is image line i, or line H-1-i when flipY is set.
func FromImage(img image.Image, flipY bool) (*HeightField, error) {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrEmptyField, cols, rows)
	}

	samples := make([]uint16, rows*cols)
	gray16, isGray16 := img.(*image.Gray16)

	for i := range rows {
		y := b.Min.Y + i
		if flipY {
			y = b.Max.Y - 1 - i
		}
		for j := range cols {
			x := b.Min.X + j
			if isGray16 {
				samples[i*cols+j] = gray16.Gray16At(x, y).Y
				continue
			}
			samples[i*cols+j] = color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
		}
	}

	return &HeightField{rows: rows, cols: cols, samples: samples}, nil
}

// Rows returns the number of grid rows.
func (f *HeightField) Rows() int { return f.rows }

// Cols returns the number of grid columns.
func (f *HeightField) Cols() int { return f.cols }

// At returns the sample at row i, column j.
func (f *HeightField) At(i, j int) uint16 {
	if i < 0 || i >= f.rows || j < 0 || j >= f.cols {
		panic(fmt.Sprintf("terrain: sample (%d, %d) out of range %dx%d", i, j, f.rows, f.cols))
	}
	return f.samples[i*f.cols+j]
}

// MinMax returns the smallest and largest sample.
func (f *HeightField) MinMax() (lo, hi uint16) {
	lo = f.samples[0]
	hi = f.samples[0]
	for _, s := range f.samples[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return lo, hi
}
