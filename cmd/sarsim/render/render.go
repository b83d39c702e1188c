// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package render implements a command to rasterize one time slice of a
// sarsim run output into a PNG heatmap image.
package render

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/command"

	"github.com/sarsim/sarsim/heatmap"
)

var Command = &command.Command{
	Usage: `render
	[--time <minutes>] [--gray]
	-o|--output <file>
	<run-output-file>`,
	Short: "render a time slice as a PNG heatmap",
	Long: `
Command render reads a TSV file produced by the run command and rasterizes
one of its time slices into a color-blind-safe PNG heatmap.

The argument of the command is the name of the run output file.

Flag --time selects the time slice by its offset in minutes; by default
the last slice present in the file is used.

Flag --gray renders the heatmap in gray scale instead of the default
incandescent color scheme.

Flag --output, or -o, is required and sets the name of the PNG file to
write.
	`,
	SetFlags: setFlags,
	Run:      runCmd,
}

var timeOffset int
var useGray bool
var outFile string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&timeOffset, "time", -1, "")
	c.Flags().BoolVar(&useGray, "gray", false, "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
}

func runCmd(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting run output file")
	}
	if outFile == "" {
		return c.UsageError("expecting flag --output")
	}
	timeSet := timeOffset >= 0

	grid, gridSize, err := readSlice(args[0], timeOffset, timeSet)
	if err != nil {
		return err
	}

	img := &heatmap.Image{Grid: grid, GridSize: gridSize}
	if useGray {
		img.Gradient = heatmap.GrayScale{}
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

var headerFields = []string{
	"time_offset_minutes",
	"row",
	"col",
	"probability",
}

// readSlice reads a run output file and returns the row-major grid for
// the requested time offset (or the last offset present, if want is
// false), along with the grid's side length.
func readSlice(name string, want int, wantSet bool) ([]float64, int, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(h)] = i
	}
	for _, h := range headerFields {
		if _, ok := fields[h]; !ok {
			return nil, 0, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	type cell struct {
		row, col int
		v        float64
	}
	bySlice := make(map[int][]cell)
	maxSide := 0

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("on file %q: %v", name, err)
		}

		offset, err := strconv.Atoi(row[fields["time_offset_minutes"]])
		if err != nil {
			return nil, 0, fmt.Errorf("on file %q: field %q: %v", name, "time_offset_minutes", err)
		}
		r, err := strconv.Atoi(row[fields["row"]])
		if err != nil {
			return nil, 0, err
		}
		cc, err := strconv.Atoi(row[fields["col"]])
		if err != nil {
			return nil, 0, err
		}
		v, err := strconv.ParseFloat(row[fields["probability"]], 64)
		if err != nil {
			return nil, 0, err
		}

		bySlice[offset] = append(bySlice[offset], cell{row: r, col: cc, v: v})
		if r+1 > maxSide {
			maxSide = r + 1
		}
		if cc+1 > maxSide {
			maxSide = cc + 1
		}
	}

	if len(bySlice) == 0 {
		return nil, 0, fmt.Errorf("on file %q: no time slices found", name)
	}

	chosen := want
	if !wantSet {
		for offset := range bySlice {
			if offset > chosen {
				chosen = offset
			}
		}
	}
	cells, ok := bySlice[chosen]
	if !ok {
		return nil, 0, fmt.Errorf("on file %q: no slice at time offset %d", name, chosen)
	}

	grid := make([]float64, maxSide*maxSide)
	for _, c := range cells {
		grid[c.row*maxSide+c.col] = c.v
	}
	return grid, maxSide, nil
}
