// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarsim/sarsim/terrain"
)

// FileElevationCache wraps an ElevationProvider with a disk-backed cache
// keyed by a rounded bounding box, so repeated local runs over the same
// area skip the upstream fetch. It stands in for real DEM tile
// acquisition, which is out of scope here, while still giving the CLI
// something concrete to run against.
type FileElevationCache struct {
	Dir      string
	Upstream ElevationProvider
}

// NewFileElevationCache returns a cache rooted at dir, wrapping upstream.
func NewFileElevationCache(dir string, upstream ElevationProvider) *FileElevationCache {
	return &FileElevationCache{Dir: dir, Upstream: upstream}
}

type cachedWindow struct {
	Elevation   []float64      `json:"elevation"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Bounds      terrain.Bounds `json:"bounds"`
	ResolutionM float64        `json:"resolution_m"`
}

// GetElevationWindow serves bounds from the on-disk cache when present,
// otherwise fetches from Upstream and writes the result back.
func (c *FileElevationCache) GetElevationWindow(ctx context.Context, bounds terrain.Bounds, resolutionM float64) (ElevationWindow, error) {
	path := c.cachePath(bounds, resolutionM)

	if data, err := os.ReadFile(path); err == nil {
		var w cachedWindow
		if jerr := json.Unmarshal(data, &w); jerr == nil {
			return ElevationWindow{
				Elevation:   w.Elevation,
				Rows:        w.Rows,
				Cols:        w.Cols,
				Bounds:      w.Bounds,
				ResolutionM: w.ResolutionM,
			}, nil
		}
	}

	win, err := c.Upstream.GetElevationWindow(ctx, bounds, resolutionM)
	if err != nil {
		return ElevationWindow{}, err
	}

	if err := os.MkdirAll(c.Dir, 0o755); err == nil {
		w := cachedWindow{
			Elevation:   win.Elevation,
			Rows:        win.Rows,
			Cols:        win.Cols,
			Bounds:      win.Bounds,
			ResolutionM: win.ResolutionM,
		}
		if data, merr := json.Marshal(w); merr == nil {
			_ = os.WriteFile(path, data, 0o644)
		}
	}

	return win, nil
}

// cachePath derives a stable cache filename from a rounded bounding box,
// so small floating-point jitter in repeated requests for "the same" area
// still hits the cache.
func (c *FileElevationCache) cachePath(bounds terrain.Bounds, resolutionM float64) string {
	name := fmt.Sprintf("elev_%.4f_%.4f_%.4f_%.4f_%.1f.json",
		bounds.West, bounds.South, bounds.East, bounds.North, resolutionM)
	return filepath.Join(c.Dir, name)
}
