// seehuhn.de/go/evolisa - approximate images by semi-transparent polygons
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package evolisa

import (
	"errors"
	"fmt"

	"seehuhn.de/go/evolisa/raster"
	"seehuhn.de/go/evolisa/render"
)

// DefaultReportEvery is the number of iterations between progress
// reports, if Config.ReportEvery is zero.
const DefaultReportEvery = 10000

// ErrConfig is wrapped by all errors returned by Config.Validate.
var ErrConfig = errors.New("invalid configuration")

// Config holds the parameters of a search.
type Config struct {
	// Shapes is the number of polygons.
	Shapes int

	// MinSides and MaxSides bound the number of vertices per polygon.
	MinSides, MaxSides int

	// Resolution is the length of the longer side of the image used
	// during the search.  NewFromImage reduces the source image to this
	// size; New expects a target which is already reduced.
	Resolution int

	// Mode selects the rasterizer used during the search.
	Mode render.Mode

	// Rule is the fill rule for self-intersecting polygons.
	// render.ModeVector requires raster.NonZero.
	Rule raster.FillRule

	// ReportEvery is the number of iterations between progress reports.
	// Zero means DefaultReportEvery.
	ReportEvery int

	// MaxIterations stops the search after the given number of
	// iterations.  Zero means no limit.
	MaxIterations int

	// Seed initialises the random number generator.
	Seed uint64
}

// Validate checks that the configuration can be used for a search.
func (c *Config) Validate() error {
	switch {
	case c.Shapes < 1:
		return fmt.Errorf("%w: need at least one polygon, got %d", ErrConfig, c.Shapes)
	case c.MinSides < 3:
		return fmt.Errorf("%w: polygons need at least 3 sides, got %d", ErrConfig, c.MinSides)
	case c.MaxSides < c.MinSides:
		return fmt.Errorf("%w: maximum sides %d below minimum %d", ErrConfig, c.MaxSides, c.MinSides)
	case c.Resolution < 1:
		return fmt.Errorf("%w: internal resolution must be positive, got %d", ErrConfig, c.Resolution)
	case c.ReportEvery < 0:
		return fmt.Errorf("%w: negative report interval %d", ErrConfig, c.ReportEvery)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: negative iteration limit %d", ErrConfig, c.MaxIterations)
	case c.Mode != render.ModeAnalytic && c.Mode != render.ModeVector:
		return fmt.Errorf("%w: unknown rasterizer %s", ErrConfig, c.Mode)
	case c.Rule != raster.NonZero && c.Rule != raster.EvenOdd:
		return fmt.Errorf("%w: unknown fill rule %s", ErrConfig, c.Rule)
	case c.Mode == render.ModeVector && c.Rule != raster.NonZero:
		return fmt.Errorf("%w: rasterizer %s supports only the nonzero fill rule", ErrConfig, c.Mode)
	}
	return nil
}

func (c *Config) renderOptions() render.Options {
	return render.Options{Mode: c.Mode, Rule: c.Rule}
}
