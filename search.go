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
	"context"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"

	"seehuhn.de/go/evolisa/polygon"
	"seehuhn.de/go/evolisa/render"
	"seehuhn.de/go/evolisa/resize"
)

// Progress is a snapshot of the state of a search.
type Progress struct {
	Iteration    int
	ErrorPercent float64
	ErrorAbs     int64
	MeanSides    float64
}

// ProgressHeader is a table header matching the columns of
// Progress.String.
var ProgressHeader = fmt.Sprintf("%12s  %12s  %12s  %12s",
	"iteration", "error %", "error abs", "avg vert")

func (p Progress) String() string {
	return fmt.Sprintf("%12d  %11.4f%%  %12d  %12.2f",
		p.Iteration, p.ErrorPercent, p.ErrorAbs, p.MeanSides)
}

// Search holds the state of a hill climbing run: the accepted polygon
// set, its rendering and its error.
//
// A Search is not safe for concurrent use.
type Search struct {
	cfg     Config
	opts    render.Options
	target  *render.Image
	resizer *resize.Resizer

	mut      *polygon.Mutator
	renderer *render.Renderer

	set     *polygon.Set
	image   *render.Image
	scratch *render.Image
	score   int64
	iter    int
}

// New starts a search for the given target image, which is used at its
// own resolution.  The initial polygon set is random.
func New(target *render.Image, cfg Config) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if target.Width < 1 || target.Height < 1 {
		return nil, fmt.Errorf("%w: empty target image", ErrConfig)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	s := &Search{
		cfg:      cfg,
		opts:     cfg.renderOptions(),
		target:   target,
		mut:      polygon.NewMutator(rng, target.Width, target.Height),
		renderer: render.NewRenderer(),
		image:    render.NewImage(target.Width, target.Height),
		scratch:  render.NewImage(target.Width, target.Height),
	}
	set := polygon.New(rng, cfg.Shapes, cfg.MinSides, cfg.MaxSides, target.Width, target.Height)
	if err := s.Reset(set); err != nil {
		return nil, err
	}
	return s, nil
}

// NewFromImage reduces src so that its longer side has cfg.Resolution
// pixels and starts a search for the reduced image.  Final renders the
// result at the size of src.
func NewFromImage(src image.Image, cfg Config) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size := src.Bounds().Size()
	if size.X < 1 || size.Y < 1 {
		return nil, fmt.Errorf("%w: empty source image", ErrConfig)
	}

	rs := resize.New(size, cfg.Resolution)
	s, err := New(rs.Reduce(src), cfg)
	if err != nil {
		return nil, err
	}
	s.resizer = rs
	return s, nil
}

// Reset replaces the accepted state by set and sets the iteration
// counter to zero.  The set must match the size of the target image.
func (s *Search) Reset(set *polygon.Set) error {
	if set.Width != s.target.Width || set.Height != s.target.Height {
		return fmt.Errorf("polygon set is %dx%d, target is %dx%d",
			set.Width, set.Height, s.target.Width, s.target.Height)
	}
	if err := set.Validate(); err != nil {
		return err
	}
	s.set = set
	s.renderer.Draw(s.image, set, s.opts)
	s.score = render.ErrorAbs(s.target, s.image)
	s.iter = 0
	return nil
}

// Step performs one iteration: a random mutation of the accepted set is
// rendered and scored, and replaces the accepted state unless its error
// is larger.  Step reports whether the candidate was accepted.
func (s *Search) Step() bool {
	cand, op, idx := s.mut.Mutate(s.set)
	s.renderer.Draw(s.scratch, cand, s.opts)
	score := render.ErrorAbs(s.target, s.scratch)
	s.iter++

	if score > s.score {
		return false
	}

	// Equal scores are accepted as well, so that the search can drift
	// across plateaus.
	if l := Logger(); score < s.score && l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("improved",
			slog.Int("iteration", s.iter),
			slog.String("op", op.String()),
			slog.Int("polygon", idx),
			slog.Int64("error", score))
	}
	s.set = cand
	s.score = score
	s.image, s.scratch = s.scratch, s.image
	return true
}

// Run iterates until ctx is cancelled or, if Config.MaxIterations is set,
// until the iteration limit is reached.  Cancellation is checked between
// iterations, so the accepted state is always complete when Run returns.
//
// If report is not nil, it is called before every iteration whose
// number is a multiple of Config.ReportEvery, starting with iteration 0.
func (s *Search) Run(ctx context.Context, report func(Progress)) {
	every := s.cfg.ReportEvery
	if every == 0 {
		every = DefaultReportEvery
	}

	log := Logger()
	log.Info("search started",
		slog.Int("width", s.target.Width),
		slog.Int("height", s.target.Height),
		slog.Int("shapes", s.set.Len()),
		slog.String("mode", s.opts.Mode.String()))

	for s.cfg.MaxIterations == 0 || s.iter < s.cfg.MaxIterations {
		if ctx.Err() != nil {
			break
		}
		if report != nil && s.iter%every == 0 {
			report(s.Progress())
		}
		s.Step()
	}

	log.Info("search finished",
		slog.Int("iterations", s.iter),
		slog.Float64("error_percent", render.ErrorPercent(s.score, s.target)))
}

// Progress returns the current state of the search.
func (s *Search) Progress() Progress {
	return Progress{
		Iteration:    s.iter,
		ErrorPercent: render.ErrorPercent(s.score, s.target),
		ErrorAbs:     s.score,
		MeanSides:    s.set.MeanSides(),
	}
}

// Set returns the accepted polygon set.  It must not be modified.
func (s *Search) Set() *polygon.Set {
	return s.set
}

// Score returns the error of the accepted set.
func (s *Search) Score() int64 {
	return s.score
}

// Iterations returns the number of iterations performed so far.
func (s *Search) Iterations() int {
	return s.iter
}

// Target returns the image the search is approximating.
func (s *Search) Target() *render.Image {
	return s.target
}

// Image returns the rendering of the accepted set at the search
// resolution.  It must not be modified and is only valid until the next
// call to Step.
func (s *Search) Image() *render.Image {
	return s.image
}

// Final renders the accepted set with antialiasing.  For searches created
// by NewFromImage the result has the size of the source image, otherwise
// the size of the target.
func (s *Search) Final() *render.Image {
	if s.resizer != nil {
		return s.resizer.Restore(s.set, s.opts)
	}
	opts := s.opts
	opts.Antialias = true
	return render.Draw(s.target.Width, s.target.Height, s.set, opts)
}

// Resizer returns the resolution adapter used by NewFromImage, or nil.
func (s *Search) Resizer() *resize.Resizer {
	return s.resizer
}
