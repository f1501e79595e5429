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

package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/evolisa"
	"seehuhn.de/go/evolisa/raster"
	"seehuhn.de/go/evolisa/render"
)

func TestParseArgs(t *testing.T) {
	*seed = 17
	defer func() { *seed = 0 }()

	source, cfg, err := parseArgs([]string{"in.png", "50", "3", "8", "100"})
	if err != nil {
		t.Fatal(err)
	}
	want := evolisa.Config{
		Shapes:      50,
		MinSides:    3,
		MaxSides:    8,
		Resolution:  100,
		Mode:        render.ModeAnalytic,
		Rule:        raster.EvenOdd,
		ReportEvery: evolisa.DefaultReportEvery,
		Seed:        17,
	}
	if source != "in.png" || cfg != want {
		t.Errorf("got %q %+v, want %+v", source, cfg, want)
	}
}

func TestParseArgsErrors(t *testing.T) {
	cases := [][]string{
		{"in.png", "50", "3", "8"},
		{"in.png", "fifty", "3", "8", "100"},
		{"in.png", "50", "2", "8", "100"},
		{"in.png", "50", "8", "3", "100"},
		{"in.png", "0", "3", "8", "100"},
	}
	for _, args := range cases {
		if _, _, err := parseArgs(args); err == nil {
			t.Errorf("%q: no error", args)
		}
	}

	_, _, err := parseArgs([]string{"in.png", "50", "8", "3", "100"})
	if !errors.Is(err, evolisa.ErrConfig) {
		t.Errorf("got %v, want error wrapping ErrConfig", err)
	}
}

func TestParseArgsFillRule(t *testing.T) {
	defer func() { *mode, *rule = render.ModeAnalytic.String(), "" }()
	args := []string{"in.png", "50", "3", "8", "100"}

	cases := []struct {
		mode, rule string
		want       raster.FillRule
	}{
		{"analytic", "", raster.EvenOdd},
		{"analytic", "nonzero", raster.NonZero},
		{"vector", "", raster.NonZero},
		{"vector", "nonzero", raster.NonZero},
	}
	for _, tc := range cases {
		*mode, *rule = tc.mode, tc.rule
		_, cfg, err := parseArgs(args)
		if err != nil {
			t.Errorf("-mode %s -rule %q: %v", tc.mode, tc.rule, err)
			continue
		}
		if cfg.Rule != tc.want {
			t.Errorf("-mode %s -rule %q: got %s, want %s", tc.mode, tc.rule, cfg.Rule, tc.want)
		}
	}

	// x/image/vector cannot fill with the even-odd rule
	*mode, *rule = "vector", "evenodd"
	if _, _, err := parseArgs(args); !errors.Is(err, evolisa.ErrConfig) {
		t.Errorf("-mode vector -rule evenodd: got %v, want error wrapping ErrConfig", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.png")
	src := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	for y := range 20 {
		for x := range 30 {
			src.Set(x, y, color.NRGBA{uint8(8 * x), 100, uint8(12 * y), 255})
		}
	}
	fd, err := os.Create(source)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(fd, src); err != nil {
		t.Fatal(err)
	}
	fd.Close()

	*output = filepath.Join(dir, "out.png")
	*svgOut = filepath.Join(dir, "out.svgz")
	defer func() { *output, *svgOut = "evolisa.png", "" }()

	cfg := evolisa.Config{
		Shapes: 5, MinSides: 3, MaxSides: 5, Resolution: 15,
		Rule: raster.EvenOdd, MaxIterations: 50, Seed: 3,
	}
	out := &bytes.Buffer{}
	if err := run(context.Background(), out, source, cfg); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	wantFirst := "Generating 30x20 image with 15x10 internal resolution"
	if lines[0] != wantFirst {
		t.Errorf("first line %q, want %q", lines[0], wantFirst)
	}
	if len(lines) < 3 || lines[1] != evolisa.ProgressHeader {
		t.Errorf("missing progress header: %q", lines)
	}
	if last := lines[len(lines)-1]; last != "Generation finished at 50 iterations." {
		t.Errorf("last line %q", last)
	}

	img, err := readImage(*output)
	if err != nil {
		t.Fatal(err)
	}
	if size := img.Bounds().Size(); size != (image.Point{X: 30, Y: 20}) {
		t.Errorf("output size %v, want 30x20", size)
	}
	if _, err := os.Stat(*svgOut); err != nil {
		t.Error(err)
	}

	if err := run(context.Background(), io.Discard, filepath.Join(dir, "missing.png"), cfg); err == nil {
		t.Error("missing source accepted")
	}
}
