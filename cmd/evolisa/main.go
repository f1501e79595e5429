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

// Command evolisa approximates an image by semi-transparent polygons.
//
// Usage:
//
//	evolisa [flags] source shapes minSides maxSides internalRes
//
// The search runs until the iteration limit given by -n is reached or
// until the program is interrupted.  In both cases the final image is
// written to the output file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"seehuhn.de/go/evolisa"
	"seehuhn.de/go/evolisa/raster"
	"seehuhn.de/go/evolisa/render"
	"seehuhn.de/go/evolisa/svg"
)

var (
	output  = flag.String("o", "evolisa.png", "write the final image to `file`")
	svgOut  = flag.String("svg", "", "also write the polygons to `file` (.svgz and .zst are compressed)")
	maxIter = flag.Int("n", 0, "stop after `n` iterations (0 runs until interrupted)")
	seed    = flag.Uint64("seed", 0, "random seed (0 picks a random seed)")
	every   = flag.Int("every", evolisa.DefaultReportEvery, "report progress every `n` iterations")
	mode    = flag.String("mode", render.ModeAnalytic.String(), "rasterizer, analytic or vector")
	rule    = flag.String("rule", "", "fill rule, evenodd or nonzero (default evenodd, nonzero for -mode vector)")
	verbose = flag.Bool("v", false, "log every accepted improvement to stderr")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [flags] source shapes minSides maxSides internalRes\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	source, cfg, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "evolisa:", err)
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		evolisa.SetLogger(slog.New(h))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, os.Stdout, source, cfg)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "evolisa:", err)
		os.Exit(1)
	}
}

// parseArgs builds the search configuration from the positional arguments
// and the flags.
func parseArgs(args []string) (string, evolisa.Config, error) {
	var cfg evolisa.Config
	if len(args) != 5 {
		return "", cfg, fmt.Errorf("expected 5 arguments, got %d", len(args))
	}

	names := []string{"shapes", "minSides", "maxSides", "internalRes"}
	vals := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			return "", cfg, fmt.Errorf("%s: %q is not an integer", name, args[i+1])
		}
		vals[i] = v
	}

	m, err := render.ParseMode(*mode)
	if err != nil {
		return "", cfg, err
	}
	r := raster.EvenOdd
	if m == render.ModeVector {
		r = raster.NonZero
	}
	if *rule != "" {
		r, err = raster.ParseFillRule(*rule)
		if err != nil {
			return "", cfg, err
		}
	}

	s := *seed
	if s == 0 {
		s = rand.Uint64()
	}

	cfg = evolisa.Config{
		Shapes:        vals[0],
		MinSides:      vals[1],
		MaxSides:      vals[2],
		Resolution:    vals[3],
		Mode:          m,
		Rule:          r,
		ReportEvery:   *every,
		MaxIterations: *maxIter,
		Seed:          s,
	}
	if err := cfg.Validate(); err != nil {
		return "", cfg, err
	}
	return args[0], cfg, nil
}

// run performs the search and writes the progress table to out.
func run(ctx context.Context, out io.Writer, source string, cfg evolisa.Config) error {
	src, err := readImage(source)
	if err != nil {
		return err
	}

	s, err := evolisa.NewFromImage(src, cfg)
	if err != nil {
		return err
	}
	evolisa.Logger().Info("source loaded",
		slog.String("file", source),
		slog.Any("size", s.Resizer().Original()),
		slog.Any("internal", s.Resizer().Internal()),
		slog.Uint64("seed", cfg.Seed))

	size, internal := s.Resizer().Original(), s.Resizer().Internal()
	fmt.Fprintf(out, "Generating %dx%d image with %dx%d internal resolution\n",
		size.X, size.Y, internal.X, internal.Y)
	fmt.Fprintln(out, evolisa.ProgressHeader)
	s.Run(ctx, func(p evolisa.Progress) {
		fmt.Fprintln(out, p)
	})
	fmt.Fprintf(out, "Generation finished at %d iterations.\n", s.Iterations())

	if err := writePNG(*output, s.Final()); err != nil {
		return err
	}
	if *svgOut != "" {
		if err := svg.WriteFile(*svgOut, s.Set(), size.X, size.Y, cfg.Rule); err != nil {
			return err
		}
	}
	return nil
}

func readImage(name string) (image.Image, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

func writePNG(name string, img image.Image) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	err = png.Encode(fd, img)
	err = errors.Join(err, fd.Close())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
