/*
Package lowpoly approximates raster images with a low polygon mesh evolved by a
simple genetic optimization.

A mesh is the Delaunay triangulation of a set of points. Every triangle is
painted with the dominant color of the pixels it covers and scored by how
uniform those pixels are. Each generation mutates the points a few times,
credits every point with the fitness of the triangles it belongs to, merges the
beneficial moves and keeps the best points for the next generation.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ lowpoly --help

Example to evolve an image and write one output per generation:

	package main

	import (
		"context"
		"log"

		"github.com/esimov/lowpoly"
	)

	func main() {
		src, err := lowpoly.Open("sample.jpg")
		if err != nil {
			log.Fatal(err)
		}
		p := &lowpoly.Processor{
			Config: lowpoly.DefaultConfig(),
			OutDir: "output",
			Ext:    ".png",
		}
		if err := p.Process(context.Background(), src); err != nil {
			log.Fatalf("Error on triangulation process: %v", err)
		}
	}

A single generation can also be driven by hand:

	cfg := lowpoly.DefaultConfig()
	w, h := src.Dimensions()
	gen, err := lowpoly.NewGeneration(lowpoly.GridPoints(w, h, cfg.Segments), src, &cfg)
	if err != nil {
		return err
	}
	if err := gen.Mutate(cfg.MutationsPerGeneration); err != nil {
		return err
	}
	pop, err := gen.BestPopulation()
	if err != nil {
		return err
	}
	raster := gen.Render(pop)
*/
package lowpoly
