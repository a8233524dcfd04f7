package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/esimov/lowpoly"
	"github.com/esimov/lowpoly/journal"
	"github.com/esimov/lowpoly/report"
	"github.com/esimov/lowpoly/utils"
)

const helperBanner = `Usage: lowpoly [options] <image path or URL>

Approximates an image with a low polygon mesh evolved over generations,
writing output-<n>.<ext> after every generation.

Options:
`

var (
	// Flags
	destination = flag.String("out", ".", "Output directory")
	extension   = flag.String("ext", ".png", "Output format: .png, .jpg, .bmp or .tiff")
	configFile  = flag.String("config", "", "YAML configuration file")
	segments    = flag.Int("segments", 35, "Grid points per axis of the first generation")
	generations = flag.Int("generations", 20, "Number of generations")
	mutations   = flag.Int("mutations", 10, "Mutation rounds per generation")
	rate        = flag.Float64("rate", 0.6, "Probability of a point to mutate in a round")
	deviation   = flag.Float64("deviation", 10, "Standard deviation of a mutation, in pixels")
	seeding     = flag.String("seeding", "grid", "Seeding of the first generation: grid or edges")
	workers     = flag.Int("workers", 1, "Number of concurrent face evaluations")
	seed        = flag.Int64("seed", 0, "Random seed, zero for a time based seed")
	wireframe   = flag.Int("wireframe", 0, "Wireframe mode: 0 without, 1 with, 2 wireframe only")
	lineWidth   = flag.Float64("width", 1, "Wireframe line width")
	noise       = flag.Int("noise", 0, "Noise factor")
	quality     = flag.Int("quality", 90, "JPEG quality")
	geoJSON     = flag.Bool("geojson", false, "Also write every generation as GeoJSON")
	journalPath = flag.String("journal", "", "SQLite journal recording the run")
	resumeID    = flag.String("resume", "", "Resume the run with this id from the journal")
	plotPath    = flag.String("plot", "", "Write a fitness chart of the run to this file")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helperBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	source := flag.Arg(0)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	lowpoly.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	src, err := openSource(source)
	if err != nil {
		log.Fatalf("Unable to open source: %v", err)
	}
	width, height := src.Dimensions()

	proc := &lowpoly.Processor{
		OutDir:  *destination,
		Ext:     normalizeExt(*extension),
		Sink:    lowpoly.FileSink{Quality: *quality},
		GeoJSON: *geoJSON,
	}

	var (
		jr    *journal.Journal
		runID string
	)
	if *journalPath != "" {
		if jr, err = journal.Open(*journalPath); err != nil {
			log.Fatal(err)
		}
		defer jr.Close()

		if *resumeID != "" {
			run, err := jr.Run(*resumeID)
			if err != nil {
				log.Fatal(err)
			}
			if *configFile != "" {
				log.Printf("Resuming run %s: ignoring %s, the journaled configuration is used", run.ID, *configFile)
			}
			if cfg, err = resumeConfig(flag.CommandLine, run, width, height); err != nil {
				log.Fatalf("Unable to resume run %s: %v", run.ID, err)
			}
			if proc.Resume, err = jr.Resume(run.ID); err != nil {
				log.Fatal(err)
			}
			runID = run.ID
		} else {
			run, err := jr.Start(source, width, height, cfg)
			if err != nil {
				log.Fatal(err)
			}
			runID = run.ID
		}
		fmt.Fprintf(os.Stderr, "Run id: %s\n", utils.Colorize(utils.SuccessColor, runID))
	} else if *resumeID != "" {
		log.Fatal("Resuming a run requires the -journal option")
	}
	proc.Config = cfg

	history := &report.History{}
	spinner := utils.NewSpinner()
	start := time.Now()

	proc.OnGeneration = func(r lowpoly.Report) {
		spinner.Stop()
		if r.SaveErr != nil {
			fmt.Fprintf(os.Stderr, "%s generation %d: %v\n", utils.Colorize(utils.ErrorColor, "✗"), r.Index, r.SaveErr)
		} else {
			fmt.Fprintf(os.Stderr, "Generation %d, generated in %s, written in %s, average fitness %.4g: %s %s\n",
				r.Index, utils.FormatTime(r.Generated), utils.FormatTime(r.Written),
				r.SelectedFitness, filepath.Base(r.Output), utils.Colorize(utils.SuccessColor, "✓"))
		}
		history.Add(r)
		if jr != nil {
			if err := jr.Record(runID, r); err != nil {
				slog.Warn("unable to record generation", "generation", r.Index, "error", err)
			}
		}
		if r.Index < cfg.Generations {
			spinner.Start(fmt.Sprintf("Evolving generation %d...", r.Index+1))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spinner.Start("Generating the first mesh...")
	err = proc.Process(ctx, src)
	spinner.Stop()
	if err != nil {
		log.Fatalf("Error evolving the mesh: %v", err)
	}

	if *plotPath != "" && history.Len() > 0 {
		if err := report.Plot(history, filepath.Base(source), *plotPath); err != nil {
			log.Printf("Unable to plot fitness: %v", err)
		}
	}
	fmt.Fprintf(os.Stderr, "\nDone in %s\n", utils.Colorize(utils.SuccessColor, utils.FormatTime(time.Since(start))))
}

// loadConfig reads the optional configuration file and applies the flags
// set explicitly on the command line on top of it.
func loadConfig() (lowpoly.Config, error) {
	cfg := lowpoly.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = lowpoly.LoadConfig(*configFile); err != nil {
			return cfg, err
		}
	}
	overlayFlags(flag.CommandLine, &cfg)
	return cfg, cfg.Validate()
}

// resumeConfig restores the configuration a journaled run was started with,
// the flags set explicitly on fs applied on top. The source image must have
// the dimensions the run was started on.
func resumeConfig(fs *flag.FlagSet, run *journal.Run, width, height int) (lowpoly.Config, error) {
	if run.Width != width || run.Height != height {
		return run.Config, fmt.Errorf("run started on a %dx%d image, source is %dx%d",
			run.Width, run.Height, width, height)
	}
	cfg := run.Config
	overlayFlags(fs, &cfg)
	return cfg, cfg.Validate()
}

// overlayFlags copies the value of every configuration flag set on fs into cfg.
func overlayFlags(fs *flag.FlagSet, cfg *lowpoly.Config) {
	fs.Visit(func(f *flag.Flag) {
		getter, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		v := getter.Get()
		switch f.Name {
		case "segments":
			cfg.Segments = v.(int)
		case "generations":
			cfg.Generations = v.(int)
		case "mutations":
			cfg.MutationsPerGeneration = v.(int)
		case "rate":
			cfg.MutationRate = v.(float64)
		case "deviation":
			cfg.MutationDeviation = v.(float64)
		case "seeding":
			cfg.Seeding = v.(string)
		case "workers":
			cfg.Workers = v.(int)
		case "seed":
			cfg.Seed = v.(int64)
		case "wireframe":
			cfg.Wireframe = v.(int)
		case "width":
			cfg.LineWidth = v.(float64)
		case "noise":
			cfg.Noise = v.(int)
		}
	})
}

// openSource decodes the input image, downloading it first when given a URL.
func openSource(source string) (*lowpoly.Picture, error) {
	if !utils.IsURL(source) {
		return lowpoly.Open(source)
	}
	f, err := utils.DownloadImage(source)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	return lowpoly.Decode(f)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
