package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"

	"github.com/genimage/genimage"
	"github.com/genimage/genimage/utils"
)

const helperBanner = `Approximate an image with semi-transparent triangles.

Usage:
	genimage -in FILENAME [options]

Options:
`

var (
	// Flags
	source          = flag.String("in", "", "Source image (file or URL)")
	destination     = flag.String("out", "", "Destination SVG file")
	snapshot        = flag.String("png", "", "PNG snapshot of the target and the best specimen")
	snapshotEvery   = flag.Int("every", 0, "Save a PNG snapshot every N generations")
	checkpoint      = flag.String("checkpoint", "", "Checkpoint file, resumed from when it exists")
	checkpointEvery = flag.Int("checkpoint-every", 0, "Save a checkpoint every N generations")
	configFile      = flag.String("conf", "", "INI configuration file")
	specimens       = flag.Int("specimens", genimage.DefaultSpecimens, "Children per generation")
	margin          = flag.Int("margin", genimage.DefaultMargin, "Distance a vertex may lie outside of the image")
	workers         = flag.Int("workers", 1, "Goroutines rasterizing a generation (0 = all CPUs)")
	generations     = flag.Int("gens", 0, "Number of generations (0 = until interrupted)")
	seed            = flag.Int64("seed", 0, "Random seed (0 = time based)")
	grayscale       = flag.Bool("gray", false, "Convert the source to grayscale")
	verbose         = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helperBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	cfg := genimage.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = genimage.LoadConfig(*configFile); err != nil {
			log.Fatalf("Unable to load configuration: %v", err)
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	if *verbose {
		genimage.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	input, cleanup, err := openSource(*source)
	if err != nil {
		log.Fatalf("Unable to open source: %v", err)
	}
	proc := genimage.NewProcessor(cfg)
	target, err := proc.Target(input)
	cleanup()
	if err != nil {
		log.Fatalf("Unable to load file: %s: %v", *source, err)
	}

	if path := cfg.Output.Checkpoint; path != "" {
		if _, err := os.Stat(path); err == nil {
			best, gen, err := genimage.LoadCheckpoint(path, target)
			switch {
			case errors.Is(err, genimage.ErrCheckpointMismatch):
				log.Printf("WARN: %v. Starting a new search.", err)
			case err != nil:
				log.Fatalf("Unable to load checkpoint: %v", err)
			default:
				proc.Resume, proc.ResumeGeneration = best, gen
			}
		}
	}

	var drawers []genimage.Drawer

	var svgFile *os.File
	var svg *genimage.SVG
	if cfg.Output.SVG != "" {
		if svgFile, err = os.Create(cfg.Output.SVG); err != nil {
			log.Fatalf("Unable to create output file: %v", err)
		}
		svg = genimage.NewSVG(svgFile)
		svg.Title = filepath.Base(*source)
		drawers = append(drawers, svg)
	}
	var snap *genimage.Image
	if cfg.Output.PNG != "" {
		snap = &genimage.Image{Path: cfg.Output.PNG, Every: cfg.Output.SnapshotEvery}
		drawers = append(drawers, snap)
	}
	if cfg.Output.Checkpoint != "" {
		drawers = append(drawers, &genimage.Checkpoint{
			Path:  cfg.Output.Checkpoint,
			Every: cfg.Output.CheckpointEvery,
		})
	}

	var spinner *utils.Spinner
	if !*verbose {
		spinner = utils.NewSpinner(os.Stderr, isTerminal)
		drawers = append(drawers, genimage.DrawerFunc(func(f genimage.Frame) error {
			spinner.Update(fmt.Sprintf("Generation %d, triangles %d, difference %d, elapsed %s",
				f.Generation, len(f.Best.Triangles), f.Best.Score, utils.FormatTime(f.Elapsed)))
			return nil
		}))
		spinner.Start("Seeding population...")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	pop, runErr := proc.Run(ctx, target, drawers...)
	if spinner != nil {
		spinner.Stop()
	}

	if svg != nil {
		if err := svg.Close(); err != nil {
			log.Printf("WARN: unable to finish %s: %v", cfg.Output.SVG, err)
		}
		svgFile.Close()
	}
	if runErr != nil && pop == nil {
		log.Fatalf("Error generating image: %v", runErr)
	}

	best := pop.Best()
	if snap != nil {
		final := genimage.Frame{
			Generation: pop.Generation,
			Specimens:  cfg.Evolution.Specimens,
			Elapsed:    time.Since(start),
			Best:       best,
			Target:     target,
		}
		snap.Every = 0
		if err := snap.Draw(final); err != nil {
			log.Printf("WARN: %v", err)
		}
	}
	if cfg.Output.Checkpoint != "" {
		if err := genimage.SaveCheckpoint(cfg.Output.Checkpoint, best, pop.Generation); err != nil {
			log.Printf("WARN: Failed to save final checkpoint: %v", err)
		}
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, utils.Decorate(fmt.Sprintf("Error generating image: %v", runErr), utils.ErrorColor, isTerminal))
		os.Exit(1)
	}

	fmt.Printf("Generated in: %s\n", utils.Decorate(utils.FormatTime(time.Since(start)), utils.SuccessColor, isTerminal))
	fmt.Printf("Generations: %s, triangles: %s, difference: %s\n",
		utils.Decorate(fmt.Sprint(pop.Generation), utils.StatusColor, isTerminal),
		utils.Decorate(fmt.Sprint(len(best.Triangles)), utils.StatusColor, isTerminal),
		utils.Decorate(fmt.Sprint(best.Score), utils.StatusColor, isTerminal),
	)
	if cfg.Output.SVG != "" {
		fmt.Printf("Saved as: %s %s\n", filepath.Base(cfg.Output.SVG), utils.Decorate("✓", utils.SuccessColor, isTerminal))
	}
}

// applyFlags copies the flags given on the command line over the configuration.
func applyFlags(cfg *genimage.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.Output.SVG = *destination
		case "png":
			cfg.Output.PNG = *snapshot
		case "every":
			cfg.Output.SnapshotEvery = *snapshotEvery
		case "checkpoint":
			cfg.Output.Checkpoint = *checkpoint
		case "checkpoint-every":
			cfg.Output.CheckpointEvery = *checkpointEvery
		case "specimens":
			cfg.Evolution.Specimens = *specimens
		case "margin":
			cfg.Evolution.Margin = *margin
		case "workers":
			cfg.Evolution.Workers = *workers
		case "gens":
			cfg.Evolution.Generations = *generations
		case "seed":
			cfg.Evolution.Seed = *seed
		case "gray":
			cfg.Evolution.Grayscale = *grayscale
		}
	})
}

// openSource opens a local file or downloads a remote image.
// The returned function releases the source.
func openSource(src string) (io.Reader, func(), error) {
	if utils.IsValidURL(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {
			f.Close()
			os.Remove(f.Name())
		}, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
