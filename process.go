package genimage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand"
	"time"
)

// ErrEmptyTarget is returned for a target image without pixels.
var ErrEmptyTarget = errors.New("target image is empty")

// Frame is the state handed to the drawers after every generation.
type Frame struct {
	Generation int
	Specimens  int
	Elapsed    time.Duration
	Best       *Specimen
	Target     *image.NRGBA
}

// Drawer is implemented by the outputs fed with the best specimen of every
// generation.
type Drawer interface {
	Draw(f Frame) error
}

// DrawerFunc adapts an ordinary function to the Drawer interface.
type DrawerFunc func(f Frame) error

// Draw calls fn(f).
func (fn DrawerFunc) Draw(f Frame) error {
	return fn(f)
}

// Processor : type with processing options
type Processor struct {
	Specimens  int
	Margin     int
	MaxRetries int
	Workers    int
	// Seed of the random source. Zero uses the current time.
	Seed int64
	// Generations stops the run after that many generations. Zero runs until
	// the context is canceled.
	Generations int
	Grayscale   bool

	// Resume continues the search from a previously saved specimen.
	Resume           *Specimen
	ResumeGeneration int
}

// NewProcessor returns a Processor configured from cfg.
func NewProcessor(cfg *Config) *Processor {
	return &Processor{
		Specimens:   cfg.Evolution.Specimens,
		Margin:      cfg.Evolution.Margin,
		MaxRetries:  cfg.Evolution.MaxRetries,
		Workers:     cfg.Evolution.Workers,
		Seed:        cfg.Evolution.Seed,
		Generations: cfg.Evolution.Generations,
		Grayscale:   cfg.Evolution.Grayscale,
	}
}

// Target decodes the source image and converts it to the form used by the
// search.
func (p *Processor) Target(r io.Reader) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding target image: %w", err)
	}
	img := ImgToNRGBA(src)
	if p.Grayscale {
		img = Grayscale(img)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyTarget
	}
	return img, nil
}

// Engine returns a search engine for the target with the processor options.
func (p *Processor) Engine(target *image.NRGBA) *Engine {
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := NewMutator(rand.New(rand.NewSource(seed)))
	if p.Margin > 0 {
		m.Margin = p.Margin
	}
	if p.MaxRetries > 0 {
		m.MaxRetries = p.MaxRetries
	}

	e := NewEngine(target, m)
	if p.Specimens > 0 {
		e.Specimens = p.Specimens
	}
	e.Workers = p.Workers
	return e
}

// Process decodes the target image from r and runs the search, handing every
// generation's best specimen to the drawers. It returns the last population
// once the generation limit is reached or ctx is canceled.
func (p *Processor) Process(ctx context.Context, r io.Reader, drawers ...Drawer) (*Population, error) {
	target, err := p.Target(r)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, target, drawers...)
}

// Run is like Process for an already decoded target.
func (p *Processor) Run(ctx context.Context, target *image.NRGBA, drawers ...Drawer) (*Population, error) {
	if target.Bounds().Empty() {
		return nil, ErrEmptyTarget
	}
	engine := p.Engine(target)
	log := Logger()

	var (
		pop *Population
		err error
	)
	if p.Resume != nil {
		pop = engine.Resume(p.Resume, p.ResumeGeneration)
		log.Info("resumed search", "generation", pop.Generation, "score", pop.Best().Score)
	} else {
		if pop, err = engine.Seed(); err != nil {
			return nil, err
		}
		log.Info("seeded search", "specimens", pop.Len(), "score", pop.Best().Score)
	}

	start := time.Now()
	for {
		frame := Frame{
			Generation: pop.Generation,
			Specimens:  engine.Specimens,
			Elapsed:    time.Since(start),
			Best:       pop.Best(),
			Target:     target,
		}
		for _, d := range drawers {
			if err := d.Draw(frame); err != nil {
				return pop, fmt.Errorf("drawing generation %d: %w", pop.Generation, err)
			}
		}

		if p.Generations > 0 && pop.Generation-p.ResumeGeneration >= p.Generations {
			break
		}
		select {
		case <-ctx.Done():
			log.Info("search stopped", "generation", pop.Generation, "score", pop.Best().Score)
			return pop, nil
		default:
		}

		if pop, err = engine.Advance(pop); err != nil {
			return pop, err
		}
	}

	log.Info("search finished", "generation", pop.Generation, "score", pop.Best().Score)
	return pop, nil
}
