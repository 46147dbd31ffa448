package genimage

import (
	"fmt"
	"image"
	"runtime"
	"sync"
)

// DefaultSpecimens is the number of children produced every generation.
const DefaultSpecimens = 300

// Population is one generation of specimens derived from the same parent.
type Population struct {
	Specimens  []*Specimen
	Generation int

	best int
}

// newPopulation wraps the specimens and locates the one with the lowest score.
// On equal scores the specimen with the lower index wins.
func newPopulation(specimens []*Specimen, generation int) *Population {
	p := &Population{
		Specimens:  specimens,
		Generation: generation,
	}
	for i, s := range specimens {
		if s.Score < specimens[p.best].Score {
			p.best = i
		}
	}
	return p
}

// Best returns the specimen with the lowest score, or nil for an empty population.
func (p *Population) Best() *Specimen {
	if p == nil || len(p.Specimens) == 0 {
		return nil
	}
	return p.Specimens[p.best]
}

// Len returns the number of specimens in the population.
func (p *Population) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Specimens)
}

// Engine runs the evolutionary search against a fixed target image.
//
// Every generation keeps the best specimen unchanged and adds Specimens
// clones of it, each with one more random triangle. The score of the best
// specimen therefore never increases.
type Engine struct {
	Target    *image.NRGBA
	Specimens int
	// Workers is the number of goroutines rasterizing the children.
	// Zero or negative means GOMAXPROCS.
	Workers int
	Mutator *Mutator
}

// NewEngine returns an engine with the default population size running on a
// single goroutine.
func NewEngine(target *image.NRGBA, m *Mutator) *Engine {
	return &Engine{
		Target:    target,
		Specimens: DefaultSpecimens,
		Workers:   1,
		Mutator:   m,
	}
}

// Seed creates the first generation out of the blank root specimen.
func (e *Engine) Seed() (*Population, error) {
	root := NewSpecimen(e.Target)
	children, err := e.spawn(root)
	if err != nil {
		return nil, fmt.Errorf("seeding population: %w", err)
	}
	Logger().Debug("population seeded",
		"specimens", len(children),
		"root_score", root.Score,
	)
	return newPopulation(children, 0), nil
}

// Resume creates a generation holding a single specimen, typically one
// restored from a checkpoint. Advance continues the search from it.
func (e *Engine) Resume(s *Specimen, generation int) *Population {
	return newPopulation([]*Specimen{s}, generation)
}

// Advance produces the next generation: the best specimen of p followed by
// its mutated clones. An empty population is returned unchanged.
func (e *Engine) Advance(p *Population) (*Population, error) {
	best := p.Best()
	if best == nil {
		return p, nil
	}

	children, err := e.spawn(best)
	if err != nil {
		return p, fmt.Errorf("advancing generation %d: %w", p.Generation+1, err)
	}

	specimens := make([]*Specimen, 0, len(children)+1)
	specimens = append(specimens, best)
	specimens = append(specimens, children...)

	next := newPopulation(specimens, p.Generation+1)
	Logger().Debug("generation advanced",
		"generation", next.Generation,
		"score", next.Best().Score,
		"triangles", len(next.Best().Triangles),
	)
	return next, nil
}

// spawn returns Specimens clones of the parent with one random triangle added
// to each. The triangles are sampled up front in child order so that the
// outcome doesn't depend on the number of workers.
func (e *Engine) spawn(parent *Specimen) ([]*Specimen, error) {
	n := e.Specimens
	if n <= 0 {
		n = DefaultSpecimens
	}

	width, height := e.Target.Bounds().Dx(), e.Target.Bounds().Dy()
	triangles := make([]Triangle, n)
	for i := range triangles {
		t, err := e.Mutator.Triangle(width, height)
		if err != nil {
			return nil, err
		}
		triangles[i] = t
	}

	children := make([]*Specimen, n)
	build := func(i int) {
		child := parent.Clone()
		child.Add(triangles[i], e.Target)
		children[i] = child
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = Min(workers, n)

	if workers == 1 {
		for i := range children {
			build(i)
		}
		return children, nil
	}

	var wg sync.WaitGroup
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				build(i)
			}
		}()
	}
	wg.Wait()

	return children, nil
}
