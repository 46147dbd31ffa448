package genimage

import (
	"fmt"
	"testing"
)

func BenchmarkAdvance(b *testing.B) {
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers%d", workers), func(b *testing.B) {
			target := randomTarget(256, 256, 1)
			e := newTestEngine(target, DefaultSpecimens, 1)
			e.Workers = workers

			pop, err := e.Seed()
			if err != nil {
				b.Fatalf("Failed seeding population: %v", err)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if pop, err = e.Advance(pop); err != nil {
					b.Fatalf("Failed advancing population: %v", err)
				}
			}
		})
	}
}

func BenchmarkRasterize(b *testing.B) {
	target := randomTarget(512, 512, 1)
	s := NewSpecimen(target)
	m := NewMutator(seededRand(1))
	tri, err := m.Triangle(512, 512)
	if err != nil {
		b.Fatalf("Failed sampling triangle: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rasterize(s, tri, target)
	}
}
