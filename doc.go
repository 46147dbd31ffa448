/*
Package genimage approximates images with semi-transparent gray triangles found by a simple evolutionary search.

Every generation keeps the best specimen found so far and spawns mutated copies of it, each with one more random
triangle drawn at 50% opacity. The copy with the lowest squared error against the target becomes the new best.
The error of a new triangle is computed incrementally from the pixels it covers, so the image is never rescanned.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ genimage --help

Example running the search directly:

	package main

	import (
		"fmt"
		"math/rand"

		"github.com/genimage/genimage"
	)

	func main() {
		target := genimage.ImgToNRGBA(srcImg)
		engine := genimage.NewEngine(target, genimage.NewMutator(rand.New(rand.NewSource(1))))

		pop, err := engine.Seed()
		if err != nil {
			fmt.Printf("Error seeding population: %s", err.Error())
			return
		}
		for i := 0; i < 1000; i++ {
			if pop, err = engine.Advance(pop); err != nil {
				fmt.Printf("Error advancing population: %s", err.Error())
				return
			}
		}
		fmt.Println(pop.Best().Score)
	}

Example streaming the accepted triangles as SVG while the search runs:

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/genimage/genimage"
	)

	func main() {
		p := &genimage.Processor{
			Generations: 5000,
		}

		svg := genimage.NewSVG(os.Stdout)
		defer svg.Close()

		_, err := p.Process(context.Background(), file, svg, &genimage.Image{Path: "preview.png", Every: 100})
		if err != nil {
			fmt.Printf("Error on search process: %s", err.Error())
		}
	}
*/
package genimage
