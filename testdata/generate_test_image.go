// Test image generator for creating harmony fixtures for palette extraction
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// fixture is one generated image: a horizontal run of equally sized colour
// bands named after the harmony scheme it demonstrates.
type fixture struct {
	name  string
	bands []color.RGBA
}

func main() {
	width := 600
	height := 400

	fixtures := []fixture{
		{
			name: "complementary",
			bands: []color.RGBA{
				{R: 255, G: 0, B: 0, A: 255},   // Red
				{R: 0, G: 255, B: 255, A: 255}, // Cyan
			},
		},
		{
			name: "analogous",
			bands: []color.RGBA{
				{R: 255, G: 0, B: 0, A: 255},   // Red
				{R: 255, G: 128, B: 0, A: 255}, // Orange
				{R: 255, G: 255, B: 0, A: 255}, // Yellow
			},
		},
		{
			name: "triadic",
			bands: []color.RGBA{
				{R: 255, G: 0, B: 0, A: 255}, // Red
				{R: 0, G: 255, B: 0, A: 255}, // Green
				{R: 0, G: 0, B: 255, A: 255}, // Blue
			},
		},
		{
			name: "monochromatic",
			bands: []color.RGBA{
				{R: 40, G: 70, B: 120, A: 255},
				{R: 60, G: 100, B: 160, A: 255},
				{R: 90, G: 140, B: 200, A: 255},
			},
		},
	}

	for _, f := range fixtures {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		bandWidth := width / len(f.bands)

		for i, c := range f.bands {
			for y := 0; y < height; y++ {
				for x := i * bandWidth; x < (i+1)*bandWidth && x < width; x++ {
					img.Set(x, y, c)
				}
			}
		}

		path := "testdata/" + f.name + ".png"
		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}

		if err := png.Encode(file, img); err != nil {
			file.Close()
			panic(err)
		}
		file.Close()

		println("Fixture created: " + path)
	}
}
