// Stylelens - colour-harmony analysis for interior photographs
//
// Stylelens extracts colour palettes from room photographs, scores them
// against classical colour-harmony rules, and explains how an image differs
// from a target decorating style.
package main

import (
	"github.com/stylelens/stylelens/internal/cli"
)

func main() {
	cli.Execute()
}
