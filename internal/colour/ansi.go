package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colour previews.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI-coloured solid block for the colour, for rendering
// palette chips in a terminal. Width is the block width in characters.
func (c HSV) Preview(width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	cf := c.Color()
	r, g, b, _ := cf.RGBA()
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, r>>8, g>>8, b>>8, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}
