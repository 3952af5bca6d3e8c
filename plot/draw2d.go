package plot

import (
	"github.com/lixenwraith/termplot/render"
)

// draw2D blits each glyph onto the plot area unscaled; labels come from the grid
func (g *Graph) draw2D(d *grid) (render.Canvas, int, int) {
	w, h := len(d.xLabels), len(d.yLabels)
	area := render.New(w, h)
	// a wide glyph also takes the next column and is blanked at the right edge
	for _, gl := range d.glyphs {
		area.PutRune(gl.X, gl.Y, gl.Rune, g.primaryColor)
	}

	// one entry per frame row; the axis row stays unlabeled
	yLabels := make([]string, h+1)
	copy(yLabels, d.yLabels)

	var xl []xLabel
	for x, l := range d.xLabels {
		if l != "" {
			xl = append(xl, xLabel{col: x, text: l})
		}
	}

	body, left := frame(area, yLabels, true, placeXLabels(xl, w, g.xLabelMargin))
	return body, left, w
}
