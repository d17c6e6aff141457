package render

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
)

// shapeRects converts mask coverage into the rectangle list of a SHAPE
// bounding region. Each row is split into covered runs; identical runs on
// consecutive rows are merged into taller rectangles.
func shapeRects(mask *image.Alpha) []xproto.Rectangle {
	b := mask.Bounds()
	type run struct{ x0, x1 int }

	var out []xproto.Rectangle
	open := map[run]int{} // run -> index into out

	for y := b.Min.Y; y < b.Max.Y; y++ {
		var cur []run
		for x := b.Min.X; x < b.Max.X; {
			if mask.AlphaAt(x, y).A == 0 {
				x++
				continue
			}
			start := x
			for x < b.Max.X && mask.AlphaAt(x, y).A != 0 {
				x++
			}
			cur = append(cur, run{start, x})
		}

		next := make(map[run]int, len(cur))
		for _, r := range cur {
			if idx, ok := open[r]; ok {
				out[idx].Height++
				next[r] = idx
				continue
			}
			out = append(out, xproto.Rectangle{
				X:      int16(r.x0 - b.Min.X),
				Y:      int16(y - b.Min.Y),
				Width:  uint16(r.x1 - r.x0),
				Height: 1,
			})
			next[r] = len(out) - 1
		}
		open = next
	}
	return out
}
