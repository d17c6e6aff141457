package render

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
)

// zpixmap packs the premultiplied pixels of img inside r into 32 bits per
// pixel ZPixmap scanlines (0xAARRGGBB) in the server's byte order.
func zpixmap(img *image.RGBA, r image.Rectangle, lsbFirst bool) []byte {
	r = r.Intersect(img.Bounds())
	out := make([]byte, 0, r.Dx()*r.Dy()*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			red, green, blue, alpha := row[i], row[i+1], row[i+2], row[i+3]
			if lsbFirst {
				out = append(out, blue, green, red, alpha)
			} else {
				out = append(out, alpha, red, green, blue)
			}
		}
	}
	return out
}

// putImageChunks splits r into row bands that fit in one PutImage request.
func putImageChunks(r image.Rectangle, maxRequestBytes int) []image.Rectangle {
	const header = 24
	rowBytes := r.Dx() * 4
	if rowBytes == 0 || r.Dy() == 0 {
		return nil
	}
	rows := (maxRequestBytes - header) / rowBytes
	if rows < 1 {
		rows = 1
	}

	var chunks []image.Rectangle
	for y := r.Min.Y; y < r.Max.Y; y += rows {
		end := min(y+rows, r.Max.Y)
		chunks = append(chunks, image.Rect(r.Min.X, y, r.Max.X, end))
	}
	return chunks
}

func rectToImage(r xproto.Rectangle) image.Rectangle {
	x, y := int(r.X), int(r.Y)
	return image.Rect(x, y, x+int(r.Width), y+int(r.Height))
}
