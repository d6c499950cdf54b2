package render

import (
	"github.com/ritzau/vt-designer/pkg/model"
)

// pictureSize is the displayed size: Width wide, height scaled to keep the
// bitmap's aspect ratio.
func pictureSize(a *model.PictureGraphicAttrs) (int, int) {
	if a.ActualWidth == 0 {
		return int(a.Width), 0
	}
	return int(a.Width), int(a.Width) * int(a.ActualHeight) / int(a.ActualWidth)
}

// expandRLE turns (count, value) pairs into plain bytes. A trailing odd byte is ignored.
func expandRLE(data []byte) []byte {
	var out []byte
	for i := 0; i+1 < len(data); i += 2 {
		for range int(data[i]) {
			out = append(out, data[i+1])
		}
	}
	return out
}

// pixelIndexes splits one raw byte into palette indexes for the given format.
func pixelIndexes(format uint8, raw byte) []uint8 {
	switch format {
	case 0:
		idx := make([]uint8, 8)
		for bit := range 8 {
			idx[bit] = (raw >> (7 - bit)) & 0x01
		}
		return idx
	case 1:
		return []uint8{raw >> 4, raw & 0x0F}
	}
	return []uint8{raw}
}

// decodePicture resolves the bitmap to RGBA. Rows start on a byte boundary:
// bits left over at the end of a row are skipped.
func decodePicture(a *model.PictureGraphicAttrs, palette *Palette) []byte {
	aw, ah := int(a.ActualWidth), int(a.ActualHeight)
	rgba := make([]byte, aw*ah*4)
	if aw == 0 || ah == 0 {
		return rgba
	}

	data := a.Data
	if a.RunLengthEncoded {
		data = expandRLE(data)
	}

	x, y := 0, 0
	for _, raw := range data {
		if y >= ah {
			break
		}
		for _, index := range pixelIndexes(a.Format, raw) {
			c := palette.Colour(index)
			if a.Transparent && index == a.TransparencyColour {
				c = Transparent
			}
			at := (y*aw + x) * 4
			rgba[at], rgba[at+1], rgba[at+2], rgba[at+3] = c.R, c.G, c.B, c.A

			x++
			if x == aw {
				x, y = 0, y+1
				break
			}
		}
	}
	return rgba
}

func (r *renderer) picture(a *model.PictureGraphicAttrs) Primitive {
	w, h := pictureSize(a)
	return Image{
		Width:       w,
		Height:      h,
		PixelWidth:  int(a.ActualWidth),
		PixelHeight: int(a.ActualHeight),
		RGBA:        decodePicture(a, r.palette),
	}
}
