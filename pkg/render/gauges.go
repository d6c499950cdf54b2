package render

import (
	"math"

	"github.com/ritzau/vt-designer/pkg/model"
)

// fraction places v within minValue..maxValue, clamped to 0..1.
func fraction(minValue, maxValue, v uint32) float64 {
	if maxValue <= minValue {
		return 0
	}
	return math.Min(1, math.Max(0, float64(int64(v)-int64(minValue))/float64(maxValue-minValue)))
}

// sweep maps a fraction to an angle in degrees. Angles are in the VT's 2 degree
// units, counted anticlockwise from 3 o'clock; the minimum sits at start.
func sweep(start, end uint8, clockwise bool, f float64) float64 {
	s, e := float64(start)*2, float64(end)*2
	var span float64
	if clockwise {
		span = math.Mod(s-e+360, 360)
	} else {
		span = math.Mod(e-s+360, 360)
	}
	if span == 0 {
		span = 360
	}
	if clockwise {
		return s - f*span
	}
	return s + f*span
}

// polar returns the point at radius and angle around (cx, cy), screen y down.
func polar(cx, cy, radius, degrees float64) (int, int) {
	rad := degrees * math.Pi / 180
	return int(math.Round(cx + radius*math.Cos(rad))), int(math.Round(cy - radius*math.Sin(rad)))
}

func (r *renderer) targetValue(obj model.Object, own uint16) uint32 {
	if variable, ok := r.view.Lookup(obj.Ref(model.RoleTargetVariable)); ok {
		if nv, isNumber := variable.Attrs.(*model.NumberVariableAttrs); isNumber {
			return nv.Value
		}
	}
	return uint32(own)
}

func (r *renderer) meter(obj model.Object, a *model.OutputMeterAttrs) []Primitive {
	size := int(a.Width)
	c := float64(size) / 2
	var items []Primitive

	if a.DrawBorder {
		items = append(items, Ellipse{Width: size, Height: size, Stroke: ptr(r.colour(a.BorderColour)), StrokeWidth: 1})
	}
	arc := r.colour(a.ArcAndTickColour)
	if a.DrawArc {
		start, end := sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, 0), sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, 1)
		if a.DeflectionClockwise {
			start, end = end, start
		}
		items = append(items, Ellipse{
			X: size / 10, Y: size / 10, Width: size * 8 / 10, Height: size * 8 / 10,
			Start: int(start), End: int(end), Segment: 1,
			Stroke: ptr(arc), StrokeWidth: 1,
		})
	}
	if a.DrawTicks && a.NrOfTicks > 0 {
		for i := range int(a.NrOfTicks) {
			f := 0.0
			if a.NrOfTicks > 1 {
				f = float64(i) / float64(a.NrOfTicks-1)
			}
			deg := sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, f)
			x1, y1 := polar(c, c, c*0.8, deg)
			x2, y2 := polar(c, c, c*0.95, deg)
			items = append(items, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Colour: arc, Width: 1, Art: 0xFFFF})
		}
	}

	value := r.numberValue(obj, uint32(a.Value))
	deg := sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, fraction(uint32(a.MinValue), uint32(a.MaxValue), value))
	x, y := polar(c, c, c*0.75, deg)
	items = append(items, Line{X1: int(c), Y1: int(c), X2: x, Y2: y, Colour: r.colour(a.NeedleColour), Width: 2, Art: 0xFFFF})
	return items
}

func (r *renderer) linearBar(obj model.Object, a *model.OutputLinearBarGraphAttrs) []Primitive {
	w, h := int(a.Width), int(a.Height)
	colour := r.colour(a.Colour)
	value := fraction(uint32(a.MinValue), uint32(a.MaxValue), r.numberValue(obj, uint32(a.Value)))
	target := fraction(uint32(a.MinValue), uint32(a.MaxValue), r.targetValue(obj, a.TargetValue))

	// position maps a fraction to the bar's axis, growing right/up unless negative
	position := func(f float64) int {
		length := h
		if a.Horizontal {
			length = w
		}
		p := int(math.Round(f * float64(length)))
		if a.Horizontal != a.GrowNegative {
			return p
		}
		return length - p
	}
	across := func(p int, c Colour, width int) Line {
		if a.Horizontal {
			return Line{X1: p, Y1: 0, X2: p, Y2: h, Colour: c, Width: width, Art: 0xFFFF}
		}
		return Line{X1: 0, Y1: p, X2: w, Y2: p, Colour: c, Width: width, Art: 0xFFFF}
	}

	var items []Primitive
	if a.DrawBorder {
		items = append(items, Rect{Width: w, Height: h, Stroke: ptr(colour), StrokeWidth: 1})
	}
	if a.LineOnly {
		items = append(items, across(position(value), colour, 1))
	} else {
		bar := Rect{Width: w, Height: h, Fill: ptr(colour)}
		end := position(value)
		switch {
		case a.Horizontal && !a.GrowNegative:
			bar.Width = end
		case a.Horizontal:
			bar.X, bar.Width = end, w-end
		case !a.GrowNegative:
			bar.Y, bar.Height = end, h-end
		default:
			bar.Height = end
		}
		items = append(items, bar)
	}
	if a.DrawTicks && a.NrOfTicks > 1 {
		for i := range int(a.NrOfTicks) {
			p := position(float64(i) / float64(a.NrOfTicks-1))
			tick := across(p, colour, 1)
			if a.Horizontal {
				tick.Y2 = h / 5
			} else {
				tick.X2 = w / 5
			}
			items = append(items, tick)
		}
	}
	if a.DrawTargetLine {
		items = append(items, across(position(target), r.colour(a.TargetLineColour), 1))
	}
	return items
}

func (r *renderer) archedBar(obj model.Object, a *model.OutputArchedBarGraphAttrs) []Primitive {
	w, h := int(a.Width), int(a.Height)
	colour := r.colour(a.Colour)
	cx, cy := float64(w)/2, float64(h)/2
	value := fraction(uint32(a.MinValue), uint32(a.MaxValue), r.numberValue(obj, uint32(a.Value)))
	target := fraction(uint32(a.MinValue), uint32(a.MaxValue), r.targetValue(obj, a.TargetValue))

	arc := func(f float64) (int, int) {
		from, to := sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, 0), sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, f)
		if a.DeflectionClockwise {
			from, to = to, from
		}
		return int(from), int(to)
	}
	radial := func(f float64, c Colour) Line {
		deg := sweep(a.StartAngle, a.EndAngle, a.DeflectionClockwise, f)
		inner := math.Max(0, math.Min(cx, cy)-float64(a.BarGraphWidth))
		x1, y1 := polar(cx, cy, inner, deg)
		x2, y2 := polar(cx, cy, math.Min(cx, cy), deg)
		return Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Colour: c, Width: 1, Art: 0xFFFF}
	}

	var items []Primitive
	if a.DrawBorder {
		start, end := arc(1)
		items = append(items, Ellipse{Width: w, Height: h, Start: start, End: end, Segment: 3, Stroke: ptr(colour), StrokeWidth: 1})
	}
	if a.LineOnly {
		items = append(items, radial(value, colour))
	} else if value > 0 {
		start, end := arc(value)
		bw := int(a.BarGraphWidth)
		items = append(items, Ellipse{
			X: bw / 2, Y: bw / 2, Width: w - bw, Height: h - bw,
			Start: start, End: end, Segment: 1, Stroke: ptr(colour), StrokeWidth: bw,
		})
	}
	if a.DrawTargetLine {
		items = append(items, radial(target, r.colour(a.TargetLineColour)))
	}
	return items
}
