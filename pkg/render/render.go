// Package render turns objects into declarative scenes that a front end can
// paint. Rendering never fails: anything that cannot be drawn becomes a
// Placeholder, so a broken reference never blanks a whole preview.
package render

import (
	"fmt"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Fixed sizes of objects whose size neither the pool nor Sizes give.
const (
	DesignatorSize = 80 // working set designator
	WindowCell     = 80 // window mask layout cell

	buttonBorder = 4
)

var disabledShade = Colour{128, 128, 128, 100}

// Produce builds the scene of the object id on a display of the given sizes.
// Zero sizes are taken from DefaultSizes.
func Produce(view graph.View, id objectid.ObjectID, sizes Sizes) Scene {
	r := newRenderer(view, sizes)
	obj, ok := view.Lookup(id)
	if !ok {
		return Scene{Object: id, Items: []Primitive{r.missing(0, 0, id, "object")}}
	}
	w, h := r.size(obj)
	return Scene{Object: id, Width: w, Height: h, Items: r.object(obj)}
}

type renderer struct {
	view    graph.View
	palette *Palette
	sizes   Sizes
	path    map[objectid.ObjectID]bool // objects on the current descent
}

func newRenderer(view graph.View, sizes Sizes) *renderer {
	return &renderer{view: view, palette: &Standard, sizes: sizes.OrDefault(), path: make(map[objectid.ObjectID]bool)}
}

func (r *renderer) colour(index model.Colour) Colour {
	return r.palette.Colour(index)
}

func (r *renderer) missing(x, y int, id objectid.ObjectID, what string) Placeholder {
	return Placeholder{X: x, Y: y, Width: 40, Height: 16, Object: id, Reason: fmt.Sprintf("missing %s %s", what, id)}
}

// size is the box an object occupies.
func (r *renderer) size(obj model.Object) (int, int) {
	switch a := obj.Attrs.(type) {
	case *model.WorkingSetAttrs:
		return DesignatorSize, DesignatorSize
	case *model.DataMaskAttrs, *model.AlarmMaskAttrs:
		return r.sizes.Mask, r.sizes.Mask
	case *model.ContainerAttrs:
		return int(a.Width), int(a.Height)
	case *model.SoftKeyMaskAttrs:
		return r.sizes.SoftKeyWidth, r.sizes.SoftKeyHeight * max(1, len(obj.RefsWithRole(model.RoleChild)))
	case *model.KeyAttrs, *model.AuxiliaryFunctionType1Attrs, *model.AuxiliaryInputType1Attrs,
		*model.AuxiliaryFunctionType2Attrs, *model.AuxiliaryInputType2Attrs:
		return r.sizes.SoftKeyWidth, r.sizes.SoftKeyHeight
	case *model.ButtonAttrs:
		return int(a.Width), int(a.Height)
	case *model.InputBooleanAttrs:
		return int(a.Width), int(a.Width)
	case *model.InputStringAttrs:
		return int(a.Width), int(a.Height)
	case *model.InputNumberAttrs:
		return int(a.Width), int(a.Height)
	case *model.InputListAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputStringAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputNumberAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputListAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputLineAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputRectangleAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputEllipseAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputPolygonAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputMeterAttrs:
		return int(a.Width), int(a.Width)
	case *model.OutputLinearBarGraphAttrs:
		return int(a.Width), int(a.Height)
	case *model.OutputArchedBarGraphAttrs:
		return int(a.Width), int(a.Height)
	case *model.PictureGraphicAttrs:
		return pictureSize(a)
	case *model.WindowMaskAttrs:
		return int(a.Width) * WindowCell, int(a.Height) * WindowCell
	case *model.KeyGroupAttrs:
		return r.sizes.SoftKeyWidth, r.sizes.SoftKeyHeight * max(1, len(obj.RefsWithRole(model.RoleChild)))
	case *model.GraphicsContextAttrs:
		return int(a.ViewportWidth), int(a.ViewportHeight)
	case *model.ObjectPointerAttrs:
		if target, ok := r.view.Lookup(obj.Ref(model.RolePointer)); ok && !r.path[target.ID] {
			r.path[obj.ID] = true
			defer delete(r.path, obj.ID)
			return r.size(target)
		}
	}
	return 0, 0
}

// place renders obj inside a group at the given offset.
func (r *renderer) place(id objectid.ObjectID, x, y int) Primitive {
	obj, ok := r.view.Lookup(id)
	if !ok {
		return r.missing(x, y, id, "object")
	}
	if r.path[id] {
		return Placeholder{X: x, Y: y, Object: id, Reason: fmt.Sprintf("object %s contains itself", id)}
	}
	w, h := r.size(obj)
	return Group{Object: id, X: x, Y: y, Width: w, Height: h, Clip: true, Children: r.object(obj)}
}

// children renders every child reference at its offset.
func (r *renderer) children(obj model.Object) []Primitive {
	var items []Primitive
	for _, ref := range obj.RefsWithRole(model.RoleChild) {
		items = append(items, r.place(ref.Target, int(ref.X), int(ref.Y)))
	}
	return items
}

// stacked renders the children one below the other, as key designators are shown.
func (r *renderer) stacked(obj model.Object) []Primitive {
	var items []Primitive
	for i, ref := range obj.RefsWithRole(model.RoleChild) {
		items = append(items, r.place(ref.Target, 0, i*r.sizes.SoftKeyHeight))
	}
	return items
}

// object produces the primitives of obj in its own coordinates. The switch
// covers every editable variant; the non-visual ones produce nothing.
func (r *renderer) object(obj model.Object) []Primitive {
	r.path[obj.ID] = true
	defer delete(r.path, obj.ID)

	switch a := obj.Attrs.(type) {
	case *model.WorkingSetAttrs:
		if !a.Selectable {
			return nil
		}
		return r.background(obj, a.BackgroundColour)
	case *model.DataMaskAttrs:
		return r.background(obj, a.BackgroundColour)
	case *model.AlarmMaskAttrs:
		return r.background(obj, a.BackgroundColour)
	case *model.ContainerAttrs:
		if a.Hidden {
			return nil
		}
		return r.children(obj)
	case *model.SoftKeyMaskAttrs:
		w, h := r.size(obj)
		return append([]Primitive{Rect{Width: w, Height: h, Fill: ptr(r.colour(a.BackgroundColour))}}, r.stacked(obj)...)
	case *model.KeyAttrs:
		return r.background(obj, a.BackgroundColour)
	case *model.ButtonAttrs:
		return r.button(obj, a)
	case *model.InputBooleanAttrs:
		return r.checkbox(obj, a)
	case *model.InputStringAttrs:
		return r.text(obj, int(a.Width), int(a.Height), a.Value, a.BackgroundColour, a.Options, a.Justification)
	case *model.OutputStringAttrs:
		return r.text(obj, int(a.Width), int(a.Height), a.Value, a.BackgroundColour, a.Options, a.Justification)
	case *model.InputNumberAttrs:
		value := r.numberValue(obj, a.Value)
		return r.number(obj, int(a.Width), int(a.Height), value, a.Offset, a.Scale, a.NrOfDecimals, a.Exponential, a.BackgroundColour, a.Options, a.Justification)
	case *model.OutputNumberAttrs:
		value := r.numberValue(obj, a.Value)
		return r.number(obj, int(a.Width), int(a.Height), value, a.Offset, a.Scale, a.NrOfDecimals, a.Exponential, a.BackgroundColour, a.Options, a.Justification)
	case *model.InputListAttrs:
		return r.listItem(obj, a.Value)
	case *model.OutputListAttrs:
		return r.listItem(obj, a.Value)
	case *model.OutputLineAttrs:
		return r.line(obj, a)
	case *model.OutputRectangleAttrs:
		return r.rectangle(obj, a)
	case *model.OutputEllipseAttrs:
		return r.ellipse(obj, a)
	case *model.OutputPolygonAttrs:
		return r.polygon(obj, a)
	case *model.OutputMeterAttrs:
		return r.meter(obj, a)
	case *model.OutputLinearBarGraphAttrs:
		return r.linearBar(obj, a)
	case *model.OutputArchedBarGraphAttrs:
		return r.archedBar(obj, a)
	case *model.PictureGraphicAttrs:
		return []Primitive{r.picture(a)}
	case *model.ObjectPointerAttrs:
		target := obj.Ref(model.RolePointer)
		if target.IsNull() {
			return nil
		}
		return []Primitive{r.place(target, 0, 0)}
	case *model.AuxiliaryFunctionType1Attrs:
		return r.background(obj, a.BackgroundColour)
	case *model.AuxiliaryInputType1Attrs:
		return r.background(obj, a.BackgroundColour)
	case *model.AuxiliaryFunctionType2Attrs:
		return r.background(obj, a.BackgroundColour)
	case *model.AuxiliaryInputType2Attrs:
		return r.background(obj, a.BackgroundColour)
	case *model.WindowMaskAttrs:
		if a.Transparent {
			return r.children(obj)
		}
		return r.background(obj, a.BackgroundColour)
	case *model.KeyGroupAttrs:
		return r.stacked(obj)
	case *model.GraphicsContextAttrs:
		if a.Transparent {
			return nil
		}
		return []Primitive{Rect{Width: int(a.ViewportWidth), Height: int(a.ViewportHeight), Fill: ptr(r.colour(a.BackgroundColour))}}
	case *model.NumberVariableAttrs, *model.StringVariableAttrs, *model.FontAttributesAttrs,
		*model.LineAttributesAttrs, *model.FillAttributesAttrs, *model.InputAttributesAttrs,
		*model.MacroAttrs, *model.AuxiliaryControlDesignatorType2Attrs:
		return nil
	}
	return []Primitive{Placeholder{Object: obj.ID, Reason: fmt.Sprintf("%s objects cannot be drawn", obj.Type())}}
}

// background fills the object's box and draws its children on top.
func (r *renderer) background(obj model.Object, bg model.Colour) []Primitive {
	w, h := r.size(obj)
	return append([]Primitive{Rect{Width: w, Height: h, Fill: ptr(r.colour(bg))}}, r.children(obj)...)
}

func (r *renderer) button(obj model.Object, a *model.ButtonAttrs) []Primitive {
	w, h := int(a.Width), int(a.Height)
	opts := a.Options
	if r.view.Version() < model.Version4 {
		// Border and transparency options arrived with VT4
		opts.NoBorder, opts.SuppressBorder, opts.TransparentBackground, opts.Disabled = false, false, false, false
	}

	face := Group{Object: obj.ID, Width: w, Height: h, Clip: true}
	if !opts.NoBorder {
		face = Group{Object: obj.ID, X: buttonBorder, Y: buttonBorder, Width: w - 2*buttonBorder, Height: h - 2*buttonBorder, Clip: true}
	}

	var items []Primitive
	fill := r.colour(a.BackgroundColour)
	if opts.Latchable && opts.Latched {
		fill = darken(fill, 0.2)
	}
	if !opts.TransparentBackground {
		items = append(items, Rect{X: face.X, Y: face.Y, Width: face.Width, Height: face.Height, Fill: ptr(fill)})
	}
	if !opts.NoBorder && !opts.SuppressBorder {
		border := r.colour(a.BorderColour)
		if opts.Latchable && opts.Latched {
			border = lighten(border, 0.1)
		}
		items = append(items, Rect{Width: w, Height: h, Stroke: ptr(border), StrokeWidth: buttonBorder})
	}

	face.Children = r.children(obj)
	items = append(items, face)
	if opts.Disabled {
		items = append(items, Rect{X: face.X, Y: face.Y, Width: face.Width, Height: face.Height, Fill: ptr(disabledShade)})
	}
	return items
}

func (r *renderer) checkbox(obj model.Object, a *model.InputBooleanAttrs) []Primitive {
	size := int(a.Width)
	fg := r.colour(model.ColourBlack)
	if font, ok := r.font(obj); ok {
		fg = r.colour(font.FontColour)
	}

	items := []Primitive{Rect{Width: size, Height: size, Fill: ptr(r.colour(a.BackgroundColour)), Stroke: ptr(fg), StrokeWidth: 1}}
	checked := a.Value
	if variable, ok := r.view.Lookup(obj.Ref(model.RoleVariable)); ok {
		if nv, isNumber := variable.Attrs.(*model.NumberVariableAttrs); isNumber {
			checked = nv.Value != 0
		}
	}
	if checked {
		items = append(items, Polygon{
			Points: []Point{{size / 5, size / 2}, {size * 2 / 5, size * 4 / 5}, {size * 4 / 5, size / 5}},
			Open:   true, Stroke: ptr(fg), StrokeWidth: max(1, size/10),
		})
	}
	if !a.Enabled {
		items = append(items, Rect{Width: size, Height: size, Fill: ptr(disabledShade)})
	}
	return items
}

// listItem shows the child selected by the list's value, or nothing when the
// value is out of range.
func (r *renderer) listItem(obj model.Object, value uint8) []Primitive {
	index := int(value)
	if variable, ok := r.view.Lookup(obj.Ref(model.RoleVariable)); ok {
		if nv, isNumber := variable.Attrs.(*model.NumberVariableAttrs); isNumber {
			index = int(nv.Value)
		}
	}
	items := obj.RefsWithRole(model.RoleChild)
	if index >= len(items) {
		return nil
	}
	return []Primitive{r.place(items[index].Target, 0, 0)}
}

func (r *renderer) line(obj model.Object, a *model.OutputLineAttrs) []Primitive {
	attrs, ok := r.lineAttributes(obj)
	if !ok {
		return []Primitive{r.missing(0, 0, obj.Ref(model.RoleLine), "line attributes")}
	}
	l := Line{X2: int(a.Width), Y2: int(a.Height), Colour: r.colour(attrs.LineColour), Width: int(attrs.LineWidth), Art: attrs.LineArt}
	if a.LineDirection == 1 {
		l.Y1, l.Y2 = int(a.Height), 0
	}
	return []Primitive{l}
}

func (r *renderer) rectangle(obj model.Object, a *model.OutputRectangleAttrs) []Primitive {
	w, h := int(a.Width), int(a.Height)
	attrs, ok := r.lineAttributes(obj)
	if !ok {
		return []Primitive{r.missing(0, 0, obj.Ref(model.RoleLine), "line attributes")}
	}

	var items []Primitive
	if fill, ok := r.fill(obj, attrs); ok {
		items = append(items, Rect{Width: w, Height: h, Fill: fill})
	} else if id := obj.Ref(model.RoleFill); !id.IsNull() && !r.hasObject(id) {
		items = append(items, r.missing(0, 0, id, "fill attributes"))
	}

	stroke := r.colour(attrs.LineColour)
	lw := int(attrs.LineWidth)
	switch a.LineSuppression & 0x0F {
	case 0:
		items = append(items, Rect{Width: w, Height: h, Stroke: &stroke, StrokeWidth: lw})
	case 0x0F:
	default:
		edges := []Line{
			{X1: 0, Y1: 0, X2: w, Y2: 0},
			{X1: w, Y1: 0, X2: w, Y2: h},
			{X1: 0, Y1: h, X2: w, Y2: h},
			{X1: 0, Y1: 0, X2: 0, Y2: h},
		}
		for bit, edge := range edges {
			if a.LineSuppression&(1<<bit) != 0 {
				continue
			}
			edge.Colour, edge.Width, edge.Art = stroke, lw, attrs.LineArt
			items = append(items, edge)
		}
	}
	return items
}

func (r *renderer) ellipse(obj model.Object, a *model.OutputEllipseAttrs) []Primitive {
	attrs, ok := r.lineAttributes(obj)
	if !ok {
		return []Primitive{r.missing(0, 0, obj.Ref(model.RoleLine), "line attributes")}
	}
	e := Ellipse{
		Width: int(a.Width), Height: int(a.Height),
		Segment: a.EllipseType,
		Stroke:  ptr(r.colour(attrs.LineColour)), StrokeWidth: int(attrs.LineWidth),
	}
	if a.EllipseType != 0 {
		e.Start, e.End = int(a.StartAngle)*2, int(a.EndAngle)*2
	}
	if fill, ok := r.fill(obj, attrs); ok && a.EllipseType != 1 {
		e.Fill = fill
	}
	return []Primitive{e}
}

func (r *renderer) polygon(obj model.Object, a *model.OutputPolygonAttrs) []Primitive {
	attrs, ok := r.lineAttributes(obj)
	if !ok {
		return []Primitive{r.missing(0, 0, obj.Ref(model.RoleLine), "line attributes")}
	}
	p := Polygon{Open: a.PolygonType == 3, Stroke: ptr(r.colour(attrs.LineColour)), StrokeWidth: int(attrs.LineWidth)}
	for _, pt := range a.Points {
		p.Points = append(p.Points, Point{int(pt.X), int(pt.Y)})
	}
	if fill, ok := r.fill(obj, attrs); ok && !p.Open {
		p.Fill = fill
	}
	return []Primitive{p}
}

func (r *renderer) hasObject(id objectid.ObjectID) bool {
	_, ok := r.view.Lookup(id)
	return ok
}

func (r *renderer) font(obj model.Object) (*model.FontAttributesAttrs, bool) {
	ref, ok := r.view.Lookup(obj.Ref(model.RoleFont))
	if !ok {
		return nil, false
	}
	font, ok := ref.Attrs.(*model.FontAttributesAttrs)
	return font, ok
}

func (r *renderer) lineAttributes(obj model.Object) (*model.LineAttributesAttrs, bool) {
	ref, ok := r.view.Lookup(obj.Ref(model.RoleLine))
	if !ok {
		return nil, false
	}
	attrs, ok := ref.Attrs.(*model.LineAttributesAttrs)
	return attrs, ok
}

// fill resolves the infill of a shape. A fill pattern is shown as the fill
// colour.
func (r *renderer) fill(obj model.Object, line *model.LineAttributesAttrs) (*Colour, bool) {
	ref, ok := r.view.Lookup(obj.Ref(model.RoleFill))
	if !ok {
		return nil, false
	}
	attrs, ok := ref.Attrs.(*model.FillAttributesAttrs)
	if !ok {
		return nil, false
	}
	switch attrs.FillType {
	case 1:
		return ptr(r.colour(line.LineColour)), true
	case 2, 3:
		return ptr(r.colour(attrs.FillColour)), true
	}
	return nil, false
}
