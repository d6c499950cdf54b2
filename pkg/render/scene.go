package render

import (
	"encoding/json"

	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Primitive is one element of a scene. Coordinates are pixels relative to the
// enclosing Group.
type Primitive interface {
	Kind() string
}

// Rect is a filled and/or outlined rectangle.
type Rect struct {
	X, Y, Width, Height int
	Fill                *Colour `json:",omitempty"`
	Stroke              *Colour `json:",omitempty"`
	StrokeWidth         int     `json:",omitempty"`
}

// Text is a laid out string. Lines are already split and trimmed.
type Text struct {
	X, Y, Width, Height int
	Lines               []string
	Colour              Colour
	FontWidth           int
	FontHeight          int
	Proportional        bool `json:",omitempty"`
	Bold                bool `json:",omitempty"`
	Italic              bool `json:",omitempty"`
	Underlined          bool `json:",omitempty"`
	CrossedOut          bool `json:",omitempty"`
	Horizontal          uint8
	Vertical            uint8
	Wrap                bool    `json:",omitempty"`
	Background          *Colour `json:",omitempty"`
}

// Line is a straight segment. Art is the 16-bit dash pattern of the line attributes.
type Line struct {
	X1, Y1, X2, Y2 int
	Colour         Colour
	Width          int
	Art            uint16
}

// Ellipse is an ellipse inscribed in its box, or the part of it between two
// angles in degrees when Start != End.
type Ellipse struct {
	X, Y, Width, Height int
	Start, End          int
	Segment             uint8 // 0 closed, 1 open arc, 2 segment, 3 section
	Fill                *Colour `json:",omitempty"`
	Stroke              *Colour `json:",omitempty"`
	StrokeWidth         int     `json:",omitempty"`
}

// Point is a polygon vertex.
type Point struct {
	X, Y int
}

// Polygon is a path through Points, closed unless Open.
type Polygon struct {
	Points      []Point
	Open        bool    `json:",omitempty"`
	Fill        *Colour `json:",omitempty"`
	Stroke      *Colour `json:",omitempty"`
	StrokeWidth int     `json:",omitempty"`
}

// Image is a decoded bitmap scaled into its box. RGBA holds four bytes per
// pixel, row by row.
type Image struct {
	X, Y, Width, Height int
	PixelWidth          int
	PixelHeight         int
	RGBA                []byte
}

// Group places the rendering of one object at an offset. Children outside
// Width x Height are clipped when Clip is set.
type Group struct {
	Object   objectid.ObjectID
	X, Y     int
	Width    int
	Height   int
	Clip     bool `json:",omitempty"`
	Children []Primitive
}

// Placeholder stands in for something that could not be drawn.
type Placeholder struct {
	X, Y, Width, Height int
	Object              objectid.ObjectID
	Reason              string
}

func (Rect) Kind() string        { return "rect" }
func (Text) Kind() string        { return "text" }
func (Line) Kind() string        { return "line" }
func (Ellipse) Kind() string     { return "ellipse" }
func (Polygon) Kind() string     { return "polygon" }
func (Image) Kind() string       { return "image" }
func (Group) Kind() string       { return "group" }
func (Placeholder) Kind() string { return "placeholder" }

func (p Rect) MarshalJSON() ([]byte, error) {
	type plain Rect
	return tagged(p.Kind(), plain(p))
}

func (p Text) MarshalJSON() ([]byte, error) {
	type plain Text
	return tagged(p.Kind(), plain(p))
}

func (p Line) MarshalJSON() ([]byte, error) {
	type plain Line
	return tagged(p.Kind(), plain(p))
}

func (p Ellipse) MarshalJSON() ([]byte, error) {
	type plain Ellipse
	return tagged(p.Kind(), plain(p))
}

func (p Polygon) MarshalJSON() ([]byte, error) {
	type plain Polygon
	return tagged(p.Kind(), plain(p))
}

func (p Image) MarshalJSON() ([]byte, error) {
	type plain Image
	return tagged(p.Kind(), plain(p))
}

func (p Group) MarshalJSON() ([]byte, error) {
	type plain Group
	return tagged(p.Kind(), plain(p))
}

func (p Placeholder) MarshalJSON() ([]byte, error) {
	type plain Placeholder
	return tagged(p.Kind(), plain(p))
}

// tagged prepends a "Kind" member to the JSON object of v.
func tagged(kind string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := []byte(`{"Kind":"` + kind + `"`)
	if len(data) > 2 {
		out = append(out, ',')
	}
	return append(out, data[1:]...), nil
}

// Scene is the render data of one object: its size and what to draw.
type Scene struct {
	Object objectid.ObjectID
	Width  int
	Height int
	Items  []Primitive
}

// Walk visits every primitive of the scene depth-first.
func (s Scene) Walk(fn func(Primitive)) {
	var walk func([]Primitive)
	walk = func(items []Primitive) {
		for _, p := range items {
			fn(p)
			if g, ok := p.(Group); ok {
				walk(g.Children)
			}
		}
	}
	walk(s.Items)
}

func ptr(c Colour) *Colour { return &c }
