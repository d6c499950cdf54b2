package render

import (
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// Bounds of the mask size a project may use.
const (
	MinMaskSize = 100
	MaxMaskSize = 2000
)

// Sizes are the display dimensions of objects whose size the pool does not
// store: the square data and alarm mask area and one soft key.
type Sizes struct {
	Mask          int `json:"mask"`
	SoftKeyWidth  int `json:"soft_key_width"`
	SoftKeyHeight int `json:"soft_key_height"`
}

// DefaultSizes apply when neither the user nor the pool decide.
var DefaultSizes = Sizes{Mask: 480, SoftKeyWidth: 60, SoftKeyHeight: 60}

// OrDefault fills zero dimensions from DefaultSizes.
func (s Sizes) OrDefault() Sizes {
	if s.Mask <= 0 {
		s.Mask = DefaultSizes.Mask
	}
	if s.SoftKeyWidth <= 0 {
		s.SoftKeyWidth = DefaultSizes.SoftKeyWidth
	}
	if s.SoftKeyHeight <= 0 {
		s.SoftKeyHeight = DefaultSizes.SoftKeyHeight
	}
	return s
}

// Validate checks the mask size bounds. Soft keys may not be larger than the mask.
func (s Sizes) Validate() error {
	if s.Mask < MinMaskSize || s.Mask > MaxMaskSize {
		return graph.Invalid(objectid.Null, "mask_size", "mask size %d is outside %d..%d", s.Mask, MinMaskSize, MaxMaskSize)
	}
	if s.SoftKeyWidth < 1 || s.SoftKeyWidth > s.Mask || s.SoftKeyHeight < 1 || s.SoftKeyHeight > s.Mask {
		return graph.Invalid(objectid.Null, "soft_key_size", "soft key size %dx%d does not fit 1..%d",
			s.SoftKeyWidth, s.SoftKeyHeight, s.Mask)
	}
	return nil
}

// MinimumSizes returns the smallest sizes that fit every object placed on a
// mask or a key of g. Dimensions nothing constrains come from DefaultSizes,
// and the mask size is kept within MinMaskSize..MaxMaskSize.
func MinimumSizes(g *graph.Graph) Sizes {
	r := newRenderer(g, DefaultSizes)
	var s Sizes
	for _, mask := range g.ObjectsByType(model.DataMask, model.AlarmMask) {
		for _, ref := range mask.RefsWithRole(model.RoleChild) {
			if w, h, ok := r.extent(ref); ok {
				s.Mask = max(s.Mask, w, h)
			}
		}
	}
	for _, key := range g.ObjectsByType(model.Key) {
		for _, ref := range key.RefsWithRole(model.RoleChild) {
			if w, h, ok := r.extent(ref); ok {
				s.SoftKeyWidth = max(s.SoftKeyWidth, w)
				s.SoftKeyHeight = max(s.SoftKeyHeight, h)
			}
		}
	}

	s = s.OrDefault()
	s.Mask = min(max(s.Mask, MinMaskSize), MaxMaskSize)
	s.SoftKeyWidth = min(s.SoftKeyWidth, s.Mask)
	s.SoftKeyHeight = min(s.SoftKeyHeight, s.Mask)
	return s
}

// Extent returns how far right and down a child placed by ref reaches on a
// display of the given sizes.
func Extent(view graph.View, ref model.Reference, sizes Sizes) (int, int, bool) {
	return newRenderer(view, sizes).extent(ref)
}

func (r *renderer) extent(ref model.Reference) (int, int, bool) {
	child, ok := r.view.Lookup(ref.Target)
	if !ok {
		return 0, 0, false
	}
	w, h := r.size(child)
	return int(ref.X) + w, int(ref.Y) + h, true
}
