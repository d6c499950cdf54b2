package editor

import (
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/ritzau/vt-designer/pkg/objectid"
	"github.com/ritzau/vt-designer/pkg/render"
)

// displaySizes takes the sizes opts asks for and fits the rest to g.
func displaySizes(g *graph.Graph, opts Options) render.Sizes {
	sizes := render.MinimumSizes(g)
	if opts.MaskSize > 0 {
		sizes.Mask = opts.MaskSize
	}
	if opts.SoftKeyWidth > 0 {
		sizes.SoftKeyWidth = opts.SoftKeyWidth
	}
	if opts.SoftKeyHeight > 0 {
		sizes.SoftKeyHeight = opts.SoftKeyHeight
	}
	sizes.SoftKeyWidth = min(sizes.SoftKeyWidth, sizes.Mask)
	sizes.SoftKeyHeight = min(sizes.SoftKeyHeight, sizes.Mask)
	return sizes
}

// Sizes returns the display sizes objects are configured and rendered at.
func (p *Project) Sizes() render.Sizes {
	return p.sizes
}

// SetMaskSize changes the mask size. It is a view setting: the pool and the
// undo history are not touched.
func (p *Project) SetMaskSize(size int) error {
	return p.SetSizes(render.Sizes{Mask: size, SoftKeyWidth: p.sizes.SoftKeyWidth, SoftKeyHeight: p.sizes.SoftKeyHeight})
}

// SetSizes changes every display size at once.
func (p *Project) SetSizes(sizes render.Sizes) error {
	if err := sizes.Validate(); err != nil {
		return err
	}
	if sizes == p.sizes {
		return nil
	}
	p.sizes = sizes
	logging.Debug("display resized", "mask", sizes.Mask, "soft_key_width", sizes.SoftKeyWidth, "soft_key_height", sizes.SoftKeyHeight)
	p.notify(EventResized, "")
	return nil
}

// checkPlacement keeps children of masks inside the mask area and children of
// keys inside a soft key.
func (p *Project) checkPlacement(g *graph.Graph, from objectid.ObjectID, ref model.Reference) error {
	if ref.Role != model.RoleChild {
		return nil
	}
	parent, ok := g.Lookup(from)
	if !ok {
		return nil
	}

	var width, height int
	switch parent.Type() {
	case model.DataMask, model.AlarmMask:
		width, height = p.sizes.Mask, p.sizes.Mask
	case model.Key:
		width, height = p.sizes.SoftKeyWidth, p.sizes.SoftKeyHeight
	default:
		return nil
	}

	right, bottom, ok := render.Extent(g, ref, p.sizes)
	if !ok {
		// AddReference reports the missing target
		return nil
	}
	if ref.X < 0 || right > width {
		return graph.Invalid(from, "x", "a child at x=%d reaching %d does not fit the %d pixel wide %s", ref.X, right, width, parent.Type())
	}
	if ref.Y < 0 || bottom > height {
		return graph.Invalid(from, "y", "a child at y=%d reaching %d does not fit the %d pixel high %s", ref.Y, bottom, height, parent.Type())
	}
	return nil
}
