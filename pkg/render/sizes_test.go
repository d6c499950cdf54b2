package render

import (
	"testing"

	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestProduce_UsesSizes(t *testing.T) {
	g := graph.New(model.Version6)
	mask := add(t, g, model.DataMask, nil)
	keys := add(t, g, model.SoftKeyMask, nil)
	first := add(t, g, model.Key, nil)
	second := add(t, g, model.Key, nil)
	link(t, g, keys, model.RoleChild, first, 0, 0)
	link(t, g, keys, model.RoleChild, second, 0, 0)

	sizes := Sizes{Mask: 240, SoftKeyWidth: 50, SoftKeyHeight: 40}
	scene := Produce(g, mask, sizes)
	assert.Equal(t, 240, scene.Width)
	assert.Equal(t, 240, scene.Height)

	scene = Produce(g, keys, sizes)
	assert.Equal(t, 50, scene.Width)
	assert.Equal(t, 80, scene.Height)
	var offsets []int
	for _, item := range scene.Items {
		if group, ok := item.(Group); ok {
			offsets = append(offsets, group.Y)
		}
	}
	assert.Equal(t, []int{0, 40}, offsets)

	assert.Equal(t, DefaultSizes.Mask, Produce(g, mask, Sizes{}).Width)
}

func TestMinimumSizes(t *testing.T) {
	g := graph.New(model.Version6)
	assert.Equal(t, DefaultSizes, MinimumSizes(g))

	mask := add(t, g, model.DataMask, nil)
	small := add(t, g, model.OutputLine, nil) // 100x1
	link(t, g, mask, model.RoleChild, small, 0, 0)
	assert.Equal(t, MinMaskSize, MinimumSizes(g).Mask)

	wide := add(t, g, model.Container, nil) // 200x200
	link(t, g, mask, model.RoleChild, wide, 400, 650)
	assert.Equal(t, 850, MinimumSizes(g).Mask)

	key := add(t, g, model.Key, nil)
	label := add(t, g, model.OutputString, nil) // 150x32
	link(t, g, key, model.RoleChild, label, 0, 10)
	sizes := MinimumSizes(g)
	assert.Equal(t, 150, sizes.SoftKeyWidth)
	assert.Equal(t, 42, sizes.SoftKeyHeight)

	huge := add(t, g, model.Container, func(a model.Attributes) {
		a.(*model.ContainerAttrs).Width = 5000
	})
	link(t, g, mask, model.RoleChild, huge, 0, 0)
	assert.Equal(t, MaxMaskSize, MinimumSizes(g).Mask)
}

func TestSizesValidate(t *testing.T) {
	assert.NoError(t, DefaultSizes.Validate())
	assert.NoError(t, Sizes{Mask: MinMaskSize, SoftKeyWidth: 1, SoftKeyHeight: MinMaskSize}.Validate())
	assert.ErrorIs(t, Sizes{Mask: 99, SoftKeyWidth: 60, SoftKeyHeight: 60}.Validate(), graph.ErrValidationFailed)
	assert.ErrorIs(t, Sizes{Mask: 2001, SoftKeyWidth: 60, SoftKeyHeight: 60}.Validate(), graph.ErrValidationFailed)
	assert.ErrorIs(t, Sizes{Mask: 480, SoftKeyWidth: 0, SoftKeyHeight: 60}.Validate(), graph.ErrValidationFailed)
	assert.ErrorIs(t, Sizes{Mask: 480, SoftKeyWidth: 60, SoftKeyHeight: 481}.Validate(), graph.ErrValidationFailed)
}
